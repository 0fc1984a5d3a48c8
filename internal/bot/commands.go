package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kardemumma/internal/gate"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/session"
)

const (
	memberHelp = `Available commands:
/token - Get an API token
/leaderboard - Show the current standings
/help - Show this message`

	adminHelp = `Available commands:
/token - Get an API token
/team edit <team_id> title "<new title>" - Rename a team
/team edit <team_id> ps <ps_id> - Assign a problem statement
/team delete <team_id> - Delete a team (asks to /confirm)
/member add <team_id> name "<name>" email <email> phone <phone> department "<dep>" college "<college>" year <1-4> tshirt <XS|S|M|L|XL|XXL> - Add a member
/member edit <team_id> <member_id> <field> <value> - Edit one member field
/verify start <team_id> - Start certificate verification
/verify cert <member_id> name "<cert name>" roll <roll> gender <gender> - Fill one member
/verify review - Show the batch before committing
/verify commit - Commit the batch (locks the team!)
/verify cancel - Drop the verification drafts
/confirm - Confirm the pending delete
/cancel - Cancel the pending delete
/bind <event> [comment] - Bind this chat to an event
/chats - List chats bound to events
/leaderboard - Show the current standings
/tasks - Show the task drop
/gallery - Show the gallery link
/help - Show this message

Examples:
/team edit 42 title "Null Pointers"
/member edit 42 7 phone +919876543210
/verify start 42`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeMemberCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":       b.handleStart,
		"token":       b.handleToken,
		"help":        b.handleHelp,
		"leaderboard": b.handleLeaderboard,
		"tasks":       b.handleTasks,
		"gallery":     b.handleGallery,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"team":    b.handleTeam,
		"member":  b.handleMember,
		"verify":  b.handleVerify,
		"confirm": b.handleConfirm,
		"cancel":  b.handleCancel,
		"bind":    b.handleBind,
		"chats":   b.handleChats,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routeMemberCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	var text string
	if b.admins[msg.From.ID] {
		text = adminHelp
	} else {
		text = memberHelp
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Use commands to talk to the bot. Send /help for the list.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Hi! I manage the event roster.\n\n"
	if b.admins[msg.From.ID] {
		text += "You are an event admin. Use /help for the command list."
	} else {
		text += "Use /token to get an API token."
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleToken(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return b.sendMessage(msg.Chat.ID, "Token service is not enabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	username := msg.From.UserName
	if username == "" {
		username = strconv.FormatInt(msg.From.ID, 10)
	}

	event := b.eventForChat(ctx, msg.Chat.ID)

	adminID, err := b.tokens.FetchAdminIDByTelegram(ctx, event, username)
	if err != nil {
		adminID = username
	}

	info, isNew, err := b.tokens.FetchOrCreateAdminToken(ctx, event, adminID)
	if err != nil {
		return fmt.Errorf("failed to fetch token: %w", err)
	}

	action := "Your token"
	if isNew {
		action = "Fresh token minted"
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s:\n%s\n\nRequests so far: %d",
		action, info.Token, info.RequestCount))
}

// eventForChat resolves the event slug for a chat: the bound mapping
// wins, otherwise the configured default. Lets one bot instance serve
// several event chats.
func (b *Bot) eventForChat(ctx context.Context, chatID int64) string {
	if b.tokens != nil {
		if mapping, err := b.tokens.FetchEventMappingByChatID(ctx, chatID); err == nil {
			return mapping.Event
		}
	}
	return b.config.API.Event
}

func (b *Bot) handleBind(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return b.sendMessage(msg.Chat.ID, "Token service is not enabled")
	}

	args := splitArgs(msg.CommandArguments())
	if len(args) < 1 {
		return fmt.Errorf("usage: /bind <event> [comment]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := args[0]
	mapping := &models.ChatEventMapping{
		Event:           event,
		Name:            msg.Chat.Title,
		Comment:         strings.Join(args[1:], " "),
		AssociationTime: time.Now().UTC(),
		RegisteredBy:    msg.From.ID,
	}
	if err := b.tokens.AssociateChatWithEvent(ctx, msg.Chat.ID, mapping); err != nil {
		return fmt.Errorf("failed to bind chat: %w", err)
	}

	if msg.From.UserName != "" {
		if err := b.tokens.SaveAdminTelegramMapping(ctx, event, msg.From.UserName, msg.From.UserName); err != nil {
			return fmt.Errorf("failed to save admin mapping: %w", err)
		}
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("🔗 Chat bound to event %s", event))
}

func (b *Bot) handleChats(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return b.sendMessage(msg.Chat.ID, "Token service is not enabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mappings, err := b.tokens.FetchAllChatMappings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch chat mappings: %w", err)
	}
	if len(mappings) == 0 {
		return b.sendMessage(msg.Chat.ID, "No chats are bound yet, use /bind <event>")
	}

	var out strings.Builder
	out.WriteString("Bound chats:\n\n")
	for chatID, m := range mappings {
		out.WriteString(fmt.Sprintf("💬 %s → %s", chatID, m.Event))
		if m.Name != "" {
			out.WriteString(fmt.Sprintf(" (%s)", m.Name))
		}
		out.WriteString("\n")
	}
	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) handleTeam(msg *tgbotapi.Message) error {
	args := splitArgs(msg.CommandArguments())
	if len(args) < 1 {
		return b.sendMessage(msg.Chat.ID, "Usage:\n"+
			"/team edit <team_id> title \"<new title>\" - Rename a team\n"+
			"/team edit <team_id> ps <ps_id> - Assign a problem statement\n"+
			"/team delete <team_id> - Delete a team")
	}

	switch args[0] {
	case "edit":
		if len(args) < 4 {
			return fmt.Errorf("usage: /team edit <team_id> title|ps <value>")
		}
		return b.handleTeamEdit(msg.Chat.ID, args[1:])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: /team delete <team_id>")
		}
		return b.handleTeamDelete(msg.Chat.ID, args[1])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func (b *Bot) handleTeamEdit(chatID int64, args []string) error {
	teamID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad team id: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	team, err := b.client.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to fetch team %d: %v", teamID, err)
	}

	if args[1] != "title" && args[1] != "ps" {
		return fmt.Errorf("unknown field: %s", args[1])
	}

	edit := session.NewTeamEdit(b.client, *team)
	if _, err := edit.UpdateDraft(func(t *models.Team) {
		switch args[1] {
		case "title":
			t.Title = args[2]
		case "ps":
			if psID, convErr := strconv.Atoi(args[2]); convErr == nil {
				t.PSID = psID
			}
		}
	}); err != nil {
		return err
	}

	if errs := edit.Errors(); len(errs) > 0 {
		return fmt.Errorf("draft rejected: %s", formatFieldErrors(errs))
	}

	if err := edit.Submit(ctx); err != nil {
		return fmt.Errorf("update failed: %s", formatFieldErrors(edit.Errors()))
	}

	updated := edit.Original()
	ps := "unassigned"
	if updated.Assigned() {
		ps = strconv.Itoa(updated.PSID)
	}
	return b.sendMessage(chatID, fmt.Sprintf("✅ Team %d updated:\n"+
		"Title: %s\n"+
		"Problem statement: %s",
		updated.TeamID,
		updated.Title,
		ps,
	))
}

func (b *Bot) handleTeamDelete(chatID int64, rawID string) error {
	teamID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad team id: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	team, err := b.client.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to fetch team %d: %v", teamID, err)
	}

	w := session.NewTeamDelete(b.client, *team)
	b.setPendingDelete(chatID, w)

	title, sccID, memberCount := w.Details()
	return b.sendMessage(chatID, fmt.Sprintf("⚠️ About to delete team %d:\n"+
		"Title: %s\n"+
		"SCC id: %s\n"+
		"Members: %d\n\n"+
		"This cannot be undone. Send /confirm to proceed or /cancel to keep the team.",
		teamID,
		title,
		sccID,
		memberCount,
	))
}

func (b *Bot) handleConfirm(msg *tgbotapi.Message) error {
	w := b.pendingDelete(msg.Chat.ID)
	if w == nil {
		return b.sendMessage(msg.Chat.ID, "Nothing to confirm")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.Confirm(ctx); err != nil {
		// workflow stays open for a retry, errors shown inline
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Delete failed: %s\n"+
			"Send /confirm to retry or /cancel to give up.", w.LastError()))
	}

	b.setPendingDelete(msg.Chat.ID, nil)
	return b.sendMessage(msg.Chat.ID, "🗑 Team deleted")
}

func (b *Bot) handleCancel(msg *tgbotapi.Message) error {
	w := b.pendingDelete(msg.Chat.ID)
	if w == nil {
		return b.sendMessage(msg.Chat.ID, "Nothing to cancel")
	}

	if err := w.Cancel(); err != nil {
		return fmt.Errorf("cannot cancel right now: %v", err)
	}

	b.setPendingDelete(msg.Chat.ID, nil)
	return b.sendMessage(msg.Chat.ID, "Delete cancelled, team kept")
}

func (b *Bot) handleMember(msg *tgbotapi.Message) error {
	args := splitArgs(msg.CommandArguments())
	if len(args) < 1 {
		return b.sendMessage(msg.Chat.ID, "Usage:\n"+
			"/member add <team_id> name \"<name>\" email <email> ... - Add a member\n"+
			"/member edit <team_id> <member_id> <field> <value> - Edit one field")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: /member add <team_id> name \"<name>\" ...")
		}
		return b.handleMemberAdd(msg.Chat.ID, args[1:])
	case "edit":
		if len(args) < 5 {
			return fmt.Errorf("usage: /member edit <team_id> <member_id> <field> <value>")
		}
		return b.handleMemberEdit(msg.Chat.ID, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func (b *Bot) handleMemberAdd(chatID int64, args []string) error {
	teamID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad team id: %v", err)
	}

	add := session.NewMemberAdd(b.client, teamID)

	for i := 1; i < len(args); i += 2 {
		if i+1 >= len(args) {
			return fmt.Errorf("missing value for %s", args[i])
		}
		field, value := args[i], args[i+1]
		if !knownMemberField(field) {
			return fmt.Errorf("unknown field: %s", field)
		}
		if _, err := add.UpdateDraft(func(m *models.Member) {
			applyMemberField(m, field, value)
		}); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := add.Submit(ctx); err != nil {
		return fmt.Errorf("add failed: %s", formatFieldErrors(add.Errors()))
	}

	created := add.Created()
	return b.sendMessage(chatID, fmt.Sprintf("✅ Member added to team %d:\n"+
		"id: %d\n"+
		"%s <%s>",
		teamID,
		created.ID,
		created.Name,
		created.Email,
	))
}

func (b *Bot) handleMemberEdit(chatID int64, args []string) error {
	teamID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad team id: %v", err)
	}
	memberID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad member id: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	team, err := b.client.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to fetch team %d: %v", teamID, err)
	}

	var original *models.Member
	for i := range team.Members {
		if team.Members[i].ID == memberID {
			original = &team.Members[i]
			break
		}
	}
	if original == nil {
		return fmt.Errorf("member %d not found in team %d", memberID, teamID)
	}

	edit := session.NewMemberEdit(b.client, teamID, *original)
	for i := 2; i < len(args); i += 2 {
		if i+1 >= len(args) {
			return fmt.Errorf("missing value for %s", args[i])
		}
		field, value := args[i], args[i+1]
		if !knownMemberField(field) {
			return fmt.Errorf("unknown field: %s", field)
		}
		if _, err := edit.UpdateDraft(func(m *models.Member) {
			applyMemberField(m, field, value)
		}); err != nil {
			return err
		}
	}

	if err := edit.Submit(ctx); err != nil {
		if err == session.ErrLocked {
			return fmt.Errorf("certification fields are locked for this member")
		}
		return fmt.Errorf("update failed: %s", formatFieldErrors(edit.Errors()))
	}

	updated := edit.Original()
	return b.sendMessage(chatID, fmt.Sprintf("✅ Member %d updated:\n"+
		"%s <%s>, %s",
		updated.ID,
		updated.Name,
		updated.Email,
		updated.Phone,
	))
}

func (b *Bot) handleVerify(msg *tgbotapi.Message) error {
	args := splitArgs(msg.CommandArguments())
	if len(args) < 1 {
		return b.sendMessage(msg.Chat.ID, "Usage:\n"+
			"/verify start <team_id>\n"+
			"/verify cert <member_id> name \"<cert name>\" roll <roll> gender <gender>\n"+
			"/verify review\n"+
			"/verify commit\n"+
			"/verify cancel")
	}

	switch args[0] {
	case "start":
		if len(args) < 2 {
			return fmt.Errorf("usage: /verify start <team_id>")
		}
		return b.handleVerifyStart(msg.Chat.ID, args[1])
	case "cert":
		return b.handleVerifyCert(msg.Chat.ID, args[1:])
	case "review":
		return b.handleVerifyReview(msg.Chat.ID)
	case "commit":
		return b.handleVerifyCommit(msg.Chat.ID)
	case "cancel":
		w := b.pendingVerify(msg.Chat.ID)
		if w == nil {
			return b.sendMessage(msg.Chat.ID, "No verification in progress")
		}
		if err := w.Cancel(); err != nil {
			return fmt.Errorf("cannot cancel right now: %v", err)
		}
		b.setPendingVerify(msg.Chat.ID, nil)
		return b.sendMessage(msg.Chat.ID, "Verification dropped, nothing was sent")
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func (b *Bot) handleVerifyStart(chatID int64, rawID string) error {
	teamID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad team id: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	team, err := b.client.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to fetch team %d: %v", teamID, err)
	}
	if len(team.Members) == 0 {
		return fmt.Errorf("team %d has no members", teamID)
	}

	w := session.NewVerification(b.client, teamID, team.Members)
	if !w.CanEdit() {
		return b.sendMessage(chatID, "🔒 This team already has certificate data. Verification is one-shot and stays locked.")
	}
	b.setPendingVerify(chatID, w)

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Verification started for team %d (%s).\n", teamID, team.Title))
	out.WriteString("Fill every member, then /verify review:\n\n")
	for _, m := range w.Drafts() {
		out.WriteString(fmt.Sprintf("👤 %d: %s\n", m.ID, m.Name))
	}
	return b.sendMessage(chatID, out.String())
}

func (b *Bot) handleVerifyCert(chatID int64, args []string) error {
	w := b.pendingVerify(chatID)
	if w == nil {
		return fmt.Errorf("no verification in progress, use /verify start <team_id>")
	}
	if len(args) < 7 {
		return fmt.Errorf("usage: /verify cert <member_id> name \"<cert name>\" roll <roll> gender <gender>")
	}

	memberID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad member id: %v", err)
	}

	var certName, roll, gender string
	for i := 1; i < len(args); i += 2 {
		if i+1 >= len(args) {
			return fmt.Errorf("missing value for %s", args[i])
		}
		switch args[i] {
		case "name":
			certName = args[i+1]
		case "roll":
			roll = args[i+1]
		case "gender":
			gender = args[i+1]
		default:
			return fmt.Errorf("unknown parameter: %s", args[i])
		}
	}

	if err := w.SetCertification(memberID, certName, roll, gender); err != nil {
		if err == session.ErrLocked {
			return fmt.Errorf("certificate data is locked for this team")
		}
		return fmt.Errorf("failed to set certification: %v", err)
	}

	missing := len(w.Validate())
	if missing == 0 {
		return b.sendMessage(chatID, "✅ Saved. Every member is filled, send /verify review")
	}
	return b.sendMessage(chatID, fmt.Sprintf("✅ Saved. %d field(s) still missing", missing))
}

func (b *Bot) handleVerifyReview(chatID int64) error {
	w := b.pendingVerify(chatID)
	if w == nil {
		return fmt.Errorf("no verification in progress")
	}

	if err := w.BeginReview(); err != nil {
		return fmt.Errorf("batch is not complete: %s", formatFieldErrors(w.Errors()))
	}

	var out strings.Builder
	out.WriteString("Review the data. Exactly this will be printed on certificates:\n\n")
	for _, m := range w.Drafts() {
		out.WriteString(fmt.Sprintf("👤 %d %s\n"+
			"📜 %s\n"+
			"🎓 %s / %s\n\n",
			m.ID,
			m.Name,
			m.CertificationName,
			m.RollNumber,
			m.Gender,
		))
	}
	out.WriteString("⚠️ One shot: after /verify commit the team is locked forever.\n")
	out.WriteString("Send /verify commit to lock in, or /verify cert ... to keep editing.")
	return b.sendMessage(chatID, out.String())
}

func (b *Bot) handleVerifyCommit(chatID int64) error {
	w := b.pendingVerify(chatID)
	if w == nil {
		return fmt.Errorf("no verification in progress")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed, drafts kept: %s", formatFieldErrors(w.Errors()))
	}

	b.setPendingVerify(chatID, nil)
	return b.sendMessage(chatID, "🔒 Certificates locked in. The data can no longer be edited.")
}

func (b *Bot) handleLeaderboard(msg *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := b.client.GetLeaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch leaderboard: %v", err)
	}

	if len(entries) == 0 {
		return b.sendMessage(msg.Chat.ID, "Leaderboard is empty")
	}

	var out strings.Builder
	out.WriteString("🏆 Leaderboard:\n\n")
	for _, e := range entries {
		out.WriteString(fmt.Sprintf("%d. %s — %d\n", e.Rank, e.Title, e.Score))
	}
	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) handleTasks(msg *tgbotapi.Message) error {
	return b.handleGated(msg.Chat.ID, gate.CapabilityTasks,
		"📋 Tasks are live! Check the event portal.")
}

func (b *Bot) handleGallery(msg *tgbotapi.Message) error {
	return b.handleGated(msg.Chat.ID, gate.CapabilityGallery,
		"🖼 Gallery is open! Check the event portal.")
}

func (b *Bot) handleGated(chatID int64, capability, unlockedText string) error {
	if b.gate.IsUnlocked(capability) {
		return b.sendMessage(chatID, unlockedText)
	}

	at, ok := b.gate.UnlockAt(capability)
	if !ok {
		return b.sendMessage(chatID, "Not available")
	}
	return b.sendMessage(chatID, fmt.Sprintf("⏳ Not yet! Unlocks at %s",
		at.Format("2006-01-02 15:04 MST")))
}

func knownMemberField(field string) bool {
	switch field {
	case "name", "email", "phone", "department", "college", "year",
		"location", "tshirt", "attendance", "cert", "roll", "gender":
		return true
	}
	return false
}

func applyMemberField(m *models.Member, field, value string) {
	switch field {
	case "name":
		m.Name = value
	case "email":
		m.Email = value
	case "phone":
		m.Phone = value
	case "department":
		m.Department = value
	case "college":
		m.College = value
	case "year":
		if year, err := strconv.Atoi(value); err == nil {
			m.YearOfStudy = year
		}
	case "location":
		m.Location = value
	case "tshirt":
		m.TShirtSize = models.TShirtSize(strings.ToUpper(value))
	case "attendance":
		if score, err := strconv.Atoi(value); err == nil {
			m.AttendanceScore = score
		}
	case "cert":
		m.CertificationName = value
	case "roll":
		m.RollNumber = value
	case "gender":
		m.Gender = value
	}
}

func formatFieldErrors(errs []models.ValidationError) string {
	if len(errs) == 0 {
		return "unknown error"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// splitArgs splits command arguments on whitespace, keeping
// double-quoted chunks together.
func splitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}
