package handlers

import (
	"strconv"
	"strings"
	"time"

	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kardemumma/internal/app"
	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/metrics"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/store"
	"github.com/shrimpsizemoose/kardemumma/internal/validate"
)

type RosterHandler struct {
	service *app.Service
}

func NewRosterHandler(service *app.Service) *RosterHandler {
	return &RosterHandler{
		service: service,
	}
}

// apiError mirrors the body the client package expects: a stable code,
// a human message and optional per-field validation errors.
type apiError struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Fields  []models.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Code: code, Message: message})
}

func writeValidationError(w http.ResponseWriter, fields []models.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, apiError{
		Code:    "validation_failed",
		Message: "one or more fields are invalid",
		Fields:  fields,
	})
}

// guard runs the shared per-request checks and extracts the event slug.
// Returns "" after writing the error response if the request is bad.
func (h *RosterHandler) guard(w http.ResponseWriter, r *http.Request) string {
	if !h.service.ValidateHeaders(r.Header) {
		writeError(w, http.StatusForbidden, "forbidden", "these are not the droids you are looking for")
		return ""
	}

	event := r.PathValue("event")
	if event == "" {
		logger.Error.Printf("Failed to extract event from path: %s", r.URL.Path)
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid event")
		return ""
	}

	admin := r.Header.Get(h.service.Config.API.AdminIDHeader)
	if admin == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid admin id specified")
		return ""
	}

	if err := h.service.ValidateAuthAndAdmin(r, event, admin); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return ""
	}

	return event
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

func observe(r *http.Request, start time.Time) {
	metrics.APIRequestDuration.WithLabelValues(
		r.URL.Path,
		r.Method,
		"200",
	).Observe(time.Since(start).Seconds())
}

func (h *RosterHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	event := h.guard(w, r)
	if event == "" {
		return
	}

	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid team id")
		return
	}

	team, err := h.service.Store.GetTeam(event, teamID)
	if err != nil {
		logger.Error.Printf("Failed to fetch team %d: %v", teamID, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch team")
		return
	}
	if team == nil {
		writeError(w, http.StatusNotFound, "not_found", "Team not found")
		return
	}

	writeJSON(w, http.StatusOK, team)
}

func (h *RosterHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer observe(r, start)

	event := h.guard(w, r)
	if event == "" {
		return
	}

	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid team id")
		return
	}

	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	member.TeamID = teamID
	member.Normalize()

	if fields := validate.Member(member); len(fields) > 0 {
		metrics.RosterWritesTotal.WithLabelValues(event, "member", "rejected").Inc()
		writeValidationError(w, fields)
		return
	}

	team, err := h.service.Store.GetTeam(event, teamID)
	if err != nil {
		logger.Error.Printf("Failed to fetch team %d: %v", teamID, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch team")
		return
	}
	if team == nil {
		writeError(w, http.StatusNotFound, "not_found", "Team not found")
		return
	}

	if err := h.service.Store.CreateMember(&member); err != nil {
		logger.Error.Printf("Failed to create member: %v", err)
		metrics.RosterWritesTotal.WithLabelValues(event, "member", "error").Inc()
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save member")
		return
	}

	metrics.RosterWritesTotal.WithLabelValues(event, "member", "ok").Inc()
	writeJSON(w, http.StatusCreated, member)
}

func (h *RosterHandler) HandleUpdateMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer observe(r, start)

	event := h.guard(w, r)
	if event == "" {
		return
	}

	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid team id")
		return
	}
	memberID, ok := pathID(r, "memberID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid member id")
		return
	}

	var patch diff.MemberPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	if fields := validateMemberPatch(patch); len(fields) > 0 {
		metrics.RosterWritesTotal.WithLabelValues(event, "member", "rejected").Inc()
		writeValidationError(w, fields)
		return
	}

	member, err := h.service.Store.UpdateMemberFields(teamID, memberID, patch)
	switch {
	case err == store.ErrNotFound:
		writeError(w, http.StatusNotFound, "not_found", "Member not found")
		return
	case err == store.ErrCertLocked:
		metrics.RosterWritesTotal.WithLabelValues(event, "member", "rejected").Inc()
		writeError(w, http.StatusConflict, "cert_locked", "Certification fields are locked")
		return
	case err != nil:
		logger.Error.Printf("Failed to update member %d: %v", memberID, err)
		metrics.RosterWritesTotal.WithLabelValues(event, "member", "error").Inc()
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update member")
		return
	}

	metrics.RosterWritesTotal.WithLabelValues(event, "member", "ok").Inc()
	writeJSON(w, http.StatusOK, member)
}

func (h *RosterHandler) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer observe(r, start)

	event := h.guard(w, r)
	if event == "" {
		return
	}

	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid team id")
		return
	}

	var patch diff.TeamPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	if fields := validateTeamPatch(patch); len(fields) > 0 {
		metrics.RosterWritesTotal.WithLabelValues(event, "team", "rejected").Inc()
		writeValidationError(w, fields)
		return
	}

	team, err := h.service.Store.UpdateTeamFields(event, teamID, patch)
	switch {
	case err == store.ErrNotFound:
		writeError(w, http.StatusNotFound, "not_found", "Team not found")
		return
	case err != nil:
		logger.Error.Printf("Failed to update team %d: %v", teamID, err)
		metrics.RosterWritesTotal.WithLabelValues(event, "team", "error").Inc()
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update team")
		return
	}

	metrics.RosterWritesTotal.WithLabelValues(event, "team", "ok").Inc()
	writeJSON(w, http.StatusOK, team)
}

func (h *RosterHandler) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer observe(r, start)

	event := h.guard(w, r)
	if event == "" {
		return
	}

	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid team id")
		return
	}

	err := h.service.Store.DeleteTeam(event, teamID)
	switch {
	case err == store.ErrNotFound:
		metrics.TeamDeletesTotal.WithLabelValues(event, "not_found").Inc()
		writeError(w, http.StatusNotFound, "not_found", "Team not found")
		return
	case err != nil:
		logger.Error.Printf("Failed to delete team %d: %v", teamID, err)
		metrics.TeamDeletesTotal.WithLabelValues(event, "error").Inc()
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete team")
		return
	}

	metrics.TeamDeletesTotal.WithLabelValues(event, "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// HandleCertifications commits the batched verification form. The store
// enforces the one-shot lock: once any member of the team carries
// certificate data the whole batch is rejected.
func (h *RosterHandler) HandleCertifications(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer observe(r, start)

	event := h.guard(w, r)
	if event == "" {
		return
	}

	var req struct {
		TeamID  int64               `json:"teamId"`
		Updates []models.CertUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.TeamID <= 0 || len(req.Updates) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "teamId and updates are required")
		return
	}

	var fields []models.ValidationError
	for i := range req.Updates {
		req.Updates[i].Normalize()
		fields = append(fields, validateCertUpdate(i, req.Updates[i])...)
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	err := h.service.Store.ApplyCertUpdates(req.TeamID, req.Updates)
	switch {
	case err == store.ErrNotFound:
		writeError(w, http.StatusNotFound, "not_found", "Team or member not found")
		return
	case err == store.ErrCertLocked:
		writeError(w, http.StatusConflict, "cert_locked", "Certification fields are locked")
		return
	case err != nil:
		logger.Error.Printf("Failed to apply certification updates for team %d: %v", req.TeamID, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to apply certification updates")
		return
	}

	metrics.CertificationLocksTotal.WithLabelValues(event).Inc()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *RosterHandler) HandleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer observe(r, start)

	event := h.guard(w, r)
	if event == "" {
		return
	}

	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid team id")
		return
	}

	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	payment.TeamID = teamID
	if strings.TrimSpace(payment.TransactionID) == "" {
		writeValidationError(w, []models.ValidationError{
			{Field: "transactionId", Message: "is required"},
		})
		return
	}
	if payment.Timestamp == 0 {
		payment.Timestamp = time.Now().Unix()
	}

	if err := h.service.Store.RecordPayment(&payment); err != nil {
		logger.Error.Printf("Failed to record payment for team %d: %v", teamID, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to record payment")
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *RosterHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	event := h.guard(w, r)
	if event == "" {
		return
	}

	entries, err := h.service.GetLeaderboard(event)
	if err != nil {
		logger.Error.Printf("Failed to get leaderboard for event %s: %v", event, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// HandleFeatures reports the unlock schedule so clients can render
// countdowns without hardcoding instants.
func (h *RosterHandler) HandleFeatures(w http.ResponseWriter, r *http.Request) {
	event := h.guard(w, r)
	if event == "" {
		return
	}

	type featureState struct {
		Unlocked bool   `json:"unlocked"`
		UnlockAt string `json:"unlockAt"`
	}

	features := map[string]featureState{}
	for _, name := range h.service.Gate.Capabilities() {
		at, _ := h.service.Gate.UnlockAt(name)
		features[name] = featureState{
			Unlocked: h.service.Gate.IsUnlocked(name),
			UnlockAt: at.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"features": features,
	})
}

// validateMemberPatch checks only the fields the patch carries. A field
// absent from the payload keeps its stored value and is not checked.
func validateMemberPatch(patch diff.MemberPatch) []models.ValidationError {
	var errs []models.ValidationError
	requireNonBlank := func(field string, val *string) {
		if val != nil && strings.TrimSpace(*val) == "" {
			errs = append(errs, models.ValidationError{Field: field, Message: "is required"})
		}
	}

	requireNonBlank("name", patch.Name)
	requireNonBlank("email", patch.Email)
	requireNonBlank("phone", patch.Phone)

	if patch.Email != nil && !strings.Contains(*patch.Email, "@") {
		errs = append(errs, models.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if patch.YearOfStudy != nil && (*patch.YearOfStudy < 1 || *patch.YearOfStudy > 4) {
		errs = append(errs, models.ValidationError{Field: "yearOfStudy", Message: "must be between 1 and 4"})
	}
	if patch.TShirtSize != nil && !models.IsValidTShirtSize(*patch.TShirtSize) {
		errs = append(errs, models.ValidationError{Field: "tShirtSize", Message: "must be a valid size"})
	}
	if patch.AttendanceScore != nil && *patch.AttendanceScore < 0 {
		errs = append(errs, models.ValidationError{Field: "attendanceScore", Message: "must not be negative"})
	}

	return errs
}

func validateTeamPatch(patch diff.TeamPatch) []models.ValidationError {
	var errs []models.ValidationError
	if patch.Title != nil && len(strings.TrimSpace(*patch.Title)) < 3 {
		errs = append(errs, models.ValidationError{Field: "title", Message: "must be at least 3 characters"})
	}
	if patch.PSID != nil && *patch.PSID < 0 {
		errs = append(errs, models.ValidationError{Field: "psId", Message: "must be a positive integer"})
	}
	return errs
}

func validateCertUpdate(idx int, u models.CertUpdate) []models.ValidationError {
	var errs []models.ValidationError
	require := func(field, val string) {
		if strings.TrimSpace(val) == "" {
			errs = append(errs, models.ValidationError{
				Field:   "updates[" + strconv.Itoa(idx) + "]." + field,
				Message: "is required",
			})
		}
	}
	require("certificationName", u.CertificationName)
	require("rollNumber", u.RollNumber)
	require("gender", u.Gender)
	if u.MemberID <= 0 {
		errs = append(errs, models.ValidationError{
			Field:   "updates[" + strconv.Itoa(idx) + "].memberId",
			Message: "is required",
		})
	}
	return errs
}
