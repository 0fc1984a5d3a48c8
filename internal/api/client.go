// Package api is the HTTP client for the kardemumma persistence API.
// Edit sessions depend on it through the session.RosterAPI interface;
// everything here is plain request/response JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

// Error is the structured error body returned by the server. Fields is
// populated for validation rejections so callers can render errors next
// to the offending inputs.
type Error struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Fields  []models.ValidationError `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

type Client struct {
	BaseURL string
	Event   string
	Token   string

	// Headers are attached to every request, matching the server's
	// required-headers config.
	Headers map[string]string

	HTTP *http.Client
}

func NewClient(baseURL, event, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Event:   event,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetTeam fetches a team with its full member roster, the usual way to
// seed an edit session with canonical records.
func (c *Client) GetTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	var resp models.Team
	path := fmt.Sprintf("/api/v1/%s/teams/%d", c.Event, teamID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddMember creates a member on a team and returns the canonical
// record with its server-assigned id.
func (c *Client) AddMember(ctx context.Context, teamID int64, member models.Member) (*models.Member, error) {
	var resp models.Member
	path := fmt.Sprintf("/api/v1/%s/teams/%d/members", c.Event, teamID)
	if err := c.do(ctx, http.MethodPost, path, member, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateMember sends only the changed fields and returns the canonical
// record as the server now holds it.
func (c *Client) UpdateMember(ctx context.Context, teamID, memberID int64, patch diff.MemberPatch) (*models.Member, error) {
	var resp models.Member
	path := fmt.Sprintf("/api/v1/%s/teams/%d/members/%d", c.Event, teamID, memberID)
	if err := c.do(ctx, http.MethodPatch, path, patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTeam sends only the changed fields and returns the canonical
// team record.
func (c *Client) UpdateTeam(ctx context.Context, teamID int64, patch diff.TeamPatch) (*models.Team, error) {
	var resp models.Team
	path := fmt.Sprintf("/api/v1/%s/teams/%d", c.Event, teamID)
	if err := c.do(ctx, http.MethodPatch, path, patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTeam removes a team and its members.
func (c *Client) DeleteTeam(ctx context.Context, teamID int64) error {
	path := fmt.Sprintf("/api/v1/%s/teams/%d", c.Event, teamID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// GetLeaderboard fetches the current ranking.
func (c *Client) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var resp struct {
		Entries []models.LeaderboardEntry `json:"entries"`
	}
	path := fmt.Sprintf("/api/v1/%s/leaderboard", c.Event)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// ConfirmPayment records a payment confirmation for a team.
func (c *Client) ConfirmPayment(ctx context.Context, teamID int64, payment models.Payment) error {
	path := fmt.Sprintf("/api/v1/%s/teams/%d/payment", c.Event, teamID)
	return c.do(ctx, http.MethodPost, path, payment, nil)
}

// UpdateCertifications issues the batched verification commit: all
// three certificate fields for every member in one request.
func (c *Client) UpdateCertifications(ctx context.Context, teamID int64, updates []models.CertUpdate) error {
	body := struct {
		TeamID  int64               `json:"teamId"`
		Updates []models.CertUpdate `json:"updates"`
	}{TeamID: teamID, Updates: updates}
	path := fmt.Sprintf("/api/v1/%s/certifications", c.Event)
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	for name, value := range c.Headers {
		req.Header.Set(name, value)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr Error
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Code != "" {
			return &apiErr
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
