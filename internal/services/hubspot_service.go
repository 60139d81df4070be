// internal/services/hubspot_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ckaracaev/slack-sales-task/internal/models"
)

// HubSpotService wraps the authenticated calls against the HubSpot CRM API.
// Read paths (SearchDeals, ListOwners) never surface errors: transient CRM
// trouble degrades to an empty result so the modal keeps working. The write
// path (CreateTask) propagates failures so the user can be told.
type HubSpotService interface {
	SearchDeals(ctx context.Context, query string) []models.Deal
	ListOwners(ctx context.Context, query string) []models.Owner
	CreateTask(ctx context.Context, input models.TaskInput) (string, error)
	CompleteTask(ctx context.Context, taskID string) error
	SearchTasks(ctx context.Context, filters []models.PropertyFilter) ([]models.Task, error)
}

type hubSpotService struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewHubSpotService creates a HubSpot client with a bearer token. baseURL is
// configurable so tests can point at a local server.
func NewHubSpotService(token, baseURL string) HubSpotService {
	return &hubSpotService{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []models.PropertyFilter `json:"filters"`
}

type dealSearchResponse struct {
	Results []models.Deal `json:"results"`
}

type ownerListResponse struct {
	Results []models.Owner `json:"results"`
}

type taskSearchResponse struct {
	Results []models.Task `json:"results"`
}

type createTaskResponse struct {
	ID string `json:"id"`
}

func (s *hubSpotService) SearchDeals(ctx context.Context, query string) []models.Deal {
	if strings.TrimSpace(query) != "" {
		body := searchRequest{
			FilterGroups: []filterGroup{{Filters: []models.PropertyFilter{
				{PropertyName: "dealname", Operator: "CONTAINS_TOKEN", Value: query},
			}}},
			Properties: []string{"dealname", "dealstage", "amount"},
			Limit:      10,
		}
		var out dealSearchResponse
		if err := s.doJSON(ctx, http.MethodPost, "/crm/v3/objects/deals/search", body, &out); err != nil {
			log.Printf("[hs][searchDeals][err] %v", err)
			return nil
		}
		return out.Results
	}

	q := url.Values{}
	q.Set("limit", "10")
	q.Set("properties", "dealname")
	var out dealSearchResponse
	if err := s.doJSON(ctx, http.MethodGet, "/crm/v3/objects/deals?"+q.Encode(), nil, &out); err != nil {
		log.Printf("[hs][searchDeals][err] %v", err)
		return nil
	}
	return out.Results
}

func (s *hubSpotService) ListOwners(ctx context.Context, query string) []models.Owner {
	var out ownerListResponse
	if err := s.doJSON(ctx, http.MethodGet, "/crm/v3/owners/", nil, &out); err != nil {
		log.Printf("[hs][listOwners][err] %v", err)
		return nil
	}
	return filterOwners(out.Results, query)
}

// filterOwners applies a case-insensitive substring match against first name,
// last name and email; a hit on any one field keeps the owner. Results are
// truncated to 20.
func filterOwners(owners []models.Owner, query string) []models.Owner {
	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		filtered := make([]models.Owner, 0, len(owners))
		for _, o := range owners {
			if strings.Contains(strings.ToLower(o.FirstName), q) ||
				strings.Contains(strings.ToLower(o.LastName), q) ||
				strings.Contains(strings.ToLower(o.Email), q) {
				filtered = append(filtered, o)
			}
		}
		owners = filtered
	}
	if len(owners) > 20 {
		owners = owners[:20]
	}
	return owners
}

func (s *hubSpotService) CreateTask(ctx context.Context, input models.TaskInput) (string, error) {
	props := map[string]any{
		"hs_task_subject":  input.Title,
		"hs_task_body":     input.Description,
		"hs_task_status":   string(models.StatusNotStarted),
		"hs_task_priority": models.PriorityNone,
	}
	if input.DueISO != "" {
		due, err := time.ParseInLocation("2006-01-02T15:04:05", input.DueISO, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid due timestamp %q: %w", input.DueISO, err)
		}
		props["hs_timestamp"] = due.UnixMilli()
	}
	if input.OwnerID != "" {
		props["hubspot_owner_id"] = input.OwnerID
	}

	var created createTaskResponse
	if err := s.doJSON(ctx, http.MethodPost, "/crm/v3/objects/tasks", map[string]any{"properties": props}, &created); err != nil {
		return "", err
	}

	assocPath := fmt.Sprintf("/crm/v4/objects/tasks/%s/associations/deals/%s/task_to_deal", created.ID, input.DealID)
	if err := s.doJSON(ctx, http.MethodPut, assocPath, struct{}{}, nil); err != nil {
		return "", err
	}

	return created.ID, nil
}

func (s *hubSpotService) CompleteTask(ctx context.Context, taskID string) error {
	body := map[string]any{
		"properties": map[string]any{"hs_task_status": string(models.StatusCompleted)},
	}
	return s.doJSON(ctx, http.MethodPatch, "/crm/v3/objects/tasks/"+taskID, body, nil)
}

func (s *hubSpotService) SearchTasks(ctx context.Context, filters []models.PropertyFilter) ([]models.Task, error) {
	body := searchRequest{
		FilterGroups: []filterGroup{{Filters: filters}},
		Properties:   []string{"hs_task_subject", "hs_task_status", "hs_timestamp", "hubspot_owner_id"},
		Limit:        50,
	}
	var out taskSearchResponse
	if err := s.doJSON(ctx, http.MethodPost, "/crm/v3/objects/tasks/search", body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (s *hubSpotService) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("hubspot %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("hubspot %s %s failed: status=%d body=%s", method, path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("hubspot %s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
