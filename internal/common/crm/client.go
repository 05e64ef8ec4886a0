package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the agency CRM REST API used for agent lead management.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// Lead is the CRM representation of a student lead owned by an agent.
type Lead struct {
	ID            string `json:"id,omitempty"`
	AgentID       string `json:"agentId"`
	StudentName   string `json:"studentName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Country       string `json:"country,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	Source        string `json:"source,omitempty"`
	Stage         string `json:"stage,omitempty"`
}

type createLeadResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateLead pushes a new lead to the CRM and returns its CRM-side ID.
func (c *Client) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	url := fmt.Sprintf("%s/Leads", c.baseURL)

	payload := map[string]interface{}{
		"data": []Lead{*lead},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("CRM returned status %d: %s", resp.StatusCode, string(body))
	}

	var createResp createLeadResponse
	if err := json.Unmarshal(body, &createResp); err != nil {
		return "", fmt.Errorf("failed to decode CRM response: %w", err)
	}

	if len(createResp.Data) == 0 {
		return "", fmt.Errorf("CRM returned empty response")
	}
	if createResp.Data[0].Status != "success" {
		return "", fmt.Errorf("CRM rejected lead: %s", createResp.Data[0].Message)
	}

	return createResp.Data[0].Details.ID, nil
}

// UpdateLeadStage moves an existing lead to a new pipeline stage.
func (c *Client) UpdateLeadStage(ctx context.Context, leadID, stage string) error {
	url := fmt.Sprintf("%s/Leads/%s", c.baseURL, leadID)

	payload := map[string]interface{}{
		"data": []map[string]string{{"stage": stage}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal stage update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("CRM returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
