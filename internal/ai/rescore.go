package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rescoreConcurrency bounds the candidate rescore fan-out.
const rescoreConcurrency = 4

// RescoreJob refreshes match scores after a posting changes: the job is
// re-embedded, matching candidates are fetched, and each match is rescored.
func (c *Client) RescoreJob(ctx context.Context, jobID uuid.UUID) error {
	if c.matchServiceURL == "" {
		return nil
	}

	if err := c.postJSON(ctx, "/embeddings/jobs/"+jobID.String(), nil); err != nil {
		return fmt.Errorf("failed to refresh job embedding: %w", err)
	}

	candidates, err := c.matchCandidates(ctx, jobID)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rescoreConcurrency)
	for _, candidateID := range candidates {
		g.Go(func() error {
			payload := map[string]string{
				"job_id":       jobID.String(),
				"candidate_id": candidateID,
			}
			if err := c.postJSON(ctx, "/rescore", payload); err != nil {
				return fmt.Errorf("failed to rescore candidate %s: %w", candidateID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// matchCandidates returns the IDs of candidates currently matched to a job.
func (c *Client) matchCandidates(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.matchServiceURL+"/match/jobs/"+jobID.String()+"/candidates", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("match service request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read match response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match service returned %d", resp.StatusCode)
	}

	var parsed struct {
		Candidates []string `json:"candidates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}
	return parsed.Candidates, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.matchServiceURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("match service returned %d for %s", resp.StatusCode, path)
	}
	return nil
}
