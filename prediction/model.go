package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Model scores a feature vector into a predicted mood level. Absence of a
// model is a normal state; callers fall back to the heuristic.
type Model interface {
	Predict(ctx context.Context, features Features) (float64, error)
}

// RemoteModel scores against an externally trained predictor over HTTP.
// The call is time-boxed by the client timeout; any failure surfaces as an
// error so the caller can degrade to the heuristic.
type RemoteModel struct {
	url    string
	client *http.Client
}

// NewRemoteModel returns a scorer for the given endpoint, or nil when no
// endpoint is configured.
func NewRemoteModel(url string, timeout time.Duration) *RemoteModel {
	if url == "" {
		return nil
	}
	return &RemoteModel{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type remoteScoreResponse struct {
	PredictedMoodLevel float64 `json:"predicted_mood_level"`
}

func (m *RemoteModel) Predict(ctx context.Context, features Features) (float64, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model endpoint returned %d", resp.StatusCode)
	}
	var out remoteScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.PredictedMoodLevel, nil
}
