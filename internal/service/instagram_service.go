package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/transfer"
)

// InstagramService runs the two-phase Graph API publish protocol: create
// a media container, then publish it. Both phases can return a logical
// error object inside a 200 body; that is treated the same as a failed
// call and the platform's message is surfaced.
type InstagramService interface {
	Publish(ctx context.Context, imageURL, caption, businessID, accessToken string) (string, error)
}

type instagramService struct {
	cfg    config.Config
	client *http.Client
}

func NewInstagramService(cfg config.Config) InstagramService {
	return &instagramService{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type graphResponse struct {
	ID    string              `json:"id"`
	Error *transfer.GraphError `json:"error"`
}

func (s *instagramService) Publish(ctx context.Context, imageURL, caption, businessID, accessToken string) (string, error) {
	creationID, err := s.createContainer(ctx, businessID, imageURL, caption, accessToken)
	if err != nil {
		return "", err
	}

	mediaID, err := s.publishContainer(ctx, businessID, creationID, accessToken)
	if err != nil {
		return "", err
	}

	return mediaID, nil
}

func (s *instagramService) createContainer(ctx context.Context, businessID, imageURL, caption, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s/media", s.cfg.GraphAPIBaseURL, businessID)

	payload := map[string]interface{}{
		"image_url":    imageURL,
		"caption":      caption,
		"access_token": accessToken,
	}

	result, err := s.postJSON(ctx, url, payload)
	if err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("instagram container error: %s", result.Error.Message)
	}
	if result.ID == "" {
		return "", errors.New("no creation ID returned from Instagram")
	}

	return result.ID, nil
}

func (s *instagramService) publishContainer(ctx context.Context, businessID, creationID, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s/media_publish", s.cfg.GraphAPIBaseURL, businessID)

	payload := map[string]interface{}{
		"creation_id":  creationID,
		"access_token": accessToken,
	}

	result, err := s.postJSON(ctx, url, payload)
	if err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("instagram publish error: %s", result.Error.Message)
	}
	if result.ID == "" {
		return "", errors.New("no media ID returned from Instagram")
	}

	return result.ID, nil
}

func (s *instagramService) postJSON(ctx context.Context, url string, payload map[string]interface{}) (*graphResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	var result graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	// The Graph API reports most failures inside the JSON body; a non-200
	// without one still has to fail.
	if result.Error == nil && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from Instagram: %d", resp.StatusCode)
	}

	return &result, nil
}
