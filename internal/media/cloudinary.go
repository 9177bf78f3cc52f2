package media

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Harshil0408/contentify-backend/pkg/hash"
)

// CloudinaryStore talks to the Cloudinary upload API with signed
// requests. Uploads use resource_type=auto so both videos and images go
// through the same call.
type CloudinaryStore struct {
	client    *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
}

type uploadResult struct {
	SecureURL string  `json:"secure_url"`
	PublicID  string  `json:"public_id"`
	Duration  float64 `json:"duration"`
}

type destroyResult struct {
	Result string `json:"result"`
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) *CloudinaryStore {
	client := resty.New().
		SetBaseURL("https://api.cloudinary.com/v1_1/" + cloudName).
		SetTimeout(2 * time.Minute)

	return &CloudinaryStore{
		client:    client,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// SetBaseURL overrides the API endpoint (tests).
func (s *CloudinaryStore) SetBaseURL(url string) {
	s.client.SetBaseURL(url)
}

func (s *CloudinaryStore) Upload(ctx context.Context, localPath string) (*Asset, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"timestamp":           timestamp,
		"signature_algorithm": "sha256",
	}

	var result uploadResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetFile("file", localPath).
		SetFormData(map[string]string{
			"api_key":             s.apiKey,
			"timestamp":           timestamp,
			"signature_algorithm": "sha256",
			"signature":           hash.SignParams(params, s.apiSecret),
		}).
		SetResult(&result).
		Post("/auto/upload")
	if err != nil {
		return nil, fmt.Errorf("media upload: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("media upload: status %d", resp.StatusCode())
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("media upload: incomplete response")
	}

	return &Asset{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Duration: result.Duration,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id":           publicID,
		"timestamp":           timestamp,
		"signature_algorithm": "sha256",
	}

	var result destroyResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"public_id":           publicID,
			"api_key":             s.apiKey,
			"timestamp":           timestamp,
			"signature_algorithm": "sha256",
			"signature":           hash.SignParams(params, s.apiSecret),
		}).
		SetResult(&result).
		Post("/" + string(kind) + "/destroy")
	if err != nil {
		return fmt.Errorf("media delete: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("media delete: status %d", resp.StatusCode())
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("media delete: unexpected result %q", result.Result)
	}
	return nil
}
