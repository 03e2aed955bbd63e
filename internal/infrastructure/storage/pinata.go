package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"glow-contrib.backend/pkg/logger"
)

const defaultPinataBaseURL = "https://api.pinata.cloud"

// Typed errors for the pinning client
var (
	ErrMissingCredentials = errors.New("missing pinata api credentials")
	ErrFileNotFound       = errors.New("file not found")
)

// Backoff between upload attempts: 0.5s after the first failure, 1.5s after
// the second. Three attempts total.
var pinataRetryDelays = []time.Duration{500 * time.Millisecond, 1500 * time.Millisecond}

var sleepBetweenAttempts = time.Sleep

// PinResult holds the IPFS metadata returned by a successful pin
type PinResult struct {
	CID       string `json:"cid"`
	Size      int64  `json:"size"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
}

// AuthStatus is the outcome of a credential probe
type AuthStatus struct {
	OK         bool   `json:"ok"`
	Configured bool   `json:"configured"`
	Status     int    `json:"status,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// PinataClient uploads files to the Pinata pinning service
type PinataClient struct {
	apiKey    string
	apiSecret string

	// BaseURL may be overridden in tests
	BaseURL string

	uploadClient *http.Client
	authClient   *http.Client
}

// NewPinataClient creates a Pinata client from API credentials
func NewPinataClient(apiKey, apiSecret string) *PinataClient {
	return &PinataClient{
		apiKey:       apiKey,
		apiSecret:    apiSecret,
		BaseURL:      defaultPinataBaseURL,
		uploadClient: &http.Client{Timeout: 60 * time.Second},
		authClient:   &http.Client{Timeout: 20 * time.Second},
	}
}

// TestAuth probes the configured credentials. A client with no credentials
// reports not-ok without touching the network.
func (c *PinataClient) TestAuth(ctx context.Context) AuthStatus {
	if c.apiKey == "" || c.apiSecret == "" {
		return AuthStatus{OK: false, Configured: false, Reason: ErrMissingCredentials.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/data/testAuthentication", nil)
	if err != nil {
		return AuthStatus{OK: false, Configured: true, Reason: err.Error()}
	}
	c.setAuthHeaders(req)

	resp, err := c.authClient.Do(req)
	if err != nil {
		return AuthStatus{OK: false, Configured: true, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return AuthStatus{OK: true, Configured: true, Status: resp.StatusCode}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
	return AuthStatus{OK: false, Configured: true, Status: resp.StatusCode, Reason: string(body)}
}

// Upload pins a local file under the given display name, retrying transient
// failures (HTTP 5xx, 429, network errors) with increasing backoff.
func (c *PinataClient) Upload(ctx context.Context, path, name string) (*PinResult, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if name == "" {
		name = filepath.Base(path)
	}

	var lastErr error
	attempts := len(pinataRetryDelays) + 1
	for attempt := 0; attempt < attempts; attempt++ {
		result, retryable, err := c.uploadOnce(ctx, path, name)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		logger.Warn(ctx, "pinata upload attempt failed",
			zap.Int("attempt", attempt+1),
			zap.String("name", name),
			zap.Error(err),
		)
		if attempt < len(pinataRetryDelays) {
			sleepBetweenAttempts(pinataRetryDelays[attempt])
		}
	}
	return nil, fmt.Errorf("pinata upload failed after %d attempts: %w", attempts, lastErr)
}

func (c *PinataClient) uploadOnce(ctx context.Context, path, name string) (*PinResult, bool, error) {
	body, contentType, err := c.buildPinBody(path, name)
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/pinning/pinFileToIPFS", body)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuthHeaders(req)

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, true, fmt.Errorf("pinata transient error %d: %s", resp.StatusCode, msg)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, false, fmt.Errorf("pinata error %d: %s", resp.StatusCode, msg)
	}

	var pinResp struct {
		IpfsHash  string `json:"IpfsHash"`
		PinSize   int64  `json:"PinSize"`
		Timestamp string `json:"Timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pinResp); err != nil {
		return nil, false, fmt.Errorf("decode pinata response: %w", err)
	}
	if pinResp.IpfsHash == "" {
		return nil, false, errors.New("no CID in pinata response")
	}

	return &PinResult{
		CID:       pinResp.IpfsHash,
		Size:      pinResp.PinSize,
		Timestamp: pinResp.Timestamp,
		Name:      name,
	}, false, nil
}

// buildPinBody reads the file fresh for each attempt
func (c *PinataClient) buildPinBody(path, name string) (*bytes.Buffer, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}

	meta, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("pinataMetadata", string(meta)); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func (c *PinataClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.apiSecret)
}
