package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/haniscreator/mediclue/internal/directory"
)

// HospitalClient is the interface the rest of the app depends on.
type HospitalClient interface {
	// ListHospitals fetches the full remote directory.
	ListHospitals(ctx context.Context) ([]directory.Hospital, error)
}

// HospitalAdapter calls a hospital directory HTTP API.
type HospitalAdapter struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// maxFeedBytes bounds how much of a directory response is read.
const maxFeedBytes = 1 << 20

// NewHospitalAdapter constructs a HospitalAdapter.
// base := "http://localhost:8081" (no trailing slash required).
// timeout controls the HTTP client request timeout.
func NewHospitalAdapter(base string, timeout time.Duration) (*HospitalAdapter, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url: unsupported scheme %q", u.Scheme)
	}
	return &HospitalAdapter{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// ListHospitals implements HospitalClient. The feed uses the same
// {"hospitals": [...]} document as the embedded directory.
func (h *HospitalAdapter) ListHospitals(ctx context.Context) ([]directory.Hospital, error) {
	u := *h.baseURL
	u.Path = path.Join(h.baseURL.Path, "hospitals")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("hospital api status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	hs, err := directory.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return hs, nil
}
