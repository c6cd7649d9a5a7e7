package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

// Client talks to the external backend API (auth, exam listing, dashboard).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a Client for the given API base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("backend"),
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Signup registers a new account. On a non-2xx response the backend's
// message is surfaced verbatim as an AUTH_FAILURE.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, *models.User, error) {
	return c.auth(ctx, "/api/users/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login authenticates an existing account. Same response shape as Signup.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return c.auth(ctx, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) auth(ctx context.Context, path string, payload map[string]string) (string, *models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("backend")
	url := c.baseURL + path

	body, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}

	log.Debug("posting auth request to: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("auth request failed: %v", err)
		return "", nil, apperrors.NewAuthFailureError("", err)
	}
	defer resp.Body.Close()

	log.Debug("auth response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		log.Warn("auth rejected: status=%d, message=%s", resp.StatusCode, msg)
		return "", nil, apperrors.NewAuthFailureError(msg, fmt.Errorf("auth status %d", resp.StatusCode))
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode auth response: %v", err)
		return "", nil, apperrors.NewAuthFailureError("", err)
	}

	log.Info("authenticated as %s", out.User.Email)
	return out.Token, &out.User, nil
}

// ListExams fetches the ordered exam catalog. Transport errors and non-2xx
// statuses map to CATALOG_UNAVAILABLE.
func (c *Client) ListExams(ctx context.Context) ([]models.Exam, error) {
	log := logger.FromContext(ctx).WithPrefix("backend")
	url := c.baseURL + "/exams"

	log.Debug("fetching exams from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch exams: %v", err)
		return nil, apperrors.NewCatalogUnavailableError(err)
	}
	defer resp.Body.Close()

	log.Debug("exams response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("exams request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, apperrors.NewCatalogUnavailableError(fmt.Errorf("exams status %d: %s", resp.StatusCode, string(body)))
	}

	var exams []models.Exam
	if err := json.NewDecoder(resp.Body).Decode(&exams); err != nil {
		log.Error("failed to decode exams response: %v", err)
		return nil, apperrors.NewCatalogUnavailableError(err)
	}

	log.Info("fetched %d exams", len(exams))
	return exams, nil
}

// Dashboard fetches dashboard statistics for the bearer token. A missing
// token is a local precondition failure; no request is sent.
func (c *Client) Dashboard(ctx context.Context, token string) (*models.DashboardData, error) {
	log := logger.FromContext(ctx).WithPrefix("backend")

	if token == "" {
		log.Debug("dashboard requested without token")
		return nil, apperrors.NewAuthFailureError("no authentication token found", nil)
	}

	url := c.baseURL + "/users/dashboard"
	log.Debug("fetching dashboard from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch dashboard: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("dashboard response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("dashboard request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("dashboard status %d: %s", resp.StatusCode, string(body))
	}

	var out models.DashboardData
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode dashboard response: %v", err)
		return nil, err
	}

	return &out, nil
}

func readErrorMessage(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 1024))
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Message != "" {
			return er.Message
		}
		if er.Error != "" {
			return er.Error
		}
	}
	return strings.TrimSpace(string(body))
}
