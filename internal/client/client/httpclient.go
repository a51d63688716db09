package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/google/uuid"
)

// HTTPClient is the REST implementation of Client. It keeps the current
// session token and attaches it to authenticated requests; the backend
// expects the raw token in the Authorization header.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// apiMessage is the error envelope the backend uses on non-2xx responses.
type apiMessage struct {
	Message string `json:"message"`
}

// do issues one JSON request. body and out may be nil. authed attaches the
// session token. Non-2xx responses come back as mapped errors; transport
// failures come back as ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if authed {
		req.Header.Set(common.AuthHeaderName, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg apiMessage
		_ = json.Unmarshal(data, &msg)
		return mapAPIError(resp.StatusCode, msg.Message)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapAPIError classifies a non-2xx response into the error taxonomy.
func mapAPIError(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	}
	if strings.Contains(message, duplicateMarker) {
		return &DuplicateError{Field: duplicateField(message), Message: message}
	}
	if strings.Contains(strings.ToLower(message), credentialsMarker) {
		return fmt.Errorf("%w: %s", ErrCredentialsRejected, message)
	}
	return &APIError{Status: status, Message: message}
}

func duplicateField(message string) string {
	switch {
	case strings.Contains(message, duplicateEmailIndex):
		return "email"
	case strings.Contains(message, duplicateCPFIndex):
		return "cpf"
	default:
		return ""
	}
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/user", reg, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a signed token. The token is kept on the
// client for subsequent authenticated calls and also returned to the caller
// for persistence.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/user/login", creds, &resp, false); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user/"+id, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/user/"+id, update, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/"+id, nil, nil, true)
}

// Products lists the store. A 400 response carrying the backend's
// "no products" message means an empty catalog, not a failure.
func (c *HTTPClient) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/product", nil, &products, true)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest &&
			strings.Contains(apiErr.Message, noProductsMarker) {
			return []models.Product{}, nil
		}
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) CreateLog(ctx context.Context, req models.LogRequest) error {
	return c.do(ctx, http.MethodPost, "/log", req, nil, true)
}

// Logs returns the user's full transaction history. The backend answers 400
// when the user has no logs yet; that is an empty history.
func (c *HTTPClient) Logs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	var logs []models.LogEntry
	err := c.do(ctx, http.MethodGet, "/log/"+userID, nil, &logs, true)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return []models.LogEntry{}, nil
		}
		return nil, err
	}
	return logs, nil
}

// PendingLogs lists redemptions not yet collected. Backend errors on these
// status views degrade to an empty list; only transport failures surface.
func (c *HTTPClient) PendingLogs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	return c.statusLogs(ctx, "/log/not/redeemed/"+userID)
}

// RedeemedLogs lists collected redemptions.
func (c *HTTPClient) RedeemedLogs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	return c.statusLogs(ctx, "/log/redeemed/"+userID)
}

func (c *HTTPClient) statusLogs(ctx context.Context, path string) ([]models.LogEntry, error) {
	var logs []models.LogEntry
	err := c.do(ctx, http.MethodGet, path, nil, &logs, true)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return []models.LogEntry{}, nil
		}
		return nil, err
	}
	return logs, nil
}

func (c *HTTPClient) MarkLogRedeemed(ctx context.Context, logID string) (*models.LogEntry, error) {
	var entry models.LogEntry
	if err := c.do(ctx, http.MethodPut, "/log/"+logID, nil, &entry, true); err != nil {
		return nil, err
	}
	return &entry, nil
}
