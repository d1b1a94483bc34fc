package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

// maxErrorBodySize caps how much of a non-2xx response body is read.
// Success bodies are read in full.
const maxErrorBodySize = 1 << 20

// SessionReader supplies the session whose token authenticates each request.
// It is read on every call so a login or logout elsewhere is picked up by the
// next request.
type SessionReader interface {
	Get() domain.Session
}

// Client is the superadmin API client.
type Client struct {
	baseURL    string
	session    SessionReader
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new API client. Trailing slashes on baseURL are stripped.
func New(baseURL string, sess SessionReader, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// --- Auth ---

// LoginResult is a validated login response.
type LoginResult struct {
	Token string
	User  domain.AdminUser
}

type loginResponse struct {
	envelope
	Token string            `json:"token"`
	User  *domain.AdminUser `json:"user"`
}

// Login exchanges credentials for a token. It does not persist anything.
// A 2xx body without both a token and a user is rejected: with an *APIError
// when the body carries an error text, with ErrInvalidResponse otherwise.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error) {
	var resp loginResponse
	status, err := c.doRequest(ctx, http.MethodPost, "/api/superadmin/auth/login", false, creds, &resp)
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}

	// Bodies without "ok" are accepted when they carry a token.
	ok := resp.Token != ""
	if resp.OK != nil {
		ok = *resp.OK
	}
	if !ok || resp.Token == "" || resp.User == nil {
		if resp.Error != "" {
			return nil, fmt.Errorf("client.Login: %w", &APIError{StatusCode: status, Message: resp.Error})
		}
		return nil, fmt.Errorf("client.Login: %w", ErrInvalidResponse)
	}
	return &LoginResult{Token: resp.Token, User: *resp.User}, nil
}

// --- Stats ---

type statsResponse struct {
	envelope
	Stats *domain.Stats `json:"stats"`
}

// GetStats returns the platform stats snapshot. Missing stats decode as zero.
func (c *Client) GetStats(ctx context.Context) (domain.Stats, error) {
	var resp statsResponse
	if err := c.get(ctx, "/api/superadmin/stats", &resp); err != nil {
		return domain.Stats{}, fmt.Errorf("client.GetStats: %w", err)
	}
	if resp.Stats == nil {
		return domain.Stats{}, nil
	}
	return *resp.Stats, nil
}

// --- Salons ---

// CreateSalonRequest is the payload for onboarding a salon together with its
// owner account. The server creates both or neither.
type CreateSalonRequest struct {
	Name          string          `json:"name"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	WhatsApp      string          `json:"whatsapp"`
	PlanType      domain.PlanType `json:"plan_type"`
	OwnerEmail    string          `json:"ownerEmail"`
	OwnerPassword string          `json:"ownerPassword"`
}

// UpdateSalonRequest is the editable field set sent with PATCH.
type UpdateSalonRequest struct {
	Name       string          `json:"name"`
	City       string          `json:"city"`
	Address    string          `json:"address"`
	Phone      string          `json:"phone"`
	WhatsApp   string          `json:"whatsapp"`
	BrandColor string          `json:"brand_color"`
	PlanType   domain.PlanType `json:"plan_type"`
	IsActive   bool            `json:"is_active"`
}

// SalonDetail is a salon and its owner as returned by the detail endpoint.
// Either may be nil when the server omits it.
type SalonDetail struct {
	Salon *domain.Salon `json:"salon"`
	Owner *domain.Owner `json:"owner"`
}

// CreatedSalon is the result of CreateSalon.
type CreatedSalon struct {
	Salon     *domain.Salon `json:"salon"`
	OwnerUser *domain.Owner `json:"ownerUser"`
}

type salonsResponse struct {
	envelope
	Salons []domain.Salon `json:"salons"`
}

type salonDetailResponse struct {
	envelope
	SalonDetail
}

type createdSalonResponse struct {
	envelope
	CreatedSalon
}

type salonResponse struct {
	envelope
	Salon *domain.Salon `json:"salon"`
}

// ListSalons fetches every salon in server order. Never returns a nil slice
// on success.
func (c *Client) ListSalons(ctx context.Context) ([]domain.Salon, error) {
	var resp salonsResponse
	if err := c.get(ctx, "/api/superadmin/salons", &resp); err != nil {
		return nil, fmt.Errorf("client.ListSalons: %w", err)
	}
	if resp.Salons == nil {
		return []domain.Salon{}, nil
	}
	return resp.Salons, nil
}

// GetSalon fetches a single salon and its owner by ID.
func (c *Client) GetSalon(ctx context.Context, id string) (*SalonDetail, error) {
	var resp salonDetailResponse
	if err := c.get(ctx, salonPath(id), &resp); err != nil {
		return nil, fmt.Errorf("client.GetSalon: %w", err)
	}
	return &resp.SalonDetail, nil
}

// CreateSalon onboards a salon and its owner account.
func (c *Client) CreateSalon(ctx context.Context, req CreateSalonRequest) (*CreatedSalon, error) {
	var resp createdSalonResponse
	if err := c.post(ctx, "/api/superadmin/salons", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateSalon: %w", err)
	}
	return &resp.CreatedSalon, nil
}

// UpdateSalon patches the editable fields of a salon. The returned salon is
// nil when the server does not echo it back.
func (c *Client) UpdateSalon(ctx context.Context, id string, req UpdateSalonRequest) (*domain.Salon, error) {
	var resp salonResponse
	if _, err := c.doRequest(ctx, http.MethodPatch, salonPath(id), true, req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateSalon: %w", err)
	}
	return resp.Salon, nil
}

// DeleteSalon deletes a salon by ID.
func (c *Client) DeleteSalon(ctx context.Context, id string) error {
	var resp envelope
	if _, err := c.doRequest(ctx, http.MethodDelete, salonPath(id), true, nil, &resp); err != nil {
		return fmt.Errorf("client.DeleteSalon: %w", err)
	}
	return nil
}

func salonPath(id string) string {
	return "/api/superadmin/salons/" + url.PathEscape(id)
}

// envelope holds the fields every response may carry.
type envelope struct {
	OK      *bool  `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// failed reports an explicit "ok": false.
func (e envelope) failed() bool {
	return e.OK != nil && !*e.OK
}

func (e envelope) errorText() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// errorCarrier is implemented by every response type through its embedded envelope.
type errorCarrier interface {
	envelopeOf() envelope
}

func (e envelope) envelopeOf() envelope { return e }

func (c *Client) get(ctx context.Context, path string, out errorCarrier) error {
	_, err := c.doRequest(ctx, http.MethodGet, path, true, nil, out)
	return err
}

func (c *Client) post(ctx context.Context, path string, body any, out errorCarrier) error {
	_, err := c.doRequest(ctx, http.MethodPost, path, true, body, out)
	return err
}

// doRequest performs one round trip and decodes the body into out.
//
// The body is read once and decoded leniently: a body that is not valid JSON
// leaves out at its zero value. A non-2xx status or an explicit "ok": false
// yields an *APIError; an unparsable 2xx body yields ErrInvalidResponse.
func (c *Client) doRequest(ctx context.Context, method, path string, auth bool, body any, out errorCarrier) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if auth {
		// Sent even when empty; the server decides.
		req.Header.Set("Authorization", "Bearer "+c.token())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	var respBody io.Reader = resp.Body
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody = io.LimitReader(resp.Body, maxErrorBodySize)
	}
	raw, err := io.ReadAll(respBody)
	if err != nil {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode}
	}
	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID))

	parsed := true
	if len(raw) > 0 && out != nil {
		if jsonErr := json.Unmarshal(raw, out); jsonErr != nil {
			c.logger.Debug("unparsable response body",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.Error(jsonErr))
			zeroOut(out)
			parsed = false
		}
	}

	var env envelope
	if out != nil {
		env = out.envelopeOf()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.failed() {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: env.errorText()}
	}
	if !parsed {
		return resp.StatusCode, ErrInvalidResponse
	}
	return resp.StatusCode, nil
}

func (c *Client) token() string {
	if c.session == nil {
		return ""
	}
	return c.session.Get().Token
}

// zeroOut discards whatever a failed decode managed to fill in.
func zeroOut(out any) {
	if v := reflect.ValueOf(out); v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
}
