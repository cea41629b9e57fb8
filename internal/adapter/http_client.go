package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mcmarket/mcmarket-client/internal/config"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/models"
)

type httpMarketAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPMarketAdapter constructs an HTTP/REST implementation of
// [MarketAdapter]. It normalises and validates the base URL from
// cfg.BaseURL and configures the underlying resty client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPMarketAdapter(cfg config.API, log *logger.Logger) (MarketAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpMarketAdapter{client: cli, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("address has no host: %q", raw)
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

func (h *httpMarketAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpMarketAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpMarketAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	auth, err := decodeAuthResponse(resp.Body())
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(auth.AccessToken)
	return auth, nil
}

func (h *httpMarketAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	auth, err := decodeAuthResponse(resp.Body())
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode register response: %w", err)
	}

	h.SetToken(auth.AccessToken)
	return auth, nil
}

func (h *httpMarketAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpMarketAdapter) CurrentIdentity(ctx context.Context) (models.Identity, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/me")
	if err != nil {
		return models.Identity{}, fmt.Errorf("current identity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	var identity models.Identity
	if err = json.Unmarshal(resp.Body(), &identity); err != nil {
		return models.Identity{}, fmt.Errorf("decode identity response: %w", err)
	}

	return identity, nil
}

func (h *httpMarketAdapter) Profile(ctx context.Context) (models.Profile, error) {
	resp, err := h.authedRequest(ctx).Get("/api/profile")
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	if err = json.Unmarshal(resp.Body(), &profile); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile response: %w", err)
	}

	return profile, nil
}

func (h *httpMarketAdapter) Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		Post("/api/auth/refresh")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	auth, err := decodeAuthResponse(resp.Body())
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode refresh response: %w", err)
	}

	h.SetToken(auth.AccessToken)
	return auth, nil
}

func (h *httpMarketAdapter) CreateVerificationSession(ctx context.Context, returnURL string) (models.VerificationSession, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"return_url": returnURL}).
		Post("/api/verification/session")
	if err != nil {
		return models.VerificationSession{}, fmt.Errorf("create verification session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerificationSession{}, err
	}

	var session models.VerificationSession
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.VerificationSession{}, fmt.Errorf("decode verification session response: %w", err)
	}

	return session, nil
}

func (h *httpMarketAdapter) VerifyEmail(ctx context.Context, token string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"token": token}).
		Post("/api/auth/verify-email")
	if err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpMarketAdapter) ResendVerificationEmail(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/resend-verification")
	if err != nil {
		return fmt.Errorf("resend verification email request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpMarketAdapter) CreateSupportThread(ctx context.Context, subject string) (models.SupportThread, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"subject": subject}).
		Post("/api/support/threads")
	if err != nil {
		return models.SupportThread{}, fmt.Errorf("create support thread request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SupportThread{}, err
	}

	var thread models.SupportThread
	if err = json.Unmarshal(resp.Body(), &thread); err != nil {
		return models.SupportThread{}, fmt.Errorf("decode support thread response: %w", err)
	}

	return thread, nil
}

func (h *httpMarketAdapter) SendSupportMessage(ctx context.Context, msg models.SupportMessage) (models.SupportMessage, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post("/api/support/threads/" + url.PathEscape(msg.ThreadID) + "/messages")
	if err != nil {
		return models.SupportMessage{}, fmt.Errorf("send support message request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SupportMessage{}, err
	}

	var sent models.SupportMessage
	if err = json.Unmarshal(resp.Body(), &sent); err != nil {
		return models.SupportMessage{}, fmt.Errorf("decode support message response: %w", err)
	}

	return sent, nil
}

func (h *httpMarketAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func decodeAuthResponse(body []byte) (models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return models.AuthResponse{}, err
	}
	if auth.AccessToken == "" {
		return models.AuthResponse{}, errors.New("auth response has no access token")
	}
	return auth, nil
}

// TokenExpiresAt extracts the expiry claim from tokenString without
// verifying the signature. Signature verification is the server's job; the
// client only needs the expiry to decide whether a persisted token is worth
// presenting at all.
func TokenExpiresAt(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}

	return exp.Time, nil
}
