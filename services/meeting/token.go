package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"mentorly/utils"
)

// tokenExpirySlack is subtracted from the provider-reported lifetime so a
// token is refreshed before it actually expires mid-call.
const tokenExpirySlack = 60 * time.Second

// TokenProvider fetches and caches the hosted-video service-account access
// token (server-to-server OAuth, account-credentials grant). Tokens are
// cached in Redis when a client is configured, with an in-process copy as
// fallback.
type TokenProvider struct {
	TokenURL     string
	AccountID    string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Cache        *redis.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func (tp *TokenProvider) httpClient() *http.Client {
	if tp.HTTPClient != nil {
		return tp.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// AccessToken returns a valid access token, fetching a fresh one when the
// cached copy is missing or near expiry.
func (tp *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	tp.mu.Lock()
	if tp.token != "" && time.Now().Before(tp.expiry) {
		token := tp.token
		tp.mu.Unlock()
		return token, nil
	}
	tp.mu.Unlock()

	if tp.Cache != nil {
		if token, err := tp.Cache.Get(ctx, utils.VideoTokenCacheKey).Result(); err == nil && token != "" {
			return token, nil
		}
	}

	return tp.fetch(ctx)
}

func (tp *TokenProvider) fetch(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", tp.AccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tp.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(tp.ClientID, tp.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tp.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, readErrorMessage(resp.Body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}

	ttl := time.Duration(payload.ExpiresIn)*time.Second - tokenExpirySlack
	if ttl < time.Minute {
		ttl = time.Minute
	}

	tp.mu.Lock()
	tp.token = payload.AccessToken
	tp.expiry = time.Now().Add(ttl)
	tp.mu.Unlock()

	if tp.Cache != nil {
		// Cache failures only cost an extra fetch next time.
		_ = tp.Cache.Set(ctx, utils.VideoTokenCacheKey, payload.AccessToken, ttl).Err()
	}

	return payload.AccessToken, nil
}

// readErrorMessage extracts a human-readable message from a provider error
// body: the JSON "message" field when the body is JSON, otherwise a
// truncated raw snippet.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	snippet := string(raw)
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	return snippet
}
