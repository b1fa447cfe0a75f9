package amadeus

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

	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/infrastructure/timeutil"
)

// tokenRefreshMargin refreshes the token this long before it actually
// expires, so in-flight requests never carry a token about to lapse.
const tokenRefreshMargin = 30 * time.Second

// tokenHolder caches an OAuth2 client-credentials token and refreshes it
// when it is close to expiry. Safe for concurrent use.
type tokenHolder struct {
	mu           sync.Mutex
	client       *http.Client
	clock        timeutil.Clock
	tokenURL     string
	clientID     string
	clientSecret string

	accessToken string
	expiresAt   time.Time
}

func newTokenHolder(client *http.Client, clock timeutil.Clock, tokenURL, clientID, clientSecret string) *tokenHolder {
	return &tokenHolder{
		client:       client,
		clock:        clock,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Token returns a valid access token, fetching a fresh one when the cached
// token is missing or near expiry.
func (h *tokenHolder) Token(ctx context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.accessToken != "" && h.clock.Now().Before(h.expiresAt.Add(-tokenRefreshMargin)) {
		return h.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", h.clientID)
	form.Set("client_secret", h.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewProviderError(domain.SourceAmadeus, fmt.Errorf("build token request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", domain.NewRetryableProviderError(domain.SourceAmadeus, fmt.Errorf("token request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewRetryableProviderError(domain.SourceAmadeus, fmt.Errorf("read token response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", domain.NewProviderError(domain.SourceAmadeus,
			fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", domain.NewProviderError(domain.SourceAmadeus, fmt.Errorf("decode token response: %w", err))
	}
	if token.AccessToken == "" {
		return "", domain.NewProviderError(domain.SourceAmadeus, fmt.Errorf("token endpoint returned empty token"))
	}

	h.accessToken = token.AccessToken
	h.expiresAt = h.clock.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return h.accessToken, nil
}

// Invalidate forgets the cached token so the next call fetches a fresh one.
func (h *tokenHolder) Invalidate() {
	h.mu.Lock()
	h.accessToken = ""
	h.mu.Unlock()
}
