package introspect

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/turugol/quiniela/internal/domain/user"
	"github.com/turugol/quiniela/internal/platform/logging"
	"github.com/turugol/quiniela/internal/platform/resilience"
	"github.com/turugol/quiniela/internal/usecase"
)

const (
	defaultIntrospectPath = "/v1/tokens/introspect"
	defaultCacheTTL       = 30 * time.Second
	defaultCacheEntries   = 4096
	maxResponseSize       = 1 << 20
)

var errIntrospectTransient = crerr.New("account introspection transient failure")

// ClientConfig configures the account service verifier.
type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	CacheTTL       time.Duration
	CacheEntries   int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client resolves bearer tokens into principals through the account
// service's introspection endpoint. Verified principals are cached by
// token hash for a short TTL so hot sessions do not hammer upstream.
type Client struct {
	httpClient     *http.Client
	introspectURL  string
	cache          *principalCache
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	path := cfg.IntrospectPath
	if strings.TrimSpace(path) == "" {
		path = defaultIntrospectPath
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	maxEntries := cfg.CacheEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}

	return &Client{
		httpClient:     httpClient,
		introspectURL:  joinURL(cfg.BaseURL, path),
		cache:          newPrincipalCache(ttl, maxEntries),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "account service circuit open")
		}
	}

	principal, err := c.introspect(ctx, token)
	if c.circuitEnabled {
		if stderrors.Is(err, errIntrospectTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return user.Principal{}, err
	}

	c.cache.Set(cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.Wrapf(errIntrospectTransient, "send introspect request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "introspection denied")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return user.Principal{}, crerr.Wrapf(errIntrospectTransient, "read introspect response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "account introspection non-200", "status_code", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			return user.Principal{}, crerr.Wrapf(errIntrospectTransient, "introspection status %d", resp.StatusCode)
		}
		return user.Principal{}, crerr.Newf("account introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "inactive token")
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		ID:          decoded.UserID,
		DisplayName: decoded.DisplayName,
		Email:       decoded.Email,
		Organizer:   decoded.Organizer,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Organizer   bool   `json:"organizer"`
}
