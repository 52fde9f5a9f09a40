package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"onlinetest_backend/internal/config"
	"onlinetest_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserSummary mirrors the roster entries the user-management service
// returns for the caller's company.
type UserSummary struct {
	ID        uint     `json:"id"`
	CompanyID uint     `json:"companyId"`
	Roles     []string `json:"roles"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
}

// UserDirectory is the lookup surface services depend on; the HTTP
// client below is the production implementation.
type UserDirectory interface {
	LookupEmployees(ctx context.Context, companyID uint, bearerToken string) ([]UserSummary, error)
}

// UserClient calls the user-management peer. The call is a synchronous
// blocking boundary, so the HTTP client carries a bounded timeout; a
// failure here degrades the read that needed the roster, never more.
// Rosters are cached briefly in redis keyed by company to keep bulk
// assignment cheap.
type UserClient struct {
	baseURL  string
	http     *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewUserClient(cfg *config.UserServiceConfig, rdb *redis.Client) *UserClient {
	return &UserClient{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		redis:    rdb,
		cacheTTL: cfg.RosterCacheTTL,
	}
}

func (u *UserClient) LookupEmployees(ctx context.Context, companyID uint, bearerToken string) ([]UserSummary, error) {
	return u.fetchRoster(ctx, "/api/v1/users/employees/company/me", companyID, bearerToken)
}

func (u *UserClient) fetchRoster(ctx context.Context, path string, companyID uint, bearerToken string) ([]UserSummary, error) {
	token := strings.TrimPrefix(bearerToken, "Bearer ")

	cacheKey := fmt.Sprintf("roster:employees:%d", companyID)
	if u.redis != nil && u.cacheTTL > 0 {
		if cached, err := u.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var users []UserSummary
			if json.Unmarshal(cached, &users) == nil {
				return users, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("user service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var users []UserSummary
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("user service returned malformed roster: %w", err)
	}

	if u.redis != nil && u.cacheTTL > 0 {
		if err := u.redis.Set(ctx, cacheKey, body, u.cacheTTL).Err(); err != nil {
			logger.Log.Warn("roster cache write failed", zap.Error(err))
		}
	}

	return users, nil
}
