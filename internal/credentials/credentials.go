package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/foodstack-client/internal/storage"
	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
)

// AccessTokenKey is the storage key holding the bearer token.
const AccessTokenKey = "accessToken"

// Service answers "is the user logged in" and hands out call credentials.
type Service struct {
	store storage.Store
	ttl   time.Duration
}

// NewService builds a credentials service on top of store. ttl bounds how long
// a saved token is kept; zero uses the store default.
func NewService(store storage.Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// AccessToken returns the stored token, or "" when none is available. Store
// failures are treated as "no token".
func (s *Service) AccessToken(ctx context.Context) string {
	if s == nil || s.store == nil {
		return ""
	}
	if ctx != nil && ctx.Err() != nil {
		return ""
	}
	token, err := s.store.Get(AccessTokenKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// IsLoggedIn reports whether a token is stored.
func (s *Service) IsLoggedIn(ctx context.Context) bool {
	return s.AccessToken(ctx) != ""
}

// Bearer returns bearer credentials for the stored token. The token may be
// empty, in which case the call fails with *apiclient.AuthenticationError.
func (s *Service) Bearer(ctx context.Context) apiclient.Credentials {
	return apiclient.BearerToken(s.AccessToken(ctx))
}

// SaveToken persists token under AccessTokenKey.
func (s *Service) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("access token is empty")
	}
	if s == nil || s.store == nil {
		return errors.New("credentials store is not initialized")
	}
	if err := s.store.Set(AccessTokenKey, token, s.ttl); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *Service) Clear() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Delete(AccessTokenKey); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}
	return nil
}
