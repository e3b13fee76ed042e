package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/schedule-manager-cli/internal/adapters/credentials/file"
	passstore "github.com/bnema/schedule-manager-cli/internal/adapters/credentials/pass"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

// Store asks the primary backend first and falls back on any failure other
// than cancellation.
type Store struct {
	primary  ports.CredentialStore
	fallback ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.CredentialStore, fallback ports.CredentialStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

// Get reports domain.ErrCredentialNotFound only when neither backend has
// the key and neither failed for another reason.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	if notFoundOrUnavailable(err) && errors.Is(fallbackErr, domain.ErrCredentialNotFound) {
		return "", fmt.Errorf("credential %q: %w", key, domain.ErrCredentialNotFound)
	}
	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if primaryErr != nil && shouldSkipFallback(primaryErr) {
		return primaryErr
	}

	// The key is removed from both backends.
	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case primaryErr == nil || fallbackErr == nil:
		return nil
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", primaryErr, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func notFoundOrUnavailable(err error) bool {
	return errors.Is(err, domain.ErrCredentialNotFound) || errors.Is(err, passstore.ErrUnavailable)
}
