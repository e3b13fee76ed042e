package ports

import "context"

// CredentialStore keeps provider API keys outside the environment. Get
// reports a missing key with domain.ErrCredentialNotFound.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
