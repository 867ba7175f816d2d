package secrets

import "context"

// Provider defines a secrets backend that returns key-value secrets.
type Provider interface {
	// GetSecret retrieves a secret by id and returns its JSON object as a map.
	GetSecret(ctx context.Context, key string) (map[string]string, error)
}
