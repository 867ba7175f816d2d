package secrets

import (
	"context"
	"fmt"

	pkgsecrets "github.com/Checker-Finance/usuarios-console/pkg/secrets"
	"go.uber.org/zap"
)

// ConfigResolver fetches configuration overrides from a secrets provider.
// It is consulted once at startup, so results are not cached.
type ConfigResolver struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
}

// NewConfigResolver constructs a resolver over provider.
func NewConfigResolver(logger *zap.Logger, provider pkgsecrets.Provider) *ConfigResolver {
	return &ConfigResolver{
		logger:   logger,
		provider: provider,
	}
}

// Resolve returns the secret map stored under secretID.
func (r *ConfigResolver) Resolve(ctx context.Context, secretID string) (map[string]string, error) {
	values, err := r.provider.GetSecret(ctx, secretID)
	if err != nil {
		r.logger.Warn("secrets.fetch_failed",
			zap.String("key", secretID),
			zap.Error(err))
		return nil, fmt.Errorf("resolve config secret %q: %w", secretID, err)
	}

	r.logger.Info("secrets.config_resolved",
		zap.String("key", secretID),
		zap.Int("fields", len(values)))
	return values, nil
}
