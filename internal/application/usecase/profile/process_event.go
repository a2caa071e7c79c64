package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/internal/application/service"
	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/logger"
)

// ProcessProfileEventUseCase consumes profile change events: it writes the
// audit trail and evicts stale cache entries.
type ProcessProfileEventUseCase struct {
	cache  service.ProfileCache
	logger logger.Logger
}

// NewProcessProfileEventUseCase accepts a nil cache when caching is disabled.
func NewProcessProfileEventUseCase(cache service.ProfileCache, log logger.Logger) *ProcessProfileEventUseCase {
	return &ProcessProfileEventUseCase{cache: cache, logger: log}
}

func (uc *ProcessProfileEventUseCase) Execute(ctx context.Context, e profile.Event) error {
	if e.ProfileID == "" {
		uc.logger.Warn("Profile event without profile id, skip.", zap.String("event_type", string(e.Type)))
		return nil
	}

	uc.logger.Info("Profile audit",
		zap.String("event_type", string(e.Type)),
		zap.String("profile_id", e.ProfileID),
		zap.Strings("fields", e.Fields),
		zap.Time("occurred_at", e.OccurredAt))

	if e.Type == profile.EventCreated || uc.cache == nil {
		return nil
	}
	if err := uc.cache.Evict(ctx, e.ProfileID); err != nil {
		return fmt.Errorf("evict cached profile failed: %w", err)
	}
	return nil
}
