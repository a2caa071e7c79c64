package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/logger"
)

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, event profile.Event) error
}

// NopEventPublisher drops every event. Used when no broker is configured.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishProfileEvent(context.Context, profile.Event) error { return nil }

// PublishAsync sends event in the background. Failures are logged and never
// reach the caller.
func PublishAsync(pub EventPublisher, log logger.Logger, event profile.Event) {
	go func() {
		if err := pub.PublishProfileEvent(context.Background(), event); err != nil {
			log.Error("Failed to publish profile event", err,
				zap.String("event_type", string(event.Type)),
				zap.String("profile_id", event.ProfileID))
		}
	}()
}
