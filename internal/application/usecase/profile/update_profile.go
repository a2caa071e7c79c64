package profile

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/internal/application/service"
	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/schema"
)

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewUpdateProfileUseCase(repo profile.Repository, pub service.EventPublisher, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: repo, publisher: pub, logger: log}
}

type UpdateProfileInput struct {
	ID      string
	Payload schema.Document
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
	// UpdatedFields lists the submitted fields in schema order.
	UpdatedFields []string
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	fields, err := validate(input.Payload, profile.UpdateSchema)
	if err != nil {
		return nil, err
	}

	if email, ok := fields["email"].(string); ok {
		_, err := uc.profileRepo.FindByEmail(ctx, email, &input.ID)
		switch {
		case err == nil:
			return nil, apperror.NewConflict("Another profile with this email already exists", "email", email)
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, err
		}
	}

	p, err := uc.profileRepo.UpdateByID(ctx, input.ID, fields)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile not found", input.ID)
		}
		return nil, err
	}

	updated := profile.UpdateSchema.Present(fields)
	uc.logger.Info("Profile updated", zap.String("profile_id", input.ID), zap.Strings("fields", updated))
	service.PublishAsync(uc.publisher, uc.logger, profile.NewEvent(profile.EventUpdated, input.ID, updated...))

	return &UpdateProfileOutput{Profile: p, UpdatedFields: updated}, nil
}
