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

type CreateProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewCreateProfileUseCase(repo profile.Repository, pub service.EventPublisher, log logger.Logger) *CreateProfileUseCase {
	return &CreateProfileUseCase{profileRepo: repo, publisher: pub, logger: log}
}

type CreateProfileInput struct {
	Payload schema.Document
}

type CreateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *CreateProfileUseCase) Execute(ctx context.Context, input CreateProfileInput) (*CreateProfileOutput, error) {
	value, err := validate(input.Payload, profile.ProfileSchema)
	if err != nil {
		return nil, err
	}

	p, err := profile.New(value)
	if err != nil {
		return nil, apperror.NewInternal("build profile from validated payload", err)
	}

	existing, err := uc.profileRepo.FindByEmail(ctx, p.Email, nil)
	switch {
	case err == nil && existing != nil:
		return nil, apperror.NewConflict("A profile with this email already exists", "email", p.Email)
	case err != nil && !errors.Is(err, apperror.ErrNotFound):
		return nil, err
	}

	if err := uc.profileRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	id := p.ID.Hex()
	uc.logger.Info("Profile created", zap.String("profile_id", id))
	service.PublishAsync(uc.publisher, uc.logger, profile.NewEvent(profile.EventCreated, id))

	return &CreateProfileOutput{Profile: p}, nil
}
