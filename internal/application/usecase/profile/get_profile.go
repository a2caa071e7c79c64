package profile

import (
	"context"
	"errors"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
)

type GetProfileUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewGetProfileUseCase(repo profile.Repository, log logger.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: repo, logger: log}
}

type GetProfileInput struct {
	ID string
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	p, err := uc.profileRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile not found", input.ID)
		}
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewListProfilesUseCase(repo profile.Repository, log logger.Logger) *ListProfilesUseCase {
	return &ListProfilesUseCase{profileRepo: repo, logger: log}
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

// Execute returns every stored profile; an empty collection is NotFound.
func (uc *ListProfilesUseCase) Execute(ctx context.Context) (*ListProfilesOutput, error) {
	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperror.NewNotFound("No profiles found", "*")
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}
