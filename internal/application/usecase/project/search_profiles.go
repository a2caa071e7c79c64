package project

import (
	"context"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/pagination"
	"github.com/khoahotran/profile-service/pkg/schema"
)

type SearchProfilesUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewSearchProfilesUseCase(repo profile.Repository, log logger.Logger) *SearchProfilesUseCase {
	return &SearchProfilesUseCase{profileRepo: repo, logger: log}
}

type SearchProfilesInput struct {
	Payload schema.Document
}

type SearchProfilesOutput struct {
	Profiles   []*profile.Profile
	Pagination Pagination
}

type searchRequest struct {
	Skills []string `json:"skills"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
}

// Execute finds profiles sharing at least one skill with the request.
func (uc *SearchProfilesUseCase) Execute(ctx context.Context, input SearchProfilesInput) (*SearchProfilesOutput, error) {
	var req searchRequest
	if err := validate(input.Payload, profile.SearchBySkillsSchema, "Validation failed.", &req); err != nil {
		return nil, err
	}

	profiles, err := uc.profileRepo.FindBySkillsAny(ctx, req.Skills, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	total, err := uc.profileRepo.CountBySkillsAny(ctx, req.Skills)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperror.NewNotFound("No profiles found matching the given skills.", "skills")
	}

	return &SearchProfilesOutput{
		Profiles: profiles,
		Pagination: Pagination{
			Total:       int(total),
			TotalPages:  pagination.TotalPages(int(total), req.Limit),
			CurrentPage: req.Page,
			Limit:       req.Limit,
		},
	}, nil
}
