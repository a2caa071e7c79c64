package project

import (
	"context"
	"errors"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/pagination"
	"github.com/khoahotran/profile-service/pkg/schema"
)

type ListSkillsUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewListSkillsUseCase(repo profile.Repository, log logger.Logger) *ListSkillsUseCase {
	return &ListSkillsUseCase{profileRepo: repo, logger: log}
}

type ListSkillsInput struct {
	Query schema.Document
}

type ListSkillsOutput struct {
	Skills     []string
	Pagination Pagination
}

// Execute pages through a profile's skills. Unlike projects, an out of range
// page is clamped to the last page and an empty set still has one page.
func (uc *ListSkillsUseCase) Execute(ctx context.Context, input ListSkillsInput) (*ListSkillsOutput, error) {
	var q pageQuery
	if err := validate(input.Query, profile.ListSkillsSchema, "Validation failed.", &q); err != nil {
		return nil, err
	}

	skills, err := uc.profileRepo.FindSkills(ctx, q.ProfileID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile not found. Cannot fetch skills.", q.ProfileID)
		}
		return nil, err
	}

	current, totalPages := pagination.Clamp(q.Page, len(skills), q.Limit)
	return &ListSkillsOutput{
		Skills: pagination.Window(skills, current, q.Limit),
		Pagination: Pagination{
			Total:       len(skills),
			TotalPages:  totalPages,
			CurrentPage: current,
			Limit:       q.Limit,
		},
	}, nil
}
