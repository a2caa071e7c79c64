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

const (
	MsgProjectsFetched = "Projects fetched successfully."
	MsgProjectsPastEnd = "No projects found for this page."
)

type ListProjectsUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewListProjectsUseCase(repo profile.Repository, log logger.Logger) *ListProjectsUseCase {
	return &ListProjectsUseCase{profileRepo: repo, logger: log}
}

type ListProjectsInput struct {
	Query schema.Document
}

type ListProjectsOutput struct {
	Projects   []profile.Project
	Pagination Pagination
	Message    string
}

// Execute pages through a profile's projects. A page past the end of a
// non-empty list is an empty page, not an error.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	var q pageQuery
	if err := validate(input.Query, profile.ListProjectsSchema, "Validation failed", &q); err != nil {
		return nil, err
	}

	projects, err := uc.profileRepo.FindProjects(ctx, q.ProfileID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile not found.", q.ProfileID)
		}
		return nil, err
	}

	total := len(projects)
	out := &ListProjectsOutput{
		Pagination: Pagination{
			Total:       total,
			TotalPages:  pagination.TotalPages(total, q.Limit),
			CurrentPage: q.Page,
			Limit:       q.Limit,
		},
		Message: MsgProjectsFetched,
	}
	if q.Page > out.Pagination.TotalPages && total > 0 {
		out.Projects = []profile.Project{}
		out.Message = MsgProjectsPastEnd
		return out, nil
	}
	out.Projects = pagination.Window(projects, q.Page, q.Limit)
	return out, nil
}
