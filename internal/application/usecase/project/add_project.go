package project

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

type AddProjectUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewAddProjectUseCase(repo profile.Repository, pub service.EventPublisher, log logger.Logger) *AddProjectUseCase {
	return &AddProjectUseCase{profileRepo: repo, publisher: pub, logger: log}
}

type AddProjectInput struct {
	Payload schema.Document
}

type AddProjectOutput struct {
	Project profile.Project
}

type addProjectRequest struct {
	ProfileID   string   `json:"profileId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
}

func (uc *AddProjectUseCase) Execute(ctx context.Context, input AddProjectInput) (*AddProjectOutput, error) {
	var req addProjectRequest
	if err := validate(input.Payload, profile.AddProjectSchema, "Validation failed", &req); err != nil {
		return nil, err
	}

	entry := profile.NewProject(req.Title, req.Description, req.Links)
	if err := uc.profileRepo.AppendProject(ctx, req.ProfileID, entry); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile not found. Cannot add project.", req.ProfileID)
		}
		return nil, err
	}

	uc.logger.Info("Project added", zap.String("profile_id", req.ProfileID), zap.String("title", entry.Title))
	service.PublishAsync(uc.publisher, uc.logger, profile.NewEvent(profile.EventProjectAdded, req.ProfileID, "projects"))

	return &AddProjectOutput{Project: entry}, nil
}
