package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/profile-service/internal/application/usecase/project"
	"github.com/khoahotran/profile-service/pkg/logger"
)

type ProjectHandler struct {
	addProjectUC     *projectUC.AddProjectUseCase
	listProjectsUC   *projectUC.ListProjectsUseCase
	listSkillsUC     *projectUC.ListSkillsUseCase
	searchProfilesUC *projectUC.SearchProfilesUseCase
	logger           logger.Logger
}

func NewProjectHandler(
	addUC *projectUC.AddProjectUseCase,
	listUC *projectUC.ListProjectsUseCase,
	skillsUC *projectUC.ListSkillsUseCase,
	searchUC *projectUC.SearchProfilesUseCase,
	log logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		addProjectUC:     addUC,
		listProjectsUC:   listUC,
		listSkillsUC:     skillsUC,
		searchProfilesUC: searchUC,
		logger:           log,
	}
}

func (h *ProjectHandler) AddProject(c *gin.Context) {
	payload, err := bindDocument(c, "Validation failed")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.addProjectUC.Execute(c.Request.Context(), projectUC.AddProjectInput{Payload: payload})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Status:  StatusSuccess,
		Message: "Project added successfully.",
		Data:    ToProjectDTO(output.Project),
	})
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	output, err := h.listProjectsUC.Execute(c.Request.Context(), projectUC.ListProjectsInput{Query: queryDocument(c)})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:     StatusSuccess,
		Message:    output.Message,
		Data:       ToProjectDTOs(output.Projects),
		Pagination: ToProjectPaginationDTO(output.Pagination),
	})
}

func (h *ProjectHandler) ListSkills(c *gin.Context) {
	output, err := h.listSkillsUC.Execute(c.Request.Context(), projectUC.ListSkillsInput{Query: queryDocument(c)})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:     StatusSuccess,
		Message:    "Skills fetched successfully.",
		Data:       output.Skills,
		Pagination: ToSkillPaginationDTO(output.Pagination),
	})
}

func (h *ProjectHandler) SearchProfilesBySkills(c *gin.Context) {
	payload, err := bindDocument(c, "Validation failed.")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.searchProfilesUC.Execute(c.Request.Context(), projectUC.SearchProfilesInput{Payload: payload})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:     StatusSuccess,
		Message:    "Profiles fetched successfully.",
		Data:       ToProfileDTOs(output.Profiles),
		Pagination: ToProfilePaginationDTO(output.Pagination),
	})
}
