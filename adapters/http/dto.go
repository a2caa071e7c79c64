package http

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/profile-service/internal/application/usecase/project"
	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/schema"
)

const StatusSuccess = "success"

// Response is the success envelope shared by every endpoint.
type Response struct {
	Status        string   `json:"status"`
	Message       string   `json:"message,omitempty"`
	Count         int      `json:"count,omitempty"`
	UpdatedFields []string `json:"updatedFields,omitempty"`
	Data          any      `json:"data"`
	Pagination    any      `json:"pagination,omitempty"`
}

// Profile DTOs

type EducationDTO struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    int    `json:"startYear"`
	EndYear      *int   `json:"endYear,omitempty"`
}

type ProjectDTO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Links       []string `json:"links"`
}

type WorkDTO struct {
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description,omitempty"`
}

type LinksDTO struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ProfileDTO is the public shape of a profile. Store timestamps are never
// exposed.
type ProfileDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Education []EducationDTO `json:"education"`
	Skills    []string       `json:"skills"`
	Projects  []ProjectDTO   `json:"projects"`
	Work      []WorkDTO      `json:"work"`
	Links     *LinksDTO      `json:"links,omitempty"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:       p.ID.Hex(),
		Name:     p.Name,
		Email:    p.Email,
		Skills:   p.Skills,
		Projects: ToProjectDTOs(p.Projects),
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}

	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			Institution:  e.Institution,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartYear:    e.StartYear,
			EndYear:      e.EndYear,
		}
	}

	dto.Work = make([]WorkDTO, len(p.Work))
	for i, w := range p.Work {
		dto.Work[i] = WorkDTO{
			Company:     w.Company,
			Role:        w.Role,
			StartDate:   w.StartDate,
			EndDate:     w.EndDate,
			Description: w.Description,
		}
	}

	if p.Links != nil {
		dto.Links = &LinksDTO{GitHub: p.Links.GitHub, LinkedIn: p.Links.LinkedIn, Portfolio: p.Links.Portfolio}
	}
	return dto
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	out := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		out[i] = ToProfileDTO(p)
	}
	return out
}

func ToProjectDTO(p profile.Project) ProjectDTO {
	links := p.Links
	if links == nil {
		links = []string{}
	}
	return ProjectDTO{Title: p.Title, Description: p.Description, Links: links}
}

func ToProjectDTOs(projects []profile.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

// Pagination DTOs

type ProjectPaginationDTO struct {
	TotalProjects int `json:"totalProjects"`
	TotalPages    int `json:"totalPages"`
	CurrentPage   int `json:"currentPage"`
	Limit         int `json:"limit"`
}

type SkillPaginationDTO struct {
	TotalSkills int `json:"totalSkills"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

type ProfilePaginationDTO struct {
	TotalProfiles int `json:"totalProfiles"`
	TotalPages    int `json:"totalPages"`
	CurrentPage   int `json:"currentPage"`
	Limit         int `json:"limit"`
}

func ToProjectPaginationDTO(p projectUC.Pagination) ProjectPaginationDTO {
	return ProjectPaginationDTO{TotalProjects: p.Total, TotalPages: p.TotalPages, CurrentPage: p.CurrentPage, Limit: p.Limit}
}

func ToSkillPaginationDTO(p projectUC.Pagination) SkillPaginationDTO {
	return SkillPaginationDTO{TotalSkills: p.Total, TotalPages: p.TotalPages, CurrentPage: p.CurrentPage, Limit: p.Limit}
}

func ToProfilePaginationDTO(p projectUC.Pagination) ProfilePaginationDTO {
	return ProfilePaginationDTO{TotalProfiles: p.Total, TotalPages: p.TotalPages, CurrentPage: p.CurrentPage, Limit: p.Limit}
}

// bindDocument reads the JSON body as a loose document so the schema layer
// sees unknown keys and wrong types. A missing or null body is an empty
// document.
func bindDocument(c *gin.Context, validationMsg string) (schema.Document, error) {
	var doc schema.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return schema.Document{}, nil
		}
		return nil, apperror.NewValidation(validationMsg, []string{"Request body must be a valid JSON object"})
	}
	if doc == nil {
		doc = schema.Document{}
	}
	return doc, nil
}

// queryDocument keeps the first value of every query parameter.
func queryDocument(c *gin.Context) schema.Document {
	doc := schema.Document{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			doc[key] = values[0]
		}
	}
	return doc
}
