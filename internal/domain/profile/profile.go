package profile

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/khoahotran/profile-service/pkg/schema"
)

type Education struct {
	Institution  string `bson:"institution"`
	Degree       string `bson:"degree"`
	FieldOfStudy string `bson:"fieldOfStudy,omitempty"`
	StartYear    int    `bson:"startYear"`
	EndYear      *int   `bson:"endYear,omitempty"`
}

type Project struct {
	Title       string   `bson:"title,omitempty"`
	Description string   `bson:"description,omitempty"`
	Links       []string `bson:"links"`
}

type Work struct {
	Company     string     `bson:"company"`
	Role        string     `bson:"role"`
	StartDate   time.Time  `bson:"startDate"`
	EndDate     *time.Time `bson:"endDate,omitempty"`
	Description string     `bson:"description,omitempty"`
}

type Links struct {
	GitHub    string `bson:"github,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
	Portfolio string `bson:"portfolio,omitempty"`
}

// Profile is the root document. Embedded entries have no identity of their
// own and are replaced wholesale when their field is updated.
type Profile struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Education []Education   `bson:"education"`
	Skills    []string      `bson:"skills"`
	Projects  []Project     `bson:"projects"`
	Work      []Work        `bson:"work"`
	Links     *Links        `bson:"links,omitempty"`
	CreatedAt time.Time     `bson:"createdAt,omitempty"`
	UpdatedAt time.Time     `bson:"updatedAt,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	// FindByEmail returns an apperror.ErrNotFound error when no profile other
	// than excludeID owns email.
	FindByEmail(ctx context.Context, email string, excludeID *string) (*Profile, error)
	UpdateByID(ctx context.Context, id string, fields schema.Document) (*Profile, error)
	// AppendProject adds entry to the end of the profile's projects without
	// touching any other field.
	AppendProject(ctx context.Context, id string, entry Project) error
	FindProjects(ctx context.Context, id string) ([]Project, error)
	FindSkills(ctx context.Context, id string) ([]string, error)
	FindBySkillsAny(ctx context.Context, skills []string, page, limit int) ([]*Profile, error)
	CountBySkillsAny(ctx context.Context, skills []string) (int64, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	EnsureIndexes(ctx context.Context) error
}

// New builds a profile from a document already normalized by ProfileSchema.
func New(doc schema.Document) (*Profile, error) {
	p := &Profile{}
	if err := p.Merge(doc); err != nil {
		return nil, err
	}
	p.normalize()
	return p, nil
}

// Merge overwrites the fields named in a normalized document. Keys outside
// the profile shape are ignored.
func (p *Profile) Merge(fields schema.Document) error {
	var patch Profile
	if err := schema.DecodeTag(fields, &patch, "bson"); err != nil {
		return fmt.Errorf("merge profile fields: %w", err)
	}
	for key := range fields {
		switch key {
		case "name":
			p.Name = patch.Name
		case "email":
			p.Email = patch.Email
		case "education":
			p.Education = patch.Education
		case "skills":
			p.Skills = patch.Skills
		case "projects":
			p.Projects = patch.Projects
		case "work":
			p.Work = patch.Work
		case "links":
			p.Links = patch.Links
		}
	}
	p.normalize()
	return nil
}

// Apply merges fields and re-checks the merged values of those fields against
// the full profile rules, the way a store-side validator would on update.
func (p *Profile) Apply(fields schema.Document) error {
	if err := p.Merge(fields); err != nil {
		return err
	}
	keys := ProfileSchema.Present(fields)
	if len(keys) == 0 {
		return nil
	}
	_, err := schema.Validate(p.Document(), schema.Pick(ProfileSchema, keys...), schema.Options{})
	return err
}

// NewProject builds a project entry. Links are never nil.
func NewProject(title, description string, links []string) Project {
	if links == nil {
		links = []string{}
	}
	return Project{Title: title, Description: description, Links: links}
}

// Document renders the profile as an untyped document, omitting empty
// optional values.
func (p *Profile) Document() schema.Document {
	doc := schema.Document{
		"name":  p.Name,
		"email": p.Email,
	}

	education := make([]any, 0, len(p.Education))
	for _, e := range p.Education {
		m := schema.Document{
			"institution": e.Institution,
			"degree":      e.Degree,
			"startYear":   e.StartYear,
		}
		if e.FieldOfStudy != "" {
			m["fieldOfStudy"] = e.FieldOfStudy
		}
		if e.EndYear != nil {
			m["endYear"] = *e.EndYear
		}
		education = append(education, m)
	}
	doc["education"] = education

	skills := make([]any, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, s)
	}
	doc["skills"] = skills

	projects := make([]any, 0, len(p.Projects))
	for _, pr := range p.Projects {
		m := schema.Document{}
		if pr.Title != "" {
			m["title"] = pr.Title
		}
		if pr.Description != "" {
			m["description"] = pr.Description
		}
		if len(pr.Links) > 0 {
			links := make([]any, 0, len(pr.Links))
			for _, l := range pr.Links {
				links = append(links, l)
			}
			m["links"] = links
		}
		projects = append(projects, m)
	}
	doc["projects"] = projects

	work := make([]any, 0, len(p.Work))
	for _, w := range p.Work {
		m := schema.Document{
			"company":   w.Company,
			"role":      w.Role,
			"startDate": w.StartDate,
		}
		if w.EndDate != nil {
			m["endDate"] = *w.EndDate
		}
		if w.Description != "" {
			m["description"] = w.Description
		}
		work = append(work, m)
	}
	doc["work"] = work

	if p.Links != nil {
		links := schema.Document{}
		if p.Links.GitHub != "" {
			links["github"] = p.Links.GitHub
		}
		if p.Links.LinkedIn != "" {
			links["linkedin"] = p.Links.LinkedIn
		}
		if p.Links.Portfolio != "" {
			links["portfolio"] = p.Links.Portfolio
		}
		doc["links"] = links
	}
	return doc
}

// normalize replaces nil slices so documents always carry empty arrays.
func (p *Profile) normalize() {
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		if p.Projects[i].Links == nil {
			p.Projects[i].Links = []string{}
		}
	}
	if p.Work == nil {
		p.Work = []Work{}
	}
}
