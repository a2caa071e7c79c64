package profile

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-service/pkg/schema"
)

func validProfile() schema.Document {
	return schema.Document{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"education": []any{
			map[string]any{"institution": "University of London", "degree": "BSc", "startYear": "1830"},
		},
		"skills": []any{"math", "poetry"},
		"projects": []any{
			map[string]any{"title": "Analytical Engine", "links": []any{"https://example.com/engine"}},
		},
		"work": []any{
			map[string]any{"company": "Babbage & Co", "role": "Analyst", "startDate": "1842-01-01"},
		},
		"links":     map[string]any{"github": "https://github.com/ada"},
		"createdAt": "2020-01-01",
	}
}

func TestProfileSchema_Valid(t *testing.T) {
	out, err := schema.Validate(validProfile(), ProfileSchema, schema.DefaultOptions)
	require.NoError(t, err)

	assert.NotContains(t, out, "createdAt")
	edu := out["education"].([]any)[0].(schema.Document)
	assert.Equal(t, 1830, edu["startYear"])
}

func TestProfileSchema_Violations(t *testing.T) {
	tests := []struct {
		name  string
		patch func(schema.Document)
		want  []string
	}{
		{
			name:  "missing name",
			patch: func(d schema.Document) { delete(d, "name") },
			want:  []string{"Name is required"},
		},
		{
			name:  "missing email",
			patch: func(d schema.Document) { delete(d, "email") },
			want:  []string{"Email is required"},
		},
		{
			name:  "invalid email and short name",
			patch: func(d schema.Document) { d["email"] = "not-an-email"; d["name"] = "A" },
			want:  []string{"Name must have at least 2 characters", "Email must be a valid email address"},
		},
		{
			name:  "duplicate skills",
			patch: func(d schema.Document) { d["skills"] = []any{"go", "go"} },
			want:  []string{"Duplicate skills are not allowed"},
		},
		{
			name: "end date before start date",
			patch: func(d schema.Document) {
				d["work"] = []any{map[string]any{
					"company": "Acme", "role": "Dev", "startDate": "2020-05-01", "endDate": "2020-01-01",
				}}
			},
			want: []string{"End date must be later than start date"},
		},
		{
			name: "start year in the future",
			patch: func(d schema.Document) {
				d["education"] = []any{map[string]any{
					"institution": "MIT", "degree": "MSc", "startYear": currentYear + 1,
				}}
			},
			want: []string{"Start year cannot be later than " + strconv.Itoa(currentYear)},
		},
		{
			name:  "non http link",
			patch: func(d schema.Document) { d["links"] = map[string]any{"linkedin": "ftp://example.com"} },
			want:  []string{"LinkedIn link must be a valid URL (http/https)"},
		},
		{
			name:  "project without title",
			patch: func(d schema.Document) { d["projects"] = []any{map[string]any{"description": "x"}} },
			want:  []string{`"projects[0].title" is required`},
		},
		{
			name:  "education not an array",
			patch: func(d schema.Document) { d["education"] = "MIT" },
			want:  []string{"Education must be an array of objects"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validProfile()
			tt.patch(doc)
			_, err := schema.Validate(doc, ProfileSchema, schema.DefaultOptions)
			assert.Equal(t, tt.want, schema.ErrorMessages(err))
		})
	}
}

func TestProfileSchema_WorkWithoutEndDate(t *testing.T) {
	doc := validProfile()
	doc["work"] = []any{map[string]any{"company": "Acme", "role": "Dev", "startDate": "2020-05-01"}}
	_, err := schema.Validate(doc, ProfileSchema, schema.DefaultOptions)
	assert.NoError(t, err)
}

func TestIdentifierSchema(t *testing.T) {
	_, err := schema.Validate(schema.Document{"id": "64b7f0c2a1b2c3d4e5f60718"}, IdentifierSchema, schema.DefaultOptions)
	assert.NoError(t, err)

	_, err = schema.Validate(schema.Document{"id": "123"}, IdentifierSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Profile ID must be a valid MongoDB ObjectId (24 hex characters)"}, schema.ErrorMessages(err))
}

func TestUpdateSchema(t *testing.T) {
	_, err := schema.Validate(schema.Document{"unknown": "x"}, UpdateSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"At least one field must be provided for update"}, schema.ErrorMessages(err))

	out, err := schema.Validate(schema.Document{"skills": []any{"go"}}, UpdateSchema, schema.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"skills"}, UpdateSchema.Present(out))

	_, err = schema.Validate(schema.Document{"email": "bad"}, UpdateSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Email must be a valid email address"}, schema.ErrorMessages(err))

	_, err = schema.Validate(schema.Document{"name": nil}, UpdateSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Name must be a text string"}, schema.ErrorMessages(err))
}

func TestProfileSchema_NullName(t *testing.T) {
	doc := validProfile()
	doc["name"] = nil

	_, err := schema.Validate(doc, ProfileSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Name must be a text string"}, schema.ErrorMessages(err))
}

func TestAddProjectSchema(t *testing.T) {
	id := "64b7f0c2a1b2c3d4e5f60718"

	_, err := schema.Validate(schema.Document{"profileId": id}, AddProjectSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"At least one field is required to add/update project"}, schema.ErrorMessages(err))

	out, err := schema.Validate(schema.Document{"profileId": id, "title": "  Compiler  ", "description": ""},
		AddProjectSchema, schema.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "Compiler", out["title"])
	assert.Equal(t, "", out["description"])

	_, err = schema.Validate(schema.Document{"profileId": "nope", "links": []any{"not a url"}},
		AddProjectSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Profile ID must be a valid MongoDB ObjectId.", "Each link must be a valid URL"},
		schema.ErrorMessages(err))

	_, err = schema.Validate(schema.Document{"profileId": id, "title": nil}, AddProjectSchema, schema.DefaultOptions)
	assert.Equal(t, []string{`"title" must be a string`}, schema.ErrorMessages(err))

	_, err = schema.Validate(schema.Document{"profileId": id, "description": strings.Repeat("x", 1001)},
		AddProjectSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Description cannot exceed 1000 characters"}, schema.ErrorMessages(err))
}

func TestPaginationSchemas(t *testing.T) {
	id := "64b7f0c2a1b2c3d4e5f60718"

	out, err := schema.Validate(schema.Document{"profileId": id}, ListProjectsSchema, schema.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 1, out["page"])
	assert.Equal(t, 10, out["limit"])

	out, err = schema.Validate(schema.Document{"profileId": id, "page": "3", "limit": "5"}, ListSkillsSchema, schema.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 3, out["page"])
	assert.Equal(t, 5, out["limit"])

	_, err = schema.Validate(schema.Document{"profileId": id, "page": "0", "limit": "51"}, ListProjectsSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Page number must be at least 1.", "Limit cannot exceed 50 records per page."}, schema.ErrorMessages(err))

	_, err = schema.Validate(schema.Document{"skills": []any{}, "page": "x"}, SearchBySkillsSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"At least one skill is required to search profiles.", "Page must be a number."}, schema.ErrorMessages(err))

	_, err = schema.Validate(schema.Document{}, SearchBySkillsSchema, schema.DefaultOptions)
	assert.Equal(t, []string{"Skills are required."}, schema.ErrorMessages(err))
}
