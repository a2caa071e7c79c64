package profile

import (
	"fmt"
	"regexp"
	"time"

	"github.com/khoahotran/profile-service/pkg/schema"
)

// ObjectIDPattern matches a store-generated profile identifier.
var ObjectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

var currentYear = time.Now().Year()

var educationSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "institution", Rule: schema.Rule{
			Type: schema.String, Required: true, Min: schema.Int(2), Max: schema.Int(150),
			Messages: schema.Messages{
				schema.CodeEmpty:    "Institution name is required",
				schema.CodeMin:      "Institution must have at least 2 characters",
				schema.CodeMax:      "Institution cannot exceed 150 characters",
				schema.CodeRequired: "Institution name is required",
			},
		}},
		{Name: "degree", Rule: schema.Rule{
			Type: schema.String, Required: true, Min: schema.Int(2), Max: schema.Int(100),
			Messages: schema.Messages{
				schema.CodeEmpty:    "Degree is required",
				schema.CodeMin:      "Degree must have at least 2 characters",
				schema.CodeMax:      "Degree cannot exceed 100 characters",
				schema.CodeRequired: "Degree is required",
			},
		}},
		{Name: "fieldOfStudy", Rule: schema.Rule{
			Type: schema.String, Max: schema.Int(100),
			Messages: schema.Messages{schema.CodeMax: "Field of study cannot exceed 100 characters"},
		}},
		{Name: "startYear", Rule: schema.Rule{
			Type: schema.Integer, Required: true, Min: schema.Int(1900), Max: schema.Int(currentYear),
			Messages: schema.Messages{
				schema.CodeType:     "Start year must be a valid number",
				schema.CodeMin:      "Start year cannot be earlier than 1900",
				schema.CodeMax:      fmt.Sprintf("Start year cannot be later than %d", currentYear),
				schema.CodeRequired: "Start year is required",
			},
		}},
		{Name: "endYear", Rule: schema.Rule{
			Type: schema.Integer, Min: schema.Int(1900), Max: schema.Int(currentYear),
			Messages: schema.Messages{
				schema.CodeType: "End year must be a valid number",
				schema.CodeMin:  "End year cannot be earlier than 1900",
				schema.CodeMax:  fmt.Sprintf("End year cannot be later than %d", currentYear),
			},
		}},
	},
}

var projectSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "title", Rule: schema.Rule{
			Type: schema.String, Required: true, Min: schema.Int(2), Max: schema.Int(150),
			Messages: schema.Messages{
				schema.CodeEmpty: "Project title is required",
				schema.CodeMin:   "Project title must have at least 2 characters",
				schema.CodeMax:   "Project title cannot exceed 150 characters",
			},
		}},
		{Name: "description", Rule: schema.Rule{
			Type: schema.String, Max: schema.Int(500),
			Messages: schema.Messages{schema.CodeMax: "Project description cannot exceed 500 characters"},
		}},
		{Name: "links", Rule: schema.Rule{
			Type: schema.Array,
			Items: &schema.Rule{
				Type: schema.String, Format: schema.FormatHTTPURL,
				Messages: schema.Messages{schema.CodeFormat: "Project link must be a valid URL (http/https)"},
			},
		}},
	},
}

var workSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "company", Rule: schema.Rule{
			Type: schema.String, Required: true, Min: schema.Int(2), Max: schema.Int(150),
			Messages: schema.Messages{
				schema.CodeEmpty: "Company name is required",
				schema.CodeMin:   "Company name must have at least 2 characters",
				schema.CodeMax:   "Company name cannot exceed 150 characters",
			},
		}},
		{Name: "role", Rule: schema.Rule{
			Type: schema.String, Required: true, Min: schema.Int(2), Max: schema.Int(100),
			Messages: schema.Messages{
				schema.CodeEmpty: "Role is required",
				schema.CodeMin:   "Role must have at least 2 characters",
				schema.CodeMax:   "Role cannot exceed 100 characters",
			},
		}},
		{Name: "startDate", Rule: schema.Rule{
			Type: schema.Date, Required: true,
			Messages: schema.Messages{
				schema.CodeType:     "Start date must be a valid date",
				schema.CodeRequired: "Start date is required",
			},
		}},
		{Name: "endDate", Rule: schema.Rule{
			Type: schema.Date, Greater: "startDate",
			Messages: schema.Messages{schema.CodeGreater: "End date must be later than start date"},
		}},
		{Name: "description", Rule: schema.Rule{
			Type: schema.String, Max: schema.Int(500),
			Messages: schema.Messages{schema.CodeMax: "Work description cannot exceed 500 characters"},
		}},
	},
}

func linkRule(message string) schema.Rule {
	return schema.Rule{
		Type: schema.String, Format: schema.FormatHTTPURL,
		Messages: schema.Messages{schema.CodeFormat: message},
	}
}

// ProfileSchema is the full set of rules for a profile, used on create.
var ProfileSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "name", Rule: schema.Rule{
			Type: schema.String, Required: true, Min: schema.Int(2), Max: schema.Int(100),
			Messages: schema.Messages{
				schema.CodeType:     "Name must be a text string",
				schema.CodeEmpty:    "Name is required",
				schema.CodeMin:      "Name must have at least 2 characters",
				schema.CodeMax:      "Name cannot exceed 100 characters",
				schema.CodeRequired: "Name is required",
			},
		}},
		{Name: "email", Rule: schema.Rule{
			Type: schema.String, Required: true, Format: schema.FormatEmail,
			Messages: schema.Messages{
				schema.CodeFormat:   "Email must be a valid email address",
				schema.CodeRequired: "Email is required",
			},
		}},
		{Name: "education", Rule: schema.Rule{
			Type:     schema.Array,
			Items:    &schema.Rule{Type: schema.Object, Object: &educationSchema},
			Messages: schema.Messages{schema.CodeType: "Education must be an array of objects"},
		}},
		{Name: "skills", Rule: schema.Rule{
			Type: schema.Array, Unique: true,
			Items: &schema.Rule{
				Type: schema.String, Min: schema.Int(1), Max: schema.Int(50),
				Messages: schema.Messages{
					schema.CodeEmpty: "Skill cannot be empty",
					schema.CodeMin:   "Skill must have at least 1 character",
					schema.CodeMax:   "Skill cannot exceed 50 characters",
				},
			},
			Messages: schema.Messages{schema.CodeUnique: "Duplicate skills are not allowed"},
		}},
		{Name: "projects", Rule: schema.Rule{
			Type:     schema.Array,
			Items:    &schema.Rule{Type: schema.Object, Object: &projectSchema},
			Messages: schema.Messages{schema.CodeType: "Projects must be an array of objects"},
		}},
		{Name: "work", Rule: schema.Rule{
			Type:     schema.Array,
			Items:    &schema.Rule{Type: schema.Object, Object: &workSchema},
			Messages: schema.Messages{schema.CodeType: "Work must be an array of objects"},
		}},
		{Name: "links", Rule: schema.Rule{
			Type: schema.Object,
			Object: &schema.Schema{Fields: []schema.Field{
				{Name: "github", Rule: linkRule("GitHub link must be a valid URL (http/https)")},
				{Name: "linkedin", Rule: linkRule("LinkedIn link must be a valid URL (http/https)")},
				{Name: "portfolio", Rule: linkRule("Portfolio link must be a valid URL (http/https)")},
			}},
		}},
	},
}

// IdentifierSchema validates the id path parameter.
var IdentifierSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "id", Rule: schema.Rule{
			Type: schema.String, Required: true, Pattern: ObjectIDPattern,
			Messages: schema.Messages{
				schema.CodeType:     "Profile ID must be a string",
				schema.CodeEmpty:    "Profile ID is required",
				schema.CodePattern:  "Profile ID must be a valid MongoDB ObjectId (24 hex characters)",
				schema.CodeRequired: "Profile ID is required",
			},
		}},
	},
}

// UpdateSchema accepts any non-empty subset of ProfileSchema.
var UpdateSchema = schema.Partial(ProfileSchema, "At least one field must be provided for update")
