package profile

import "github.com/khoahotran/profile-service/pkg/schema"

var profileIDRule = schema.Rule{
	Type: schema.String, Required: true, Pattern: ObjectIDPattern,
	Messages: schema.Messages{
		schema.CodeRequired: "Profile ID is required.",
		schema.CodeEmpty:    "Profile ID cannot be empty.",
		schema.CodePattern:  "Profile ID must be a valid MongoDB ObjectId.",
	},
}

// AddProjectSchema validates a project appended to an existing profile.
var AddProjectSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "profileId", Rule: profileIDRule},
		{Name: "title", Rule: schema.Rule{
			Type: schema.String, Trim: true, Min: schema.Int(2), Max: schema.Int(150),
			Messages: schema.Messages{
				schema.CodeMin: "Project title must be at least 2 characters",
				schema.CodeMax: "Project title cannot exceed 150 characters",
			},
		}},
		{Name: "description", Rule: schema.Rule{
			Type: schema.String, Trim: true, AllowEmpty: true, Max: schema.Int(1000),
			Messages: schema.Messages{schema.CodeMax: "Description cannot exceed 1000 characters"},
		}},
		{Name: "links", Rule: schema.Rule{
			Type: schema.Array,
			Items: &schema.Rule{
				Type: schema.String, Trim: true, Format: schema.FormatHTTPURL,
				Messages: schema.Messages{schema.CodeFormat: "Each link must be a valid URL"},
			},
			Messages: schema.Messages{schema.CodeType: "Links must be an array of URLs"},
		}},
	},
	AnyOf:    []string{"title", "description", "links"},
	Messages: schema.Messages{schema.CodeAnyOf: "At least one field is required to add/update project"},
}

// pageFields are the page and limit rules; noun prefixes the page messages.
func pageFields(noun string) []schema.Field {
	return []schema.Field{
		{Name: "page", Rule: schema.Rule{
			Type: schema.Integer, Min: schema.Int(1), Default: 1,
			Messages: schema.Messages{
				schema.CodeType:    noun + " must be a number.",
				schema.CodeInteger: noun + " must be an integer.",
				schema.CodeMin:     noun + " must be at least 1.",
			},
		}},
		{Name: "limit", Rule: schema.Rule{
			Type: schema.Integer, Min: schema.Int(1), Max: schema.Int(50), Default: 10,
			Messages: schema.Messages{
				schema.CodeType:    "Limit must be a number.",
				schema.CodeInteger: "Limit must be an integer.",
				schema.CodeMin:     "Limit must be at least 1.",
				schema.CodeMax:     "Limit cannot exceed 50 records per page.",
			},
		}},
	}
}

var profilePageSchema = schema.Schema{
	Fields: append([]schema.Field{{Name: "profileId", Rule: profileIDRule}},
		pageFields("Page number")...),
}

var (
	ListProjectsSchema = profilePageSchema
	ListSkillsSchema   = profilePageSchema
)

// SearchBySkillsSchema validates a skill-set search.
var SearchBySkillsSchema = schema.Schema{
	Fields: append([]schema.Field{
		{Name: "skills", Rule: schema.Rule{
			Type: schema.Array, Required: true, Min: schema.Int(1),
			Items: &schema.Rule{
				Type: schema.String, Min: schema.Int(1), Max: schema.Int(50),
				Messages: schema.Messages{
					schema.CodeType:  "Each skill must be a text string.",
					schema.CodeEmpty: "Skill cannot be empty.",
					schema.CodeMin:   "Skill must have at least 1 character.",
					schema.CodeMax:   "Skill cannot exceed 50 characters.",
				},
			},
			Messages: schema.Messages{
				schema.CodeType:     "Skills must be provided as an array of strings.",
				schema.CodeMin:      "At least one skill is required to search profiles.",
				schema.CodeRequired: "Skills are required.",
			},
		}},
	}, pageFields("Page")...),
}
