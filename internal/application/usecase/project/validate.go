package project

import (
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/schema"
)

// validate normalizes input against s and decodes the result onto out.
func validate(input schema.Document, s schema.Schema, msg string, out any) error {
	value, err := schema.Validate(input, s, schema.DefaultOptions)
	if err != nil {
		return apperror.NewValidation(msg, schema.ErrorMessages(err))
	}
	if err := schema.Decode(value, out); err != nil {
		return apperror.NewInternal("decode validated request", err)
	}
	return nil
}

// Pagination is the metadata returned next to a page of results.
type Pagination struct {
	Total       int
	TotalPages  int
	CurrentPage int
	Limit       int
}

type pageQuery struct {
	ProfileID string `json:"profileId"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}
