package profile

import (
	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/schema"
)

const msgValidationFailed = "Validation failed"

func validate(input schema.Document, s schema.Schema) (schema.Document, error) {
	out, err := schema.Validate(input, s, schema.DefaultOptions)
	if err != nil {
		return nil, apperror.NewValidation(msgValidationFailed, schema.ErrorMessages(err))
	}
	return out, nil
}

func validateID(id string) error {
	_, err := validate(schema.Document{"id": id}, profile.IdentifierSchema)
	return err
}
