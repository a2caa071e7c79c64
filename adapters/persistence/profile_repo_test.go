package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
)

func TestDuplicateFields(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{`E11000 duplicate key error collection: app.profiles index: email_1 dup key: { email: "a@b.co" }`, []string{"email"}},
		{`E11000 duplicate key error collection: app.profiles index: handle_1 dup key: { "handle": "ada" }`, []string{"handle"}},
		{`E11000 duplicate key error collection: app.profiles index: slug_-1`, []string{"slug"}},
		{`E11000 duplicate key error`, []string{"email"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, duplicateFields(errors.New(tt.msg)), tt.msg)
	}
}

func TestWriteError(t *testing.T) {
	r := &mongoProfileRepo{logger: logger.NewNop()}

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: app.profiles index: email_1 dup key: { email: "a@b.co" }`,
	}}}
	err := r.writeError("insert", dup)

	var ae *apperror.AppError
	assert.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, []string{"email"}, ae.Fields)
	assert.Equal(t, "Duplicate field value entered", ae.Message)

	err = r.writeError("insert", errors.New("socket closed"))
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
