package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
	"github.com/deckhaven/deckhaven-server/internal/validation"
)

type TestRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Title    string `json:"title" validate:"required,max=50"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Username: "alice",
		Password: "password123",
		Title:    "Red Rush",
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name       string
		req        TestRequest
		wantErrMsg string
	}{
		{
			name: "missing required field",
			req: TestRequest{
				Username: "alice",
				Password: "password123",
				Title:    "",
			},
			wantErrMsg: "title",
		},
		{
			name: "username too short",
			req: TestRequest{
				Username: "al",
				Password: "password123",
				Title:    "Red Rush",
			},
			wantErrMsg: "username",
		},
		{
			name: "password too short",
			req: TestRequest{
				Username: "alice",
				Password: "short",
				Title:    "Red Rush",
			},
			wantErrMsg: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var domainErr *domainerrors.Error
			assert.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			// The failing field appears in the error details under its JSON name.
			assert.Contains(t, domainErr.Details, tt.wantErrMsg)
		})
	}
}
