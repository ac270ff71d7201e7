package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad input"), http.StatusBadRequest},
		{Unauthorizedf("who are you"), http.StatusUnauthorized},
		{Forbiddenf("not yours"), http.StatusForbidden},
		{NotFoundf("gone"), http.StatusNotFound},
		{Conflictf("already decided"), http.StatusConflict},
		{Dependencyf("smtp down"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), "error: %v", tc.err)
	}
}

func TestCodeLabels(t *testing.T) {
	assert.Equal(t, "validation_error", Code(Validationf("bad input")))
	assert.Equal(t, "conflict", Code(Conflictf("already decided")))
	assert.Equal(t, "internal_error", Code(errors.New("plain")))
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFoundf("package %s not found", "abc"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, Status(err))
}

func TestMessageFormatting(t *testing.T) {
	err := Validationf("invalid status %q", "bogus")
	assert.Equal(t, `invalid status "bogus"`, err.Error())
}
