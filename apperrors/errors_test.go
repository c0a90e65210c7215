package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)
	assert.Equal(t, http.StatusConflict, Validation("x").Status)

	nf := NotFound("Event")
	assert.Equal(t, http.StatusNotFound, nf.Status)
	assert.Equal(t, Body{Error: "Event not found"}, nf.Body())
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", BadRequest("categoryId must be numeric"))
	assert.Equal(t, http.StatusBadRequest, From(wrapped).Status)

	cause := errors.New("dial tcp: refused")
	internal := From(cause)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.ErrorIs(t, internal, cause)
	assert.NotContains(t, internal.Body().Error, "refused", "causes stay out of the response")
}
