package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("busy")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindUnauthenticated, KindOf(Unauthenticated("who")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving lease: %w", Conflict("unit already leased"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "unit already leased", Message(wrapped))
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Internal("Server error", errors.New("dial tcp: connection refused"))
	assert.Equal(t, "Server error", Message(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("c")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("n")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("v")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("f")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthenticated("u")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}
