package core

import (
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapDataErrorForeignKeyViolation(t *testing.T) {
	err := wrapDataError(&pq.Error{
		Code:   "23503",
		Detail: `Key (author)=(not_a_user) is not present in table "users".`,
	})

	clientErr, ok := httperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, clientErr.Status)
	assert.Equal(t, "Bad request. 'not_a_user' is not a valid value for author: no matching record in users.", clientErr.Message)
}

func TestWrapDataErrorForeignKeyViolationWithoutDetail(t *testing.T) {
	err := wrapDataError(&pq.Error{Code: "23503"})

	clientErr, ok := httperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, clientErr.Status)
	assert.Equal(t, "Bad request. The request refers to a record that does not exist.", clientErr.Message)
}

func TestWrapDataErrorUndefinedColumn(t *testing.T) {
	err := wrapDataError(&pq.Error{
		Code: "42703",
		Hint: `Perhaps you meant to reference the column "articles.author".`,
	})

	clientErr, ok := httperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, clientErr.Status)
	assert.Equal(t, "Bad request. Perhaps you meant 'author'", clientErr.Message)
}

func TestWrapDataErrorUndefinedColumnWithoutHint(t *testing.T) {
	err := wrapDataError(&pq.Error{Code: "42703"})

	clientErr, ok := httperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "Bad request. Bad column name.", clientErr.Message)
}

func TestWrapDataErrorInvalidTextRepresentation(t *testing.T) {
	err := wrapDataError(&pq.Error{Code: "22P02"})

	clientErr, ok := httperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, clientErr.Status)
}

func TestWrapDataErrorUnknownCodeStaysInternal(t *testing.T) {
	err := wrapDataError(&pq.Error{Code: "53300", Message: "too many connections"})

	_, ok := httperr.FromError(err)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestWrapDataErrorNonPostgresError(t *testing.T) {
	err := wrapDataError(xerrors.New("driver: bad connection"))

	_, ok := httperr.FromError(err)
	assert.False(t, ok)
}
