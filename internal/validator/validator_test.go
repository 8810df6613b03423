package validator

import (
	"net/http"
	"testing"

	"github.com/rbeckert/forum/internal/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listSpec = Spec{
	"sort_by": OneOf("created_at", "votes"),
	"order":   OneOf("asc", "desc"),
	"author":  Any(),
	"topic":   Any(),
	"limit":   PositiveNumeric(),
	"page":    PositiveNumeric(),
}

func badRequest(t *testing.T, err error) *httperr.Error {
	t.Helper()
	require.Error(t, err)
	clientErr, ok := httperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, clientErr.Status)
	return clientErr
}

func TestCheckPropertiesAcceptsAllowedKeys(t *testing.T) {
	query := map[string]any{
		"sort_by": "votes",
		"order":   "asc",
		"author":  "butter_bridge",
		"limit":   "5",
		"page":    "2",
	}

	assert.NoError(t, CheckProperties(query, listSpec, "query"))
}

func TestCheckPropertiesRejectsUnknownKey(t *testing.T) {
	query := map[string]any{"badkey": "something"}

	clientErr := badRequest(t, CheckProperties(query, listSpec, "query"))
	assert.Equal(t, "Bad request. Query can only include the following keys: author, limit, order, page, sort_by, topic", clientErr.Message)
}

func TestCheckPropertiesRejectsValueOutsideEnumeration(t *testing.T) {
	query := map[string]any{"order": "sideways"}

	clientErr := badRequest(t, CheckProperties(query, listSpec, "query"))
	assert.Equal(t, "Bad request - order must be one of: 'asc', 'desc'", clientErr.Message)
}

func TestCheckPropertiesPositiveNumeric(t *testing.T) {
	for _, limit := range []string{"dog", "0", "-3", "2.5"} {
		query := map[string]any{"limit": limit}

		clientErr := badRequest(t, CheckProperties(query, listSpec, "query"))
		assert.Equal(t, "Bad request. Unexpected value for limit in query.", clientErr.Message)
	}

	assert.NoError(t, CheckProperties(map[string]any{"limit": "5"}, listSpec, "query"))
}

func TestCheckPropertiesNumeric(t *testing.T) {
	spec := Spec{"inc_votes": Numeric()}

	clientErr := badRequest(t, CheckProperties(map[string]any{"inc_votes": "cat"}, spec, "JSON passed in request"))
	assert.Equal(t, "Bad request. The value of inc_votes must be a number.", clientErr.Message)

	assert.NoError(t, CheckProperties(map[string]any{"inc_votes": float64(3)}, spec, "JSON passed in request"))
	assert.NoError(t, CheckProperties(map[string]any{"inc_votes": "-3"}, spec, "JSON passed in request"))

	// Absent keys are not CheckProperties' concern.
	assert.NoError(t, CheckProperties(map[string]any{}, spec, "JSON passed in request"))
}

func TestCheckPropertiesNotBlankString(t *testing.T) {
	spec := Spec{"body": NotBlankString()}

	clientErr := badRequest(t, CheckProperties(map[string]any{"body": "   "}, spec, "JSON passed in request"))
	assert.Equal(t, "Bad request. The value of body must be a non-empty string.", clientErr.Message)

	clientErr = badRequest(t, CheckProperties(map[string]any{"body": float64(7)}, spec, "JSON passed in request"))
	assert.Equal(t, "Bad request. The value of body must be a non-empty string.", clientErr.Message)

	assert.NoError(t, CheckProperties(map[string]any{"body": "a comment"}, spec, "JSON passed in request"))
}

func TestCheckExactKeys(t *testing.T) {
	spec := Spec{
		"username": NotBlankString(),
		"body":     NotBlankString(),
	}

	wantMessage := "Missing or superfluous keys. The JSON object you send must have keys for body, username and no others"

	missing := map[string]any{"username": "icellusedkars"}
	clientErr := badRequest(t, CheckExactKeys(missing, spec, "body", "username"))
	assert.Equal(t, wantMessage, clientErr.Message)

	superfluous := map[string]any{"username": "icellusedkars", "body": "hi", "votes": float64(10)}
	clientErr = badRequest(t, CheckExactKeys(superfluous, spec, "body", "username"))
	assert.Equal(t, wantMessage, clientErr.Message)

	valid := map[string]any{"username": "icellusedkars", "body": "hi"}
	assert.NoError(t, CheckExactKeys(valid, spec, "body", "username"))
}

func TestRenameKeysRenamesPresentKeys(t *testing.T) {
	query := map[string]any{"s": "votes", "o": "asc", "author": "rogersop"}

	renamed := RenameKeys(query,
		AliasPair{From: "s", To: "sort_by"},
		AliasPair{From: "o", To: "order"},
		AliasPair{From: "a", To: "author"},
	)

	assert.Equal(t, map[string]any{"sort_by": "votes", "order": "asc", "author": "rogersop"}, renamed)
}

func TestRenameKeysDoesNotMutateInput(t *testing.T) {
	query := map[string]any{"l": "5"}

	RenameKeys(query, AliasPair{From: "l", To: "limit"})

	assert.Equal(t, map[string]any{"l": "5"}, query)
}

func TestCheckID(t *testing.T) {
	assert.NoError(t, CheckID("12", "article"))

	err := CheckID("dog", "article")
	clientErr := badRequest(t, err)
	assert.Equal(t, `Bad request. "dog" is not a valid article ID. Expected a number.`, clientErr.Message)
}
