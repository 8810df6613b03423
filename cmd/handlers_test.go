package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rbeckert/forum/internal/core"
	"github.com/rbeckert/forum/internal/utils/databaseutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation, routing and id checks all run before any store round-trip,
// so these tests drive the full handler stack without a database.
func newTestApplication() *application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &application{
		logger: logger,
		core:   core.NewCore(nil, logger, databaseutils.NewSQLTemplate(nil, time.Second)),
	}
}

func doRequest(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()

	newTestApplication().routes().ServeHTTP(recorder, request)

	response := make(map[string]any)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return recorder.Code, response
}

func errMessage(t *testing.T, response map[string]any) string {
	t.Helper()
	message, ok := response["err"].(string)
	require.True(t, ok, "response carries no err key: %v", response)
	return message
}

func TestUnknownPathIsNotFound(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/not-a-route", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "File or path not found", errMessage(t, response))
}

func TestWrongMethodIsNotAllowed(t *testing.T) {
	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/topics"},
		{http.MethodDelete, "/api"},
		{http.MethodPatch, "/api/users"},
	} {
		status, response := doRequest(t, tc.method, tc.path, "")

		assert.Equal(t, http.StatusMethodNotAllowed, status)
		assert.Equal(t, "Method not allowed on this path", errMessage(t, response))
	}
}

func TestAPIDescriptionListsEndpoints(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, response, "GET /api/articles")
	assert.Contains(t, response, "POST /api/articles/:article_id/comments")
}

func TestGetArticlesRejectsUnknownQueryKey(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api/articles?notakey=1", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad request. Query can only include the following keys: author, limit, order, page, sort_by, topic",
		errMessage(t, response))
}

func TestGetArticlesRejectsBadOrder(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api/articles?order=sideways", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad request - order must be one of: 'asc', 'desc'", errMessage(t, response))
}

func TestGetArticlesRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"dog", "0", "-5"} {
		status, response := doRequest(t, http.MethodGet, "/api/articles?limit="+limit, "")

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Bad request. Unexpected value for limit in query.", errMessage(t, response))
	}
}

func TestGetArticlesRejectsPageWithoutLimit(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api/articles?page=2", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad request. Can't give paginated response if no limit is defined in query",
		errMessage(t, response))
}

func TestGetArticleRejectsNonNumericID(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api/articles/dog", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `Bad request. "dog" is not a valid article ID. Expected a number.`, errMessage(t, response))
}

func TestDeleteArticleRejectsNonNumericID(t *testing.T) {
	status, response := doRequest(t, http.MethodDelete, "/api/articles/first-article", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `Bad request. "first-article" is not a valid article ID. Expected a number.`, errMessage(t, response))
}

func TestUpdateArticleVotesRejectsBadPayload(t *testing.T) {
	for body, wantMessage := range map[string]string{
		`{"inc_votes": "cat"}`:            "Bad request. The value of inc_votes must be a number.",
		`{}`:                              "Bad request. The value of inc_votes must be a number.",
		`{"inc_votes": 1, "name": "sam"}`: "Bad request. JSON passed in request can only include the following keys: inc_votes",
	} {
		status, response := doRequest(t, http.MethodPatch, "/api/articles/1", body)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, wantMessage, errMessage(t, response))
	}
}

func TestUpdateArticleVotesRejectsMalformedJSON(t *testing.T) {
	status, response := doRequest(t, http.MethodPatch, "/api/articles/1", `{"inc_votes":`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errMessage(t, response), "badly-formed JSON")
}

func TestUpdateArticleVotesRejectsEmptyBody(t *testing.T) {
	status, response := doRequest(t, http.MethodPatch, "/api/articles/1", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "body must not be empty", errMessage(t, response))
}

func TestCreateArticleRejectsMissingKeys(t *testing.T) {
	status, response := doRequest(t, http.MethodPost, "/api/articles",
		`{"title": "On forums", "username": "butter_bridge"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing or superfluous keys. The JSON object you send must have keys for title, body, topic, username and no others",
		errMessage(t, response))
}

func TestCreateCommentRejectsBadPayload(t *testing.T) {
	wantExactKeys := "Missing or superfluous keys. The JSON object you send must have keys for body, username and no others"

	for body, wantMessage := range map[string]string{
		`{"username": "butter_bridge"}`:                            wantExactKeys,
		`{"username": "butter_bridge", "body": "hi", "votes": 10}`: wantExactKeys,
		`{"username": "butter_bridge", "body": "   "}`:             "Bad request. The value of body must be a non-empty string.",
	} {
		status, response := doRequest(t, http.MethodPost, "/api/articles/1/comments", body)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, wantMessage, errMessage(t, response))
	}
}

func TestCreateCommentRejectsNonNumericArticleID(t *testing.T) {
	status, response := doRequest(t, http.MethodPost, "/api/articles/dog/comments",
		`{"username": "butter_bridge", "body": "hi"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `Bad request. "dog" is not a valid article ID. Expected a number.`, errMessage(t, response))
}

func TestGetArticleCommentsRejectsBadQuery(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api/articles/1/comments?sort_by=colour", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad request - sort_by must be one of: 'created_at', 'votes', 'author', 'body'",
		errMessage(t, response))
}

func TestGetUserCommentsRejectsUnknownQueryKey(t *testing.T) {
	status, response := doRequest(t, http.MethodGet, "/api/users/butter_bridge/comments?notakey=1", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad request. Query can only include the following keys: author, limit, order, page, sort_by",
		errMessage(t, response))
}

func TestUpdateCommentVotesRejectsNonNumericID(t *testing.T) {
	status, response := doRequest(t, http.MethodPatch, "/api/comments/abc", `{"inc_votes": 1}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `Bad request. "abc" is not a valid comment ID. Expected a number.`, errMessage(t, response))
}

func TestDeleteCommentRejectsNonNumericID(t *testing.T) {
	status, response := doRequest(t, http.MethodDelete, "/api/comments/abc", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `Bad request. "abc" is not a valid comment ID. Expected a number.`, errMessage(t, response))
}
