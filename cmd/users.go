package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) getUsers(w http.ResponseWriter, r *http.Request) {
	users, total, metadata, err := app.core.GetUsers(r.Context(), queryMap(r.URL.Query()))
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"users":      users,
		"user_count": total,
	}
	addPageMetadata(response, metadata)

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getUserComments(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	comments, total, metadata, err := app.core.GetCommentsByUser(r.Context(), username, queryMap(r.URL.Query()))
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"comments":      comments,
		"comment_count": total,
	}
	addPageMetadata(response, metadata)

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// validateUser reports absence as a successful {"exists": false} rather
// than a 404; clients use it to pre-validate usernames before submitting.
func (app *application) validateUser(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	exists, err := app.core.UserValidity(r.Context(), username)
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"exists": exists}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
