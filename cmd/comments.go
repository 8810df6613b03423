package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	var payload map[string]any
	if err := app.readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comment, err := app.core.UpdateCommentVotes(r.Context(), params.ByName("comment_id"), payload)
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	if err := app.core.DeleteComment(r.Context(), params.ByName("comment_id")); err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
