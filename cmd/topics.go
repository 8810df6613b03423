package main

import "net/http"

func (app *application) getTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := app.core.GetTopics(r.Context())
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"topics": topics}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
