package main

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

//go:embed endpoints.json
var endpointsJSON []byte

// getAPIDescription serves the embedded document listing every endpoint.
func (app *application) getAPIDescription(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.Unmarshal(endpointsJSON, &doc); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, doc, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
