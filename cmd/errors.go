package main

import (
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/httperr"
)

func (app *application) pathNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "File or path not found", nil)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed on this path", nil)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
}

// clientErrorResponse renders an expected failure produced by the core
// pipeline; anything unclassified becomes a logged 500 with a generic
// message, so internals never leak to the client.
func (app *application) clientErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if clientErr, ok := httperr.FromError(err); ok {
		app.errorResponse(w, r, clientErr.Status, clientErr.Message, nil)
		return
	}
	app.internalErrorResponse(w, r, err)
}

func (app *application) internalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusInternalServerError, "An internal server error occurred.", err)
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, cause error) {
	var attrs []slog.Attr
	attrs = append(attrs, slog.String("request_url", r.URL.String()))
	attrs = append(attrs, slog.String("request_method", r.Method))
	attrs = append(attrs, slog.Int("status", status))
	if cause != nil {
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(cause)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	app.logger.LogAttrs(r.Context(), level, message, attrs...)

	if err := app.writeJSON(w, status, envelope{"err": message}, nil); err != nil {
		app.logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}
