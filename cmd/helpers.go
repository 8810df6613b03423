package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/paginate"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data map[string]any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	// Append a newline to make it easier to view in terminal applications.
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		app.logger.Error(err.Error())
		return err
	}

	return nil
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	const maxBytes = 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {

		var (
			syntaxError           *json.SyntaxError
			unmarshalTypeError    *json.UnmarshalTypeError
			invalidUnmarshalError *json.InvalidUnmarshalError
			maxBytesError         *http.MaxBytesError
		)

		switch {
		case errors.As(err, &syntaxError):
			return xerrors.Newf("body contains badly-formed JSON at (character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return xerrors.Newf("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return xerrors.Newf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return xerrors.Newf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return xerrors.Newf("body must not be empty")

		case errors.As(err, &maxBytesError):
			return xerrors.Newf("body must not be larger than %d bytes", maxBytes)

		case errors.As(err, &invalidUnmarshalError):
			return xerrors.Newf("programmer error: invalid unmarshal target: %w", err)

		default:
			return xerrors.Newf("error decoding JSON: %w", err)
		}
	}

	if err := decoder.Decode(&struct{}{}); err != nil && !errors.Is(err, io.EOF) {
		return errors.New("body must contain only a single JSON value")
	}

	return nil
}

// queryMap flattens the raw query string into the map the core pipeline
// validates; repeated keys keep their first value.
func queryMap(values url.Values) map[string]any {
	query := make(map[string]any, len(values))
	for key, value := range values {
		if len(value) > 0 {
			query[key] = value[0]
		}
	}
	return query
}

func addPageMetadata(response envelope, metadata *paginate.Metadata) {
	if metadata != nil {
		response["page"] = metadata.Page
		response["available_pages"] = metadata.AvailablePages
	}
}
