package core

import (
	"errors"
	"regexp"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/httperr"
)

// Detail of a foreign key violation reads:
//
//	Key (author)=(not_a_user) is not present in table "users".
var fkDetailPattern = regexp.MustCompile(`Key \((\w+)\)=\((.+)\) is not present in table "(\w+)"`)

// Hint of an undefined column error reads:
//
//	Perhaps you meant to reference the column "articles.author".
var hintColumnPattern = regexp.MustCompile(`"(?:\w+\.)?(\w+)"`)

// wrapDataError translates the store failure shapes we know into client
// errors, and attaches a stack to everything else so the boundary logs it
// and answers with a generic 500. When a known code arrives with an
// unexpected detail or hint the message degrades to a generic one; this
// never panics on a mismatch.
func wrapDataError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return xerrors.New(err)
	}

	switch pqErr.Code {
	case "22P02": // invalid_text_representation
		return httperr.BadRequestf("Bad request. A value in the request has the wrong type.")

	case "23503": // foreign_key_violation
		if m := fkDetailPattern.FindStringSubmatch(pqErr.Detail); m != nil {
			return httperr.BadRequestf("Bad request. '%s' is not a valid value for %s: no matching record in %s.", m[2], m[1], m[3])
		}
		return httperr.BadRequestf("Bad request. The request refers to a record that does not exist.")

	case "42703": // undefined_column
		if m := hintColumnPattern.FindStringSubmatch(pqErr.Hint); m != nil {
			return httperr.BadRequestf("Bad request. Perhaps you meant '%s'", m[1])
		}
		return httperr.BadRequestf("Bad request. Bad column name.")

	default:
		return xerrors.New(err)
	}
}
