/*
Package req provides helpers for parsing and binding HTTP request bodies.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"sehra/internal/pkg/errs"
)

// MaxBodySize caps the JSON request body at 1 MB via http.MaxBytesReader.
const MaxBodySize int64 = 1 << 20

// BindJSON binds the JSON request body to dst, rejecting unknown fields,
// trailing content and non-JSON content types.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
