// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

// json is a drop-in replacement for encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the top-level JSON wrapper type used for all API responses.
// Every response body carries a "status" of success, fail or error, plus an
// optional "message" and "data".
type envelope map[string]any

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// readIDParam extracts the ":bookId" URL parameter added by httprouter.
func (app *applicationDependencies) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("bookId")
}

// readString reads a string query parameter from qs. An absent key yields ""
// ("no filter"); a key present with an empty value is recorded on v.
func (app *applicationDependencies) readString(qs url.Values, key string, v *validator.Validator) string {
	if !qs.Has(key) {
		return ""
	}
	s := qs.Get(key)
	v.Check(s != "", key, "must not be empty")
	return s
}

// readFlag reads a 0/1 query parameter from qs. An absent key yields nil
// ("no filter"); any other value than 0 or 1 is recorded on v.
func (app *applicationDependencies) readFlag(qs url.Values, key string, v *validator.Validator) *bool {
	if !qs.Has(key) {
		return nil
	}
	s := qs.Get(key)
	if !validator.In(s, "0", "1") {
		v.AddError(key, "must be 0 or 1")
		return nil
	}
	b := s == "1"
	return &b
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (trailing whitespace is allowed).
// The returned errors are short enough to hand to the client.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		}
		return errors.New("body could not be read")
	}

	switch {
	case len(bytes.TrimSpace(body)) == 0:
		return errors.New("body must not be empty")
	case !json.Valid(body):
		return errors.New("body contains badly-formed JSON")
	}

	src := bytes.NewReader(body)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()

	err = dec.Decode(dst)
	if err != nil {
		if field, ok := unknownField(err); ok {
			return fmt.Errorf("body contains unknown key %q", field)
		}
		return errors.New("body contains a value of the wrong type")
	}

	// Whatever the decoder has not consumed must be whitespace.
	rest, err := io.ReadAll(io.MultiReader(dec.Buffered(), src))
	if err != nil || len(bytes.TrimSpace(rest)) > 0 {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// unknownField extracts the offending key from a DisallowUnknownFields error.
func unknownField(err error) (string, bool) {
	const marker = "found unknown field: "

	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	field := msg[i+len(marker):]
	if j := strings.IndexByte(field, ','); j >= 0 {
		field = field[:j]
	}
	return field, true
}
