// cmd/api/errors.go
// This file contains the response-envelope helpers for the application.
// Success and failure bodies share the same {status, message, data} shape.
package main

import (
	"log/slog"
	"net/http"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// successResponse sends a "success" envelope. message and data are omitted
// from the body when empty.
func (app *applicationDependencies) successResponse(w http.ResponseWriter, r *http.Request, status int, message string, data envelope) {
	body := envelope{"status": statusSuccess}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// errorResponse sends an envelope with the given status code, envelope status and message.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, code int, status, message string) {
	data := envelope{"status": status, "message": message}
	err := app.writeJSON(w, code, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// failResponse sends a client-side "fail" envelope.
func (app *applicationDependencies) failResponse(w http.ResponseWriter, r *http.Request, code int, message string) {
	app.errorResponse(w, r, code, statusFail, message)
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.serverErrorMessageResponse(w, r, err, "the server encountered a problem and could not process your request")
}

// serverErrorMessageResponse is serverErrorResponse with a caller-chosen message.
func (app *applicationDependencies) serverErrorMessageResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, statusError, message)
}

// notFoundResponse sends a 404 Not Found for unknown routes.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.failResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.failResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request "fail" envelope.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.failResponse(w, r, http.StatusBadRequest, message)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.failResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
