// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the book repository.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookshelf-api/internal/data"
	"github.com/aoideee/bookshelf-api/internal/validator"
)

// Client-facing envelope messages.
const (
	msgBookCreated      = "Buku berhasil ditambahkan"
	msgBookCreateFailed = "Gagal menambahkan buku"
	msgBookCreateError  = "Buku gagal ditambahkan"
	msgBookListFailed   = "Gagal menampilkan buku"
	msgBookNotFound     = "Buku tidak ditemukan"
	msgBookUpdated      = "Buku berhasil diperbarui"
	msgBookUpdateFailed = "Gagal memperbarui buku"
	msgBookDeleted      = "Buku berhasil dihapus"
	msgBookDeleteFailed = "Buku gagal dihapus"
	msgIDNotFound       = "Id tidak ditemukan"
	msgNameRequired     = "Mohon isi nama buku"
	msgReadPageTooLarge = "readPage tidak boleh lebih besar dari pageCount"
	documentationPath   = "/documentation"
)

// validationReason picks the client-facing reason for a rejected payload.
// A missing name wins over every other problem.
func validationReason(ve *data.ValidationError) string {
	if _, ok := ve.Errors["name"]; ok {
		return msgNameRequired
	}
	if ve.Errors["readPage"] == data.MsgReadPageTooLarge {
		return msgReadPageTooLarge
	}
	return data.DescribeErrors(ve.Errors)
}

// rootHandler handles GET / by redirecting to the API documentation.
func (app *applicationDependencies) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, documentationPath, http.StatusMovedPermanently)
}

// documentationHandler handles GET /documentation.
// It describes every registered route.
func (app *applicationDependencies) documentationHandler(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, r, http.StatusOK, "", envelope{"routes": app.routeDocs()})
}

// createBookHandler handles POST /books.
// It reads a JSON body containing the new book's details, stores it, and
// responds with the generated bookId and a 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, msgBookCreateFailed+". "+err.Error())
		return
	}

	id, err := app.models.Books.Insert(input)
	if err != nil {
		var ve *data.ValidationError
		switch {
		case errors.As(err, &ve):
			app.badRequestResponse(w, r, msgBookCreateFailed+". "+validationReason(ve))
		default:
			app.serverErrorMessageResponse(w, r, err, msgBookCreateError)
		}
		return
	}

	app.successResponse(w, r, http.StatusCreated, msgBookCreated, envelope{"bookId": id})
}

// listBooksHandler handles GET /books.
// Optional query parameters: name (non-empty, case-insensitive substring),
// reading and finished (0 or 1). An absent parameter does not filter.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	filters := data.BookFilters{
		Name:     app.readString(qs, "name", v),
		Reading:  app.readFlag(qs, "reading", v),
		Finished: app.readFlag(qs, "finished", v),
	}
	if !v.Valid() {
		app.badRequestResponse(w, r, msgBookListFailed+". "+data.DescribeErrors(v.Errors))
		return
	}

	books := app.models.Books.GetAll(filters)

	app.successResponse(w, r, http.StatusOK, "", envelope{"books": books})
}

// showBookHandler handles GET /books/:bookId.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.failResponse(w, r, http.StatusNotFound, msgBookNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, "", envelope{"book": book})
}

// updateBookHandler handles PUT /books/:bookId.
// name is required; any other field left out of the body keeps its value.
// Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	var input data.UpdateBookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, msgBookUpdateFailed+". "+err.Error())
		return
	}

	err = app.models.Books.Update(id, input)
	if err != nil {
		var ve *data.ValidationError
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.failResponse(w, r, http.StatusNotFound, msgBookUpdateFailed+". "+msgIDNotFound)
		case errors.As(err, &ve):
			app.badRequestResponse(w, r, msgBookUpdateFailed+". "+validationReason(ve))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, msgBookUpdated, nil)
}

// deleteBookHandler handles DELETE /books/:bookId.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	err := app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.failResponse(w, r, http.StatusNotFound, msgBookDeleteFailed+". "+msgIDNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, msgBookDeleted, nil)
}
