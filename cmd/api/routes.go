// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// route is one entry of the routing table. The same table drives both the
// router and the /documentation listing.
type route struct {
	method      string
	path        string
	description string
	notes       string
	handler     http.HandlerFunc
}

// routeDoc is the public description of a route.
type routeDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Notes       string `json:"notes,omitempty"`
}

// routeTable lists every endpoint:
//
//	GET    /                  – redirect to the documentation
//	GET    /documentation     – describe the API
//	POST   /books             – create a new book
//	GET    /books             – list books, optionally filtered
//	GET    /books/:bookId     – retrieve a single book by ID
//	PUT    /books/:bookId     – update an existing book
//	DELETE /books/:bookId     – delete a book by ID
func (app *applicationDependencies) routeTable() []route {
	return []route{
		{http.MethodGet, "/", "Redirect to documentation", "", app.rootHandler},
		{http.MethodGet, documentationPath, "API documentation", "Lists every route", app.documentationHandler},
		{http.MethodPost, "/books", "Add Book Data", "Add Book Data", app.createBookHandler},
		{http.MethodGet, "/books", "Get All Books", "Get a List of Books", app.listBooksHandler},
		{http.MethodGet, "/books/:bookId", "Get Book Details", "Get Book Details by Id", app.showBookHandler},
		{http.MethodPut, "/books/:bookId", "Update Book Data", "Update Book Data", app.updateBookHandler},
		{http.MethodDelete, "/books/:bookId", "Delete Book", "Delete Book Data", app.deleteBookHandler},
	}
}

func (app *applicationDependencies) routeDocs() []routeDoc {
	table := app.routeTable()
	docs := make([]routeDoc, len(table))
	for i, rt := range table {
		docs[i] = routeDoc{Method: rt.method, Path: rt.path, Description: rt.description, Notes: rt.notes}
	}
	return docs
}

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	for _, rt := range app.routeTable() {
		router.HandlerFunc(rt.method, rt.path, rt.handler)
	}

	return app.recoverPanic(app.rateLimit(router))
}
