package book

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books?query=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	books, err := h.service.Search(r.Context(), query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "PERSISTENCE_ERROR", "storage failure: "+err.Error(), nil)
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSONSuccess(w, books, map[string]any{
		"query": query,
		"count": len(books),
	})
}

// createRequest mirrors the creation form: all fields arrive as raw strings
// and are validated here before anything touches storage.
type createRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Price     string `json:"price"`
	ISBN      string `json:"isbn"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}

	formErrs := Validate(req.Title, req.Author, req.Publisher, req.Price, req.ISBN)
	if formErrs.HasErrors() {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid book", formErrorDetails(formErrs))
		return
	}

	// Validate guarantees the price parses.
	price, err := strconv.Atoi(strings.TrimSpace(req.Price))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid book",
			[]httpx.ErrorDetail{{Field: "price", Message: "price must be a positive integer"}})
		return
	}

	created, err := h.service.Create(r.Context(), CreateBookForm{
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Price:     price,
		ISBN:      req.ISBN,
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not save book: "+err.Error(), nil)
		return
	}

	httpx.JSONSuccessCreated(w, created)
}

func formErrorDetails(e FormErrors) []httpx.ErrorDetail {
	var details []httpx.ErrorDetail
	add := func(field, message string) {
		if message != "" {
			details = append(details, httpx.ErrorDetail{Field: field, Message: message})
		}
	}
	add("title", e.Title)
	add("author", e.Author)
	add("publisher", e.Publisher)
	add("price", e.Price)
	add("isbn", e.ISBN)
	return details
}
