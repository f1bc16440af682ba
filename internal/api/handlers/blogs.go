// internal/api/handlers/blogs.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/api/validate"
	"github.com/baharkarakas/bloglist-backend/internal/apperr"
	"github.com/baharkarakas/bloglist-backend/internal/middleware"
	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type BlogHandler struct {
	Svc *services.BlogService
}

func NewBlogHandler(s *services.BlogService) *BlogHandler {
	return &BlogHandler{Svc: s}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// Create requires the Auth middleware; the caller becomes the owner.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteErr(w, r, apperr.Unauthorized("token missing"))
		return
	}
	var p validate.BlogPayload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	nb, err := validate.BlogCreate(p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	b, err := h.Svc.Create(r.Context(), nb, who)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

// Update answers 404 for an unknown id before looking at the body.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Svc.Get(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	var p validate.BlogPayload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	patch, err := validate.BlogUpdate(p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	b, err := h.Svc.Update(r.Context(), id, patch)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// Delete requires the Auth middleware; only the owner may delete.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteErr(w, r, apperr.Unauthorized("token missing"))
		return
	}
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id"), who); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
