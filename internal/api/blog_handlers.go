package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"personalsite/internal/auth"
	"personalsite/internal/entities"
	"personalsite/internal/service"
	"personalsite/internal/utils"
)

type BlogHandler struct {
	Service *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{Service: svc}
}

// List answers GET /blog?tag=go&page=1&limit=10 with published posts.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)
	list, err := h.Service.List(r.URL.Query().Get("tag"), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Get serves a single post by id or slug.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.Service.Get(mux.Vars(r)["idOrSlug"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	post, err := h.Service.Create(claims, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.UpdateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	post, err := h.Service.Update(claims, mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	if err := h.Service.Delete(claims, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Blog post deleted")
}
