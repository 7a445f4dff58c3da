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

type CommentHandler struct {
	Service *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{Service: svc}
}

// List answers GET /blog/{postID}/comments with a paginated comment page.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)
	list, err := h.Service.List(r.Context(), mux.Vars(r)["postID"], page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	comment, err := h.Service.Create(r.Context(), claims, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	comment, err := h.Service.Update(r.Context(), claims, mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	if err := h.Service.Delete(r.Context(), claims, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Comment deleted")
}
