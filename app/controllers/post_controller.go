package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"poststream/app/models"
	"poststream/app/repositories"
	"poststream/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

var validate = validator.New()

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	log         *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log *slog.Logger) *PostController {
	return &PostController{
		postService: postService,
		log:         log,
	}
}

type postView struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	Msg   string    `json:"msg"`
	Date  time.Time `json:"date"`
}

type createPostRequest struct {
	Title string `json:"title"`
	Msg   string `json:"msg"`
}

type editPostRequest struct {
	Title *string `json:"title" validate:"required_without=Msg"`
	Msg   *string `json:"msg" validate:"required_without=Title"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Max    int    `json:"max,omitempty"`
	Actual int    `json:"actual,omitempty"`
}

func toView(entry repositories.Entry) postView {
	return postView{
		ID:    entry.ID,
		Title: entry.Post.Title(),
		Msg:   entry.Post.Message(),
		Date:  entry.Post.Date(),
	}
}

// Index handles listing posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)

	entries, err := pc.postService.List(page, perPage)
	if err != nil {
		pc.sendError(w, err)
		return
	}

	pc.sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": lo.Map(entries, func(entry repositories.Entry, _ int) postView {
			return toView(entry)
		}),
		"page": page,
	})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	entry, err := pc.postService.Get(id)
	if err != nil {
		pc.sendError(w, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, toView(entry))
}

// Render writes the boxed text rendering of a post
func (pc *PostController) Render(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	box, err := pc.postService.Render(id)
	if err != nil {
		pc.sendError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(box))
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pc.sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON: " + err.Error()})
		return
	}

	entry, err := pc.postService.Publish(req.Title, req.Msg)
	if err != nil {
		pc.sendError(w, err)
		return
	}
	pc.sendJSON(w, http.StatusCreated, toView(entry))
}

// Edit handles replacing the title and/or message of a post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	var req editPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pc.sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON: " + err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		pc.sendJSON(w, http.StatusBadRequest, errorResponse{Error: "title or msg is required"})
		return
	}

	entry, err := pc.postService.Edit(id, req.Title, req.Msg)
	if err != nil {
		pc.sendError(w, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, toView(entry))
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	if err := pc.postService.Delete(id); err != nil {
		pc.sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (pc *PostController) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pc.sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid post ID"})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func (pc *PostController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		pc.log.Error("Failed to encode response", "error", err)
	}
}

// sendError maps service errors to HTTP statuses
func (pc *PostController) sendError(w http.ResponseWriter, err error) {
	var lengthErr *models.LengthError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		pc.sendJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
	case errors.As(err, &lengthErr):
		pc.sendJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  err.Error(),
			Max:    lengthErr.Max,
			Actual: lengthErr.Actual,
		})
	case models.IsValidationError(err):
		pc.sendJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		pc.log.Error("Request failed", "error", err)
		pc.sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}
