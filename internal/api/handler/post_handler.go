package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/common"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{postID}", h.get)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuthenticated)
		authed.Post("/", h.create)
		authed.Put("/{postID}", h.update)
		authed.Delete("/{postID}", h.delete)
	})
}

// RegisterUserRoutes mounts the per-author listing under /users.
func (h *PostHandler) RegisterUserRoutes(r chi.Router) {
	r.Get("/{username}/posts", h.listByUser)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPosts(r.Context(), pageParam(r))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	posts, err := h.postService.ListUserPosts(r.Context(), username, pageParam(r))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}
	post, err := h.postService.GetPost(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

func (h *PostHandler) create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := postIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req service.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), user.ID, id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

func (h *PostHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := postIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if err := h.postService.DeletePost(r.Context(), user.ID, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}
