package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/common"
	"inkwell/internal/platform/avatar"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

type AccountHandler struct {
	accountService *service.AccountService
	avatars        *avatar.Storage
}

func NewAccountHandler(accountService *service.AccountService, avatars *avatar.Storage) *AccountHandler {
	return &AccountHandler{accountService: accountService, avatars: avatars}
}

func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireAuthenticated)
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Post("/avatar", h.uploadAvatar)
	r.Put("/password", h.changePassword)
}

func (h *AccountHandler) get(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AccountHandler) update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.accountService.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Avatar file required: "+err.Error())
		return
	}
	defer file.Close()

	filename, err := h.avatars.Save(file, header.Filename)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.accountService.UpdateProfile(r.Context(), user.ID, service.UpdateProfileRequest{AvatarFile: &filename})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AccountHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.accountService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
