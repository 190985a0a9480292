package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/server/services"
)

// Register handles POST /api/auth/register/.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.members.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		h.writeJSON(w, r, http.StatusBadRequest, fieldErrors{"username": {"Username already exists."}})
		return
	case errors.Is(err, services.ErrPasswordTooLong):
		h.writeJSON(w, r, http.StatusBadRequest, fieldErrors{"password": {"Ensure this field has no more than 72 bytes."}})
		return
	case err != nil:
		h.writeInternal(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "member registered", "member_id", res.Member.ID)
	h.writeJSON(w, r, http.StatusCreated, newAuthResponse(res))
}

// Login handles POST /api/auth/login/.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.members.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.writeDetail(w, r, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.writeInternal(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newAuthResponse(res))
}

// Logout handles POST /api/auth/logout/ by revoking the presented credential.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		h.writeInternal(w, r, err)
		return
	}
	h.writeDetail(w, r, http.StatusOK, "Successfully logged out")
}
