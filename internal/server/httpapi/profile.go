package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/corpchat/internal/common"
)

// GetProfile handles GET /api/profile/.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, newMemberResponse(MemberFromContext(r.Context())))
}

// UpdateProfile handles PUT /api/profile/. Only username is writable.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !h.decode(w, r, &req) {
		return
	}

	member := MemberFromContext(r.Context())
	if req.Username == nil {
		h.writeJSON(w, r, http.StatusOK, newMemberResponse(member))
		return
	}

	updated, err := h.members.UpdateProfile(r.Context(), member, *req.Username)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			h.writeJSON(w, r, http.StatusBadRequest, fieldErrors{"username": {"Username already exists."}})
			return
		}
		h.writeInternal(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newMemberResponse(updated))
}
