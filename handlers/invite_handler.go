package handlers

import (
	"net/http"

	"github.com/garry1963/golf-society-manager-sub000/services"
)

type InviteHandler struct {
	inviteService services.InviteService
}

func NewInviteHandler(inviteService services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// CreateHandler handles POST /invites
func (h *InviteHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	invite, err := h.inviteService.Create(r.Context(), input.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// The token is returned once, on creation, so the secretary can
	// pass it along even when mail delivery is off.
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"invite": invite, "token": invite.Token}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AcceptHandler handles POST /invites/accept
func (h *InviteHandler) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	var input services.AcceptInviteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.inviteService.Accept(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"member": member}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
