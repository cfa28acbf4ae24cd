package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.CommentService.Create(r.Context(), mux.Vars(r)["id"], principalID(r.Context()), req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, newCommentResource(comment), http.StatusCreated)
}
