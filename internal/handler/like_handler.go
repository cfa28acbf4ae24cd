package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	like, err := h.LikeService.LikePost(r.Context(), principalID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, newLikeResource(like), http.StatusCreated)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	removed, err := h.LikeService.UnlikePost(r.Context(), principalID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if !removed {
		WriteError(w, "like not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
