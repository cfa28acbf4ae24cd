package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialboard/internal/service"
)

type CreatePostRequest struct {
	Title string `json:"title" form:"title" validate:"required,max=255"`
}

type UpdatePostRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=255"`
}

const maxPageSize = 100

// GetPosts lists every post unless page or limit is given.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, limit := 0, 0
	if query.Has("page") || query.Has("limit") {
		page, _ = strconv.Atoi(query.Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ = strconv.Atoi(query.Get("limit"))
		if limit < 1 || limit > maxPageSize {
			limit = 20
		}
	}

	posts, err := h.PostService.List(r.Context(), page, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeList(w, h.newPostResources(posts))
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.Find(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, h.newPostResource(post), http.StatusOK)
}

// CreatePost accepts JSON, or a multipart form when an image comes with the post.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	input := service.CreatePostInput{UserID: principalID(r.Context())}

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		req := CreatePostRequest{Title: r.FormValue("title")}
		if !h.validate(w, &req) {
			return
		}
		input.Title = req.Title

		image, file, err := h.readImage(r, "image")
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		if file != nil {
			defer file.Close()
		}
		input.Image = image
	} else {
		var req CreatePostRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		input.Title = req.Title
	}

	post, err := h.PostService.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, h.newPostResource(post), http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.PostService.Update(r.Context(), principalID(r.Context()), mux.Vars(r)["id"], req.Title)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, h.newPostResource(post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.Delete(r.Context(), principalID(r.Context()), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
