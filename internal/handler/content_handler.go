package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialboard/internal/models"
	"socialboard/internal/service"
)

type CreateContentRequest struct {
	PostID string `json:"post_id" form:"post_id" validate:"required,uuid"`
	Status string `json:"status" form:"status" validate:"omitempty,max=50"`
}

type UpdateContentRequest struct {
	Status *string `json:"status" form:"status" validate:"omitempty,min=1,max=50"`
}

func (h *Handlers) GetContents(w http.ResponseWriter, r *http.Request) {
	contents, err := h.ContentService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeList(w, h.newContentResources(contents))
}

func (h *Handlers) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.ContentService.Find(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, h.newContentResource(content), http.StatusOK)
}

func (h *Handlers) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	var image *models.ImageUpload

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		req.PostID = r.FormValue("post_id")
		req.Status = r.FormValue("status")
		if !h.validate(w, &req) {
			return
		}

		upload, file, err := h.readImage(r, "image")
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		if file != nil {
			defer file.Close()
		}
		image = upload
	} else if !h.decodeAndValidate(w, r, &req) {
		return
	}

	content, err := h.ContentService.Save(r.Context(), principalID(r.Context()), service.SaveContentInput{
		PostID: req.PostID,
		Status: req.Status,
		Image:  image,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, h.newContentResource(content), http.StatusCreated)
}

func (h *Handlers) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req UpdateContentRequest
	var image *models.ImageUpload

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		if values, ok := r.MultipartForm.Value["status"]; ok && len(values) > 0 {
			req.Status = &values[0]
		}
		if !h.validate(w, &req) {
			return
		}

		upload, file, err := h.readImage(r, "image")
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		if file != nil {
			defer file.Close()
		}
		image = upload
	} else if !h.decodeAndValidate(w, r, &req) {
		return
	}

	content, err := h.ContentService.Update(r.Context(), principalID(r.Context()), mux.Vars(r)["id"], service.UpdateContentInput{
		Status: req.Status,
		Image:  image,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, h.newContentResource(content), http.StatusOK)
}

func (h *Handlers) DeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.ContentService.Delete(r.Context(), principalID(r.Context()), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
