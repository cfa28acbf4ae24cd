package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"socialboard/internal/models"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart caps the body at the upload limit plus room for the text fields.
func (h *Handlers) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeValidationError(w, map[string]string{"image": h.tooLargeMessage()})
			return false
		}
		WriteError(w, "invalid multipart form", http.StatusBadRequest)
		return false
	}

	return true
}

// readImage returns nil when the form carries no file under field. The
// returned file must be closed by the caller.
func (h *Handlers) readImage(r *http.Request, field string) (*models.ImageUpload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, models.NewValidationError(field, "the image could not be read")
	}

	if header.Size > h.Cfg.MaxUploadSize {
		file.Close()
		return nil, nil, models.NewValidationError(field, h.tooLargeMessage())
	}

	// sniff the real type instead of trusting the client header
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, nil, models.NewValidationError(field, "the image could not be read")
	}

	contentType := http.DetectContentType(head[:n])
	if !allowedImageTypes[contentType] {
		file.Close()
		return nil, nil, models.NewValidationError(field, "the image must be a file of type: jpeg, png, gif, webp")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("rewind upload: %w", err)
	}

	return &models.ImageUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      file,
	}, file, nil
}

func (h *Handlers) tooLargeMessage() string {
	return fmt.Sprintf("the image may not be greater than %s", humanize.Bytes(uint64(h.Cfg.MaxUploadSize)))
}
