package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/service"
)

const (
	// PictureField is the multipart field carrying the optional attachment.
	PictureField = "picture"

	maxMultipartMemory = 12 << 20

	msgSubmissionSaved = "Submission saved successfully"
	msgSaveFailed      = "Error saving submission"
	msgFetchFailed     = "Error fetching submissions"
	msgBadBody         = "Invalid request body"
)

type SubmissionHandler struct {
	svc service.SubmissionService
}

func NewSubmissionHandler(svc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Create accepts multipart, urlencoded, or JSON bodies. An unreadable
// multipart body is a save failure; malformed JSON or form encoding is 400.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var in service.SubmissionInput
	var picture *service.Upload

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			slog.ErrorContext(r.Context(), "parse multipart submission", "err", err)
			writeText(w, http.StatusInternalServerError, msgSaveFailed)
			return
		}
		defer r.MultipartForm.RemoveAll()

		in = formInput(r)
		file, header, err := r.FormFile(PictureField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			slog.ErrorContext(r.Context(), "open uploaded picture", "err", err)
			writeText(w, http.StatusInternalServerError, msgSaveFailed)
			return
		default:
			defer file.Close()
			picture = &service.Upload{FileName: header.Filename, Content: file}
		}
	case "application/json":
		if err := readJSON(r, &in); err != nil {
			writeText(w, http.StatusBadRequest, msgBadBody)
			return
		}
	default:
		if err := r.ParseForm(); err != nil {
			writeText(w, http.StatusBadRequest, msgBadBody)
			return
		}
		in = formInput(r)
	}

	sub, err := h.svc.Create(r.Context(), in, picture)
	if err != nil {
		slog.ErrorContext(r.Context(), "save submission", "err", err)
		writeText(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	slog.InfoContext(r.Context(), "submission saved", "id", sub.ID, "hasPicture", sub.Picture != nil)
	writeText(w, http.StatusCreated, msgSubmissionSaved)
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "fetch submissions", "err", err)
		writeText(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func formInput(r *http.Request) service.SubmissionInput {
	return service.SubmissionInput{
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Comment:  r.FormValue("comment"),
	}
}
