package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/race50/race50-service-go/log"
	"github.com/race50/race50-service-go/pkg/ingest"
	"github.com/race50/race50-service-go/pkg/ingest/parse"
	"github.com/race50/race50-service-go/pkg/repository"
)

// handleUpload accepts one delimited text file in the multipart field
// "file" and answers with the stored session or the error envelope.
// The user-visible message distinguishes structural failures, all
// rows invalid and save failures since each implies a different
// corrective action.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	usr := requestUser(r)

	r.Body = http.MaxBytesReader(w, r.Body, ingest.MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no file in request", nil)
		return
	}
	defer file.Close()

	result, err := s.upload.ProcessUpload(r.Context(), usr, header.Filename, file)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

//nolint:cyclop // one case per error kind
func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	var noValid *ingest.NoValidRowsError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedExtension),
		errors.Is(err, ingest.ErrFileTooLarge),
		errors.Is(err, ingest.ErrBinaryContent):
		s.writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, parse.ErrMissingHeader):
		s.writeError(w, http.StatusBadRequest, "no rows parsed: missing header", nil)
	case errors.Is(err, ingest.ErrNoDataRows):
		s.writeError(w, http.StatusBadRequest, "no rows parsed: no data rows", nil)
	case errors.As(err, &noValid):
		s.writeError(w, http.StatusBadRequest,
			"rows parsed but all invalid", noValid.RowErrors)
	case errors.Is(err, repository.ErrConflict):
		s.writeError(w, http.StatusConflict, "save failed, please retry", nil)
	default:
		s.logger.Error("upload failed", log.ErrorField(err))
		s.writeError(w, http.StatusInternalServerError, "save failed", nil)
	}
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	items, err := s.session.List(r.Context(), requestUser(r))
	if err != nil {
		s.logger.Error("listing sessions", log.ErrorField(err))
		s.writeError(w, http.StatusInternalServerError, "could not list sessions", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	detail, err := s.session.Get(r.Context(), requestUser(r), id)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if err := s.session.Delete(r.Context(), requestUser(r), id); err != nil {
		s.writeLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	secondaryID := 0
	if with := r.URL.Query().Get("with"); with != "" {
		// an unparseable id is treated like a missing session
		secondaryID, _ = strconv.Atoi(with)
	}
	cmp, err := s.compare.Compare(r.Context(), requestUser(r), id, secondaryID)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid session id", nil)
		return 0, false
	}
	return id, true
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNoData) {
		s.writeError(w, http.StatusNotFound, "session not found", nil)
		return
	}
	s.logger.Error("session lookup", log.ErrorField(err))
	s.writeError(w, http.StatusInternalServerError, "internal error", nil)
}
