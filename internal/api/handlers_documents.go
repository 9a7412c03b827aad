package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/models"
)

// Uploads larger than this are rejected outright.
const maxUploadBytes = 32 << 20

func documentID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// UploadDocument registers a multipart file upload: bytes go to object
// storage, the record (with a best-effort page count) into the registry.
func (s *Server) UploadDocument(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error reading file")
		return
	}
	if len(data) > maxUploadBytes {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	doc, err := s.documents.Upload(r.Context(), claims.UserID, header.Filename, data)
	if err != nil {
		s.logger.Error(r.Context(), "upload failed", "error", err, "user_id", claims.UserID)
		writeMappedError(w, err)
		return
	}

	s.logger.Info(r.Context(), "document uploaded", "user_id", claims.UserID, "document_id", doc.ID, "pages", doc.PageCount)
	writeJSON(w, http.StatusOK, doc)
}

// Queue lists all of the user's documents. The client decides what counts
// as queue (unprinted) versus history (everything).
func (s *Server) Queue(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	docs, err := s.documents.List(r.Context(), claims.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "list documents failed", "error", err, "user_id", claims.UserID)
		writeMappedError(w, err)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	writeJSON(w, http.StatusOK, docs)
}

// PrintDocument runs the atomic pay-and-print transaction and returns the
// printed document with a presentation-layer status marker.
func (s *Server) PrintDocument(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	id, err := documentID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	doc, err := s.printer.Print(r.Context(), id, claims.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "print failed", "error", err, "user_id", claims.UserID, "document_id", id)
		writeMappedError(w, err)
		return
	}

	s.logger.Info(r.Context(), "document printed", "user_id", claims.UserID, "document_id", id, "cost", doc.PageCount)
	writeJSON(w, http.StatusOK, documentResponse{Document: doc, Status: "printed"})
}

// DeleteDocument removes the stored bytes and then the record. A storage
// failure leaves the record in place so the delete can be retried.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	id, err := documentID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	doc, err := s.documents.Delete(r.Context(), id, claims.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "delete failed", "error", err, "user_id", claims.UserID, "document_id", id)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// DownloadDocument streams the stored bytes back as an attachment.
func (s *Server) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	id, err := documentID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	body, filename, err := s.documents.Download(r.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		s.logger.Error(r.Context(), "download failed", "error", err, "user_id", claims.UserID, "document_id", id)
		writeError(w, http.StatusInternalServerError, "Error downloading file")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, body); err != nil {
		s.logger.Error(r.Context(), "download stream failed", "error", err, "document_id", id)
	}
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
