package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vbonduro/tastetrails/internal/places"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// isTextUpload reports whether data looks like a text file. JSON has no
// signature of its own, so net/http.DetectContentType classifies it as plain
// text; anything it recognises as binary or markup is rejected.
func isTextUpload(data []byte) bool {
	return strings.HasPrefix(http.DetectContentType(data), "text/plain")
}

// readImport returns the uploaded file, taken from the "file" field of a
// multipart form or from the raw request body.
func (s *Server) readImport(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxImportBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.maxImportBytes); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("failed to read form file: %w", err)
		}
		defer closeWithLog(file, "import file", s.logger)
		return io.ReadAll(file)
	}

	return io.ReadAll(r.Body)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := s.readImport(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeServiceError(w, "import", err)
			return
		}
		s.writeError(w, http.StatusBadRequest, "import file required")
		return
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !isTextUpload(data) {
		s.writeError(w, http.StatusBadRequest, places.ErrParse.Error())
		return
	}

	res, err := s.service.Import(r.Context(), data, r.URL.Query().Get("mode"))
	if err != nil {
		s.writeServiceError(w, "import", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.Export(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		s.writeServiceError(w, "export", err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", out.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	if out.ArchiveKey != "" {
		h.Set("X-Archive-Key", out.ArchiveKey)
	}
	if _, err := w.Write(out.Data); err != nil {
		s.logger.Error("write export failed", "error", err)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context(), confirmed(r)); err != nil {
		s.writeServiceError(w, "reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListArchives(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Archives(r.Context())
	if err != nil {
		s.writeServiceError(w, "list archives", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetArchive(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	reader, contentType, err := s.service.OpenArchive(r.Context(), key)
	if err != nil {
		s.writeServiceError(w, "open archive", err)
		return
	}
	defer closeWithLog(reader, "archive reader", s.logger)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write archive failed", "key", key, "error", err)
	}
}

func (s *Server) handleDeleteArchive(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteArchive(r.Context(), r.PathValue("key"), confirmed(r)); err != nil {
		s.writeServiceError(w, "delete archive", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
