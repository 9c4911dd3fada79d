package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
)

// defaultMaxUploadBytes bounds multipart bodies when the router is built
// without an explicit limit.
const defaultMaxUploadBytes = 20 << 20

// errMissingFile is returned by readUpload when the form has no such file.
var errMissingFile = errors.New("missing file")

// decodeAndValidate reads a JSON body into req and validates it. On failure
// it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		log.Debug("invalid request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidRequest)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("request validation failed", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}
	return true
}

// queryLanguage returns the language query parameter or fallback.
func queryLanguage(r *http.Request, fallback string) string {
	return orDefault(r.URL.Query().Get("language"), fallback)
}

// upload is a file read from a multipart form.
type upload struct {
	data        []byte
	filename    string
	contentType string
}

// readUpload parses a multipart form capped at maxBytes and reads the named
// file part. The caller writes the response for any error.
func readUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("%w: %s", errMissingFile, field)
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &upload{
		data:        data,
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
	}, nil
}

// respondUploadError writes the status that matches a readUpload failure.
func respondUploadError(w http.ResponseWriter, r *http.Request, field string, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, MsgUploadTooLarge, err)
	case errors.Is(err, errMissingFile):
		shared.RespondWithError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid %s: required field", field))
	default:
		logger.FromContext(r.Context()).Debug("failed to read multipart upload", "field", field, "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidRequest)
	}
}
