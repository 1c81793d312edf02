package controllers

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"visitors/internal/models"
	"visitors/internal/providers"
	"visitors/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger providers.Logger
	store  storage.RecordStoreInterface
	ids    models.IDGenerator
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewApiController(logger providers.Logger, store storage.RecordStoreInterface, ids models.IDGenerator) *ApiController {
	return &ApiController{
		logger: logger,
		store:  store,
		ids:    ids,
	}
}

// SaveVisitor decodes a candidate from the body, assigns it an id and persists it.
func (ac *ApiController) SaveVisitor(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var body models.Candidate
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	candidate := models.NewCandidate(ac.ids, body.FullName, body.Age, body.DateOfVisit, body.TimeOfVisit, body.Comments, body.AssistorName)

	visitor, err := ac.store.Save(r.Context(), candidate)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	ac.logger.Debugf(providers.TypeWrite, "visitor %d stored at %s", visitor.ID, storage.FilePath(visitor.FullName))
	writeJSON(w, http.StatusCreated, visitor)
}

// GetVisitor loads the record for the "name" query parameter.
func (ac *ApiController) GetVisitor(w http.ResponseWriter, r *http.Request) {
	visitor, err := ac.store.Load(r.Context(), normalizeName(r.URL.Query().Get("name")))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visitor)
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{
		Error:   string(models.KindOf(err)),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindFieldValidation, models.KindNameValidation:
		return http.StatusUnprocessableEntity
	case models.KindFileExists:
		return http.StatusConflict
	case models.KindReadFailure:
		if errors.Is(err, fs.ErrNotExist) {
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// normalizeName trims surrounding blanks so "?name=John%20Doe%20" finds the same record.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
