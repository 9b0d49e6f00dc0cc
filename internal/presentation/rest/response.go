package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/domain/model"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// errorResponse is the JSON body of every error reply. Only the fields that
// apply to a given error are set.
type errorResponse struct {
	Error   string   `json:"error"`
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message,omitempty"`
	Value   *string  `json:"value,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return errors.New("request body too large")
	}
	if len(body) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &model.ValidationError{Field: typeErr.Field, Reason: "must be a " + kindName(typeErr.Type)}
		}
		return err
	}
	return nil
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	default:
		return t.Kind().String()
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, errorResponse{Error: msg})
}

// writePredictionError maps a pipeline error to its HTTP reply.
func writePredictionError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var (
		missing *dto.MissingFieldsError
		verr    *model.ValidationError
		uerr    *model.UnknownCategoryError
		ierr    *model.ModelIntegrityError
	)
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing fields", Missing: missing.Fields})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request",
			Field:   verr.Field,
			Message: verr.Error(),
		})
	case errors.As(err, &uerr):
		value := uerr.Value
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Unknown category",
			Field:   uerr.Field,
			Message: uerr.Error(),
			Value:   &value,
		})
	case errors.As(err, &ierr):
		writeError(w, http.StatusInternalServerError, "Prediction failed")
	case errors.Is(err, model.ErrModelNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "Model not loaded")
	default:
		logger.ErrorContext(r.Context(), "unexpected prediction error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
