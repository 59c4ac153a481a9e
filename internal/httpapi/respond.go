package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/internal/logging"
	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

// ErrorResponse is the JSON body of an error.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Failed  int               `json:"failed,omitempty"`
}

// statusFor maps notice codes to HTTP status codes.
func statusFor(code string) int {
	switch code {
	case console.CodeInvalid:
		return http.StatusUnprocessableEntity
	case console.CodeNotFound, console.CodeParentNotFound:
		return http.StatusNotFound
	case console.CodeConflict:
		return http.StatusConflict
	case console.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes its user-facing form.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := console.MapError(err)
	status := statusFor(msg.Code)

	body := ErrorResponse{Code: msg.Code, Message: msg.Text}
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		body.Fields = verrs
	}
	s.writeError(w, r, status, body, err)
}

// respondCascade reports a delete whose children were only partly removed.
func (s *Server) respondCascade(w http.ResponseWriter, r *http.Request, report store.Report, err error) {
	msg := console.MapError(err)
	body := ErrorResponse{Code: msg.Code, Message: msg.Text, Failed: len(report.Failures)}
	s.writeError(w, r, statusFor(msg.Code), body, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse, err error) {
	logger := logging.With(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("request error", "path", r.URL.Path, "method", r.Method, "status", status, "code", body.Code, "error", err)
	} else {
		logger.Info("request rejected", "path", r.URL.Path, "method", r.Method, "status", status, "code", body.Code)
	}

	respondJSON(w, status, body)
}

func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	logging.With(r.Context(), s.logger).Info("bad request", "path", r.URL.Path, "error", err)
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "bad_request", Message: err.Error()})
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeForm reads a JSON object body into form values.
// Strings, numbers and booleans become single values; arrays become
// repeated values; null is ignored.
func decodeForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	form := make(url.Values, len(body))
	for field, raw := range body {
		if raw == nil {
			continue
		}
		if list, ok := raw.([]any); ok {
			values := make([]string, 0, len(list))
			for _, item := range list {
				v, err := scalar(item)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", field, err)
				}
				values = append(values, v)
			}
			form[field] = values
			continue
		}
		v, err := scalar(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		form.Set(field, v)
	}
	return form, nil
}

func scalar(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value %T", v)
	}
}
