package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/agencysite/pkg/validator"
)

// JSONResponse is the standard JSON response structure.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, vs := range j.headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONMeta adds metadata to the response.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// WithJSONData attaches data to an error response.
func WithJSONData(data any) JSONOption {
	return func(r *jsonResponse) { r.body.Data = data }
}

// WithJSONHeader sets a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Set(key, value)
	}
}

// WithJSONMessage overrides the error message.
func WithJSONMessage(msg string) JSONOption {
	return func(r *jsonResponse) {
		if r.body.Error != nil {
			r.body.Error.Message = msg
		}
	}
}

// JSON creates a 200 response carrying v as data.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError creates an error response. The status is derived from err
// unless overridden with WithJSONStatus.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	r.body.Error = errorToDetail(err, &r.status)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorToDetail(err error, status *int) *ErrorDetail {
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		*status = http.StatusUnprocessableEntity
		details := make(map[string][]string, len(verrs))
		for _, ve := range verrs {
			details[ve.Field] = append(details[ve.Field], ve.Message)
		}
		return &ErrorDetail{
			Code:    "validation_error",
			Message: "validation failed",
			Details: details,
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		*status = httpErr.Code
		return &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	*status = http.StatusInternalServerError
	return &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
