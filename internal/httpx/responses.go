package httpx

import (
	"encoding/json"
	"log"
	"maps"
	"net/http"
)

// SuccessResponse wraps catalogue payloads. Records themselves are not
// enveloped; they are served raw as attachments.
type SuccessResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    map[string]any    `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// requestMeta merges the request id into extra.
func requestMeta(r *http.Request, extra map[string]any) map[string]any {
	requestID := RequestIDFrom(r)
	if requestID == "" && len(extra) == 0 {
		return nil
	}
	meta := make(map[string]any, len(extra)+1)
	maps.Copy(meta, extra)
	if requestID != "" {
		meta["request_id"] = requestID
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write json status=%d error=%v", status, err)
	}
}

// JSONSuccessWithRequest writes a 200 envelope with the request id in meta.
func JSONSuccessWithRequest(r *http.Request, w http.ResponseWriter, data any, meta map[string]any) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    requestMeta(r, meta),
	})
}

// JSONErrorWithRequest writes an error envelope. Errors are never cached so
// a record that becomes complete upstream is served on the next try.
func JSONErrorWithRequest(r *http.Request, w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: requestMeta(r, nil),
	})
}
