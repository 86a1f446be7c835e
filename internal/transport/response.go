package transport

import (
	"encoding/json"
	"net/http"
)

// TruncatedHeader is set on list responses cut at the listing cap.
const TruncatedHeader = "X-Result-Truncated"

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// WriteList writes items as a bare JSON array, never null.
func WriteList[T any](w http.ResponseWriter, items []T, truncated bool) {
	if items == nil {
		items = []T{}
	}
	if truncated {
		w.Header().Set(TruncatedHeader, "true")
	}
	WriteJSON(w, http.StatusOK, items)
}
