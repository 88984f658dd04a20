// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// statusResponse is the constant document served at the root path.
type statusResponse struct {
	Status string     `json:"status"`
	Nest   nestedInfo `json:"nest"`
}

type nestedInfo struct {
	Test int `json:"test"`
}

// StatusHandler handles root path requests.
type StatusHandler struct{}

// NewStatusHandler creates a new status handler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// HandleStatus handles GET / requests with a constant status document.
// The "/" pattern matches every unregistered path, so anything other
// than the exact root is a 404.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status: "online",
		Nest:   nestedInfo{Test: 5},
	})
}
