// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/restpad/restpad/internal/domain/resource"
)

// extrasResponse echoes the first/second query parameters. Absent
// parameters serialize as null.
type extrasResponse struct {
	First  *string `json:"first"`
	Second *string `json:"second"`
}

// resourceWithExtras wraps the resource together with echoed query
// parameters for GET requests that carry them.
type resourceWithExtras struct {
	Resource resource.Resource `json:"resource"`
	Extras   extrasResponse    `json:"extras"`
}

// ResourceHandler handles all verbs on the shared resource.
type ResourceHandler struct {
	deps Dependencies
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(deps Dependencies) *ResourceHandler {
	return &ResourceHandler{deps: deps}
}

// HandleResource dispatches /test_resource requests by method.
func (h *ResourceHandler) HandleResource(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		writeError(w, http.StatusBadRequest, ErrUnsupportedMethod)
	}
}

// handleGet returns the resource, wrapped with echoed query parameters
// when either first or second is present.
func (h *ResourceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	res := h.deps.Resource(r.Context())

	q := r.URL.Query()
	if !q.Has("first") && !q.Has("second") {
		writeJSON(w, http.StatusOK, res)
		return
	}

	var extras extrasResponse
	if q.Has("first") {
		v := q.Get("first")
		extras.First = &v
	}
	if q.Has("second") {
		v := q.Get("second")
		extras.Second = &v
	}
	writeJSON(w, http.StatusOK, resourceWithExtras{Resource: res, Extras: extras})
}

// handlePut merges the body into the shared resource. The merge is
// atomic-or-rejected: an unknown field or bad value leaves the resource
// untouched.
func (h *ResourceHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	updated, err := h.deps.MergeResource(r.Context(), patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrBadBodyParam)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handlePost builds a fresh object requiring every resource field in
// the body. The shared resource is never touched.
func (h *ResourceHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	built, err := h.deps.BuildResource(r.Context(), patch)
	if err != nil {
		if errors.Is(err, resource.ErrMissingField) {
			// err reads "missing field <name>"; that is the wire message.
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusBadRequest, ErrBadBodyParam)
		return
	}
	writeJSON(w, http.StatusCreated, built)
}

// handleDelete acknowledges with an empty 200. The resource is never
// deleted.
func (h *ResourceHandler) handleDelete(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// readPatch reads and parses the request body as a JSON object. On
// failure it writes the bad-body error and reports false.
func readPatch(w http.ResponseWriter, r *http.Request) (resource.Patch, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrBadBodyParam)
		return nil, false
	}
	patch, err := resource.ParsePatch(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrBadBodyParam)
		return nil, false
	}
	return patch, true
}
