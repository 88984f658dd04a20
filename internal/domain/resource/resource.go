// Package resource defines the demo record exposed by the API and the
// validation rules for mutating it.
package resource

import (
	"encoding/json"
	"fmt"
)

// Resource is the single demo record served by the API. All four fields
// are always present and keep their declared types.
type Resource struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Endpoints int    `json:"endpoints"`
	HasValues bool   `json:"has_values"`
}

// Field names in canonical order. Validation messages report the first
// missing field in this order.
const (
	FieldName      = "name"
	FieldLocation  = "location"
	FieldEndpoints = "endpoints"
	FieldHasValues = "has_values"
)

// Fields returns the canonical field order.
func Fields() []string {
	return []string{FieldName, FieldLocation, FieldEndpoints, FieldHasValues}
}

// Default returns the stock record created at process start.
func Default() Resource {
	return Resource{
		Name:      "example_resource",
		Location:  "my_computer",
		Endpoints: 2,
		HasValues: true,
	}
}

// Patch is a raw field-wise view of a JSON request body.
type Patch map[string]json.RawMessage

// ParsePatch decodes a JSON object body into a Patch. Non-object bodies
// (arrays, scalars, malformed input) fail with ErrBadValue.
func ParsePatch(data []byte) (Patch, error) {
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	return p, nil
}

// Merge returns a copy of r with the patch applied. The whole patch is
// validated before anything is applied: an unknown field or a value
// that does not decode into the field's type rejects the entire patch.
func (r Resource) Merge(p Patch) (Resource, error) {
	out := r
	for field, raw := range p {
		if err := out.set(field, raw); err != nil {
			return r, err
		}
	}
	return out, nil
}

// Build constructs a fresh Resource from the patch, requiring every
// field to be present. The first missing field, in canonical order, is
// reported via ErrMissingField.
func Build(p Patch) (Resource, error) {
	var out Resource
	for _, field := range Fields() {
		raw, ok := p[field]
		if !ok {
			return Resource{}, fmt.Errorf("%w %s", ErrMissingField, field)
		}
		if err := out.set(field, raw); err != nil {
			return Resource{}, err
		}
	}
	return out, nil
}

// set decodes raw into the named field, enforcing the declared type.
func (r *Resource) set(field string, raw json.RawMessage) error {
	var dst any
	switch field {
	case FieldName:
		dst = &r.Name
	case FieldLocation:
		dst = &r.Location
	case FieldEndpoints:
		dst = &r.Endpoints
	case FieldHasValues:
		dst = &r.HasValues
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadValue, field, err)
	}
	return nil
}
