package api

import (
	"bytes"
	"encoding/json"

	"hostel-client/internal/shared/apperror"
)

// The backend is inconsistent about list shapes: some endpoints return a bare
// array, others wrap it under a resource-named key. One strategy table here
// replaces the per-call branching every screen of the old frontend carried.
type resourceSpec struct {
	wrapKey      string
	updateMethod string // http.MethodPut or http.MethodPatch
	listAllPath  string // optional unfiltered-list override
}

var resources = map[string]resourceSpec{
	"students":   {wrapKey: "students", updateMethod: "PUT"},
	"leaves":     {wrapKey: "leaves", updateMethod: "PUT"},
	"complaints": {wrapKey: "complaints", updateMethod: "PUT", listAllPath: "complaints/all"},
	"outpasses":  {wrapKey: "outpasses", updateMethod: "PATCH"},
}

func specFor(resource string) resourceSpec {
	if spec, ok := resources[resource]; ok {
		return spec
	}
	return resourceSpec{wrapKey: resource, updateMethod: "PUT"}
}

// normalizeList extracts the record array from a list body: a bare array is
// used as-is, an object with the resource's wrap key yields that array, and
// anything else is a SHAPE_ERROR (callers degrade to an empty list).
func normalizeList(resource string, body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, apperror.Shape(resource)
	}

	if trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, apperror.Shape(resource)
		}
		return trimmed, nil
	}

	if trimmed[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, apperror.Shape(resource)
		}
		inner, ok := obj[specFor(resource).wrapKey]
		if !ok {
			return nil, apperror.Shape(resource)
		}
		innerTrimmed := bytes.TrimSpace(inner)
		if len(innerTrimmed) == 0 || innerTrimmed[0] != '[' {
			return nil, apperror.Shape(resource)
		}
		return innerTrimmed, nil
	}

	return nil, apperror.Shape(resource)
}
