// Package domain contains the core domain types for the romanization gateway.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ServiceName identifies the service in info responses.
const ServiceName = "uroman"

// ServiceDescription is the human-readable summary returned by info requests.
const ServiceDescription = "Universal Romanizer - converts any script to Latin alphabet"

// UnknownVersion is reported when the engine version cannot be determined.
const UnknownVersion = "unknown"

// Request is a plain-operation request body.
// Exactly one branch is active: Texts when the body carries a "texts" key
// (even alongside "text"), Text otherwise.
type Request struct {
	Text     string
	Texts    []string
	HasTexts bool
	LangCode *string
}

// UnmarshalJSON records whether the "texts" key was present so routing can
// honor batch precedence for explicit nulls and empty arrays.
func (r *Request) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("request body must be a JSON object: %w", err)
	}

	*r = Request{}

	if raw, ok := fields["texts"]; ok {
		r.HasTexts = true
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &r.Texts); err != nil {
				return fmt.Errorf("texts must be an array of strings: %w", err)
			}
		}
	} else if raw, ok := fields["text"]; ok && !isNull(raw) {
		// "text" is only read on the single-text branch.
		if err := json.Unmarshal(raw, &r.Text); err != nil {
			return fmt.Errorf("text must be a string: %w", err)
		}
	}

	if raw, ok := fields["lang_code"]; ok && !isNull(raw) {
		var lang string
		if err := json.Unmarshal(raw, &lang); err != nil {
			return fmt.Errorf("lang_code must be a string: %w", err)
		}
		r.LangCode = &lang
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Result is a successful plain-operation outcome: *SingleResult or *BatchResult.
type Result interface {
	isResult()
}

// SingleResult is the output of a single-text romanization.
type SingleResult struct {
	Original  string  `json:"original"`
	Romanized string  `json:"romanized"`
	LangCode  *string `json:"lang_code"`
}

// BatchResult is the output of a batch romanization.
// Romanized[i] corresponds to Originals[i] and Count equals len(Originals).
type BatchResult struct {
	Originals []string `json:"originals"`
	Romanized []string `json:"romanized"`
	LangCode  *string  `json:"lang_code"`
	Count     int      `json:"count"`
}

func (*SingleResult) isResult() {}
func (*BatchResult) isResult()  {}

// Info describes the running service.
type Info struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ErrorBody is the wire shape of a failed plain-operation response.
type ErrorBody struct {
	Error string    `json:"error"`
	Code  ErrorKind `json:"code"`
}

// StringValue dereferences an optional language code.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
