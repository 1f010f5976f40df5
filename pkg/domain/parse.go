package domain

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const recordSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["orderer", "project_dates", "internal_id", "internal_name"],
  "properties": {
    "orderer": { "type": "string" },
    "project_dates": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": { "type": "string" }
      }
    },
    "internal_id": { "type": "string" },
    "internal_name": { "type": "string" }
  }
}`

var recordSchemaLoader = gojsonschema.NewStringLoader(recordSchemaJSON)

// ParseError reports a project-status file that could not be decoded. The
// offending file is skipped and logged; one bad record never blocks other
// owners' reports.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecord decodes a project-status file into a ProjectDataRecord. The
// content is validated against the record schema and every date key must be
// a valid calendar date. Duplicate event names under one date are preserved
// as-is; consumers only check set membership.
func ParseRecord(path string, data []byte) (*ProjectDataRecord, error) {
	result, err := gojsonschema.Validate(recordSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !result.Valid() {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%s", result.Errors()[0])}
	}

	var raw struct {
		Orderer      string              `json:"orderer"`
		ProjectDates map[string][]string `json:"project_dates"`
		InternalID   string              `json:"internal_id"`
		InternalName string              `json:"internal_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	for date := range raw.ProjectDates {
		if _, err := ParseDate(date); err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("invalid date key %q", date)}
		}
	}

	return &ProjectDataRecord{
		Path:         path,
		Orderer:      raw.Orderer,
		ProjectDates: raw.ProjectDates,
		InternalID:   raw.InternalID,
		InternalName: raw.InternalName,
	}, nil
}
