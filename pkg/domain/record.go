// Package domain holds the core types of the daily report pipeline: project
// status records parsed from the data repository, orders fetched from the
// order portal, and the status vocabulary used to collapse event histories
// into a single display status.
package domain

import "time"

// DateLayout is the calendar date format used for project event dates and
// order closing dates.
const DateLayout = "2006-01-02"

// ProjectDataRecord is the parsed status history of one internal project,
// sourced from a version-controlled file. Records are immutable once
// constructed; when the underlying file changes a fresh record supersedes
// the old one in the master.
type ProjectDataRecord struct {
	Path         string              `json:"path"`
	Orderer      string              `json:"orderer"`
	ProjectDates map[string][]string `json:"project_dates"`
	InternalID   string              `json:"internal_id"`
	InternalName string              `json:"internal_name"`
}

// ProjectDataMaster is the process-scoped collection of records, keyed by
// internal project identifier.
type ProjectDataMaster struct {
	Records map[string]*ProjectDataRecord `json:"records"`
}

// NewProjectDataMaster returns an empty master.
func NewProjectDataMaster() *ProjectDataMaster {
	return &ProjectDataMaster{Records: make(map[string]*ProjectDataRecord)}
}

// Put inserts a record, replacing any previous record with the same internal
// identifier.
func (m *ProjectDataMaster) Put(rec *ProjectDataRecord) {
	if m.Records == nil {
		m.Records = make(map[string]*ProjectDataRecord)
	}
	m.Records[rec.InternalID] = rec
}

// Get looks up a record by internal project identifier.
func (m *ProjectDataMaster) Get(internalID string) (*ProjectDataRecord, bool) {
	rec, ok := m.Records[internalID]
	return rec, ok
}

// Len returns the number of records held.
func (m *ProjectDataMaster) Len() int {
	return len(m.Records)
}

// ParseDate parses a calendar date in the fixed textual format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
