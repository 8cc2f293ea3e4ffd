// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"querysmith/cli/internal/errors"
)

// OutcomeKind labels how a statement concluded.
type OutcomeKind string

const (
	// OutcomeRowSet is a read that returned at least one row.
	OutcomeRowSet OutcomeKind = "row_set"
	// OutcomeAffected is a committed write with a row count.
	OutcomeAffected OutcomeKind = "affected"
	// OutcomeNoRecords is a read that matched nothing. Distinct from
	// failure: the statement ran.
	OutcomeNoRecords OutcomeKind = "no_records"
	// OutcomeFailure is a rejected or rolled-back statement.
	OutcomeFailure OutcomeKind = "failure"
)

// Failure carries the classified error for a failed statement. SuggestedFix,
// when present, is an advisory rewrite of the statement. It is never
// executed automatically.
type Failure struct {
	Kind         errors.Kind `json:"kind"`
	Message      string      `json:"message"`
	SuggestedFix string      `json:"suggested_fix,omitempty"`
}

// Outcome is the result half of a report.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Columns  []string    `json:"columns,omitempty"`
	Rows     [][]any     `json:"rows,omitempty"`
	Affected int64       `json:"affected,omitempty"`
	Failure  *Failure    `json:"failure,omitempty"`
}

// Report is the envelope for one execution. BoundColumns echoes the values
// that were actually bound, even when the statement failed, so a caller can
// reproduce the attempt.
type Report struct {
	UseCaseID    string         `json:"use_case_id,omitempty"`
	Statement    string         `json:"statement"`
	BoundColumns map[string]any `json:"bound_columns"`
	Outcome      Outcome        `json:"outcome"`
}

// MarshalJSON implements custom JSON marshaling for Report to handle driver
// types properly: byte slices become text, raw UUID values become canonical
// UUID strings.
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	a := alias(r)

	if len(r.BoundColumns) > 0 {
		cols := make(map[string]any, len(r.BoundColumns))
		for name, val := range r.BoundColumns {
			cols[name] = jsonValue(val)
		}
		a.BoundColumns = cols
	}

	if len(r.Outcome.Rows) > 0 {
		rows := make([][]any, len(r.Outcome.Rows))
		for i, row := range r.Outcome.Rows {
			rows[i] = make([]any, len(row))
			for j, val := range row {
				rows[i][j] = jsonValue(val)
			}
		}
		a.Outcome.Rows = rows
	}

	return json.Marshal(a)
}

// jsonValue converts a driver value to a JSON-serializable form. Drivers
// return text columns as []byte; sixteen raw bytes that are not valid UTF-8
// are a UUID in its binary form.
func jsonValue(val any) any {
	switch v := val.(type) {
	case []byte:
		if len(v) == 16 && !utf8.Valid(v) {
			var raw [16]byte
			copy(raw[:], v)
			return uuidString(raw)
		}
		return string(v)
	case [16]byte:
		return uuidString(v)
	default:
		return v
	}
}

// uuidString formats raw UUID bytes as xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
// %02x keeps each byte at exactly 2 hex digits (with leading zeros).
func uuidString(v [16]byte) string {
	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7],
		v[8], v[9], v[10], v[11], v[12], v[13], v[14], v[15])
}
