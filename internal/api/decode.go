package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/iceforge/skadimon/internal/errors"
)

// validate is shared; validator caches struct metadata and is safe for
// concurrent use.
var validate = validator.New()

func decodeError(err error, what string) error {
	return errors.WrapWithCode(err, errors.ErrDecode,
		fmt.Sprintf("Malformed %s payload", what), "")
}

// DecodeLive parses and validates a live-metrics payload.
func DecodeLive(data []byte) (LiveMetrics, error) {
	var live *LiveMetrics
	if err := json.Unmarshal(data, &live); err != nil {
		return LiveMetrics{}, decodeError(err, "live metrics")
	}
	if live == nil {
		return LiveMetrics{}, decodeError(fmt.Errorf("expected an object, got null"), "live metrics")
	}
	if err := validate.Struct(live); err != nil {
		return LiveMetrics{}, decodeError(err, "live metrics")
	}
	if live.UpdatedAt.IsZero() {
		return LiveMetrics{}, decodeError(fmt.Errorf("updatedAtIso is missing"), "live metrics")
	}
	return *live, nil
}

// DecodeSeries parses and validates a time-series payload. Points must be in
// ascending timestamp order; the series is not re-sorted.
func DecodeSeries(data []byte) (Series, error) {
	var series Series
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, decodeError(err, "time-series")
	}
	if series == nil {
		series = Series{}
	}

	for i := range series {
		p := &series[i]
		if err := validate.Struct(p); err != nil {
			return nil, decodeError(fmt.Errorf("point %d: %w", i, err), "time-series")
		}
		if p.Timestamp.IsZero() {
			return nil, decodeError(fmt.Errorf("point %d: tsIso is missing", i), "time-series")
		}
		if i > 0 && p.Timestamp.Before(series[i-1].Timestamp) {
			return nil, decodeError(fmt.Errorf("point %d is earlier than point %d", i, i-1), "time-series")
		}
	}
	return series, nil
}

// RowIssue is a history row that was corrected or dropped while decoding.
type RowIssue struct {
	Index   int
	QueryID string
	Reason  string
	Dropped bool
}

func (r RowIssue) String() string {
	action := "corrected"
	if r.Dropped {
		action = "dropped"
	}
	return fmt.Sprintf("row %d (%s) %s: %s", r.Index, r.QueryID, action, r.Reason)
}

// DecodeHistory parses a history page, truncating it to limit rows when
// limit is positive. Only a malformed page is an error. Rows are checked one
// at a time: a RUNNING row with a duration has it cleared, and a row that
// fails validation, lacks a finished query's duration or repeats an id is
// dropped. Each correction is returned as a RowIssue.
func DecodeHistory(data []byte, limit int) (History, []RowIssue, error) {
	var page History
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, nil, decodeError(err, "history")
	}
	if limit > 0 && len(page) > limit {
		page = page[:limit]
	}

	var issues []RowIssue
	history := make(History, 0, len(page))
	seen := make(map[string]bool, len(page))
	for i := range page {
		row := page[i]
		drop := func(reason string) {
			issues = append(issues, RowIssue{Index: i, QueryID: row.QueryID, Reason: reason, Dropped: true})
		}

		if row.Source == "" {
			row.Source = SourceOther
		}
		if err := validate.Struct(&row); err != nil {
			drop(err.Error())
			continue
		}
		if row.Running() && row.DurationMs != nil {
			// The backend reports elapsed time for running queries.
			row.DurationMs = nil
			issues = append(issues, RowIssue{Index: i, QueryID: row.QueryID, Reason: "RUNNING row had a duration"})
		}
		if !row.Running() && row.DurationMs == nil {
			drop(fmt.Sprintf("%s row has no duration", row.Status))
			continue
		}
		if seen[row.QueryID] {
			drop("duplicate queryId")
			continue
		}
		seen[row.QueryID] = true
		history = append(history, row)
	}
	return history, issues, nil
}
