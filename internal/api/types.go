package api

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultHistoryLimit is the page size requested from the history endpoint.
const DefaultHistoryLimit = 200

// LiveMetrics is an instantaneous cluster snapshot. It's replaced wholesale
// on every successful poll.
type LiveMetrics struct {
	RunningUncached int       `json:"runningUncached" validate:"gte=0"`
	RunningCached   int       `json:"runningCached" validate:"gte=0"`
	ClusterNodes    int       `json:"clusterNodes" validate:"gte=0"`
	UpdatedAt       time.Time `json:"updatedAtIso"`
}

// DurationPoint is one bucket of the duration time-series. A nil duration
// means the bucket had no samples, which is different from a zero duration.
type DurationPoint struct {
	Timestamp  time.Time `json:"tsIso"`
	CachedMs   *float64  `json:"cachedMs" validate:"omitempty,gte=0"`
	UncachedMs *float64  `json:"uncachedMs" validate:"omitempty,gte=0"`
}

// Series is a run of DurationPoints in ascending timestamp order.
type Series []DurationPoint

// Source is where a query came from.
type Source string

const (
	SourceJDBC   Source = "JDBC"
	SourceREST   Source = "REST"
	SourcePython Source = "PYTHON"
	SourceOther  Source = "OTHER"
)

// UnmarshalJSON folds case and maps anything unrecognised (the backend also
// reports storage tiers like "db" or "cache_s3" here) to SourceOther.
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = SourceOther
		return nil
	}
	switch v := Source(strings.ToUpper(strings.TrimSpace(*raw))); v {
	case SourceJDBC, SourceREST, SourcePython:
		*s = v
	default:
		*s = SourceOther
	}
	return nil
}

// Status is the lifecycle state of a query.
type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusOK      Status = "OK"
	StatusFailed  Status = "FAILED"
)

// UnmarshalJSON folds case and reports a cancelled query as FAILED. Other
// values (the backend sends "UNKNOWN" for a query with no state) are kept
// as-is and fail validation.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = ""
		return nil
	}
	switch v := Status(strings.ToUpper(strings.TrimSpace(*raw))); v {
	case "CANCELED", "CANCELLED":
		*s = StatusFailed
	default:
		*s = v
	}
	return nil
}

// QueryRow is one entry of the query history. DurationMs is nil exactly when
// the query is still running.
type QueryRow struct {
	StartedAt  time.Time `json:"startedAtIso"`
	QueryID    string    `json:"queryId" validate:"required"`
	Source     Source    `json:"source" validate:"oneof=JDBC REST PYTHON OTHER"`
	Cached     bool      `json:"cached"`
	DurationMs *float64  `json:"durationMs" validate:"omitempty,gte=0"`
	RowCount   *int64    `json:"rows" validate:"omitempty,gte=0"`
	Status     Status    `json:"status" validate:"oneof=RUNNING OK FAILED"`

	// Optional extras the backend may include.
	SQL       string `json:"sql,omitempty"`
	CacheKind string `json:"cache,omitempty"`
}

// Running reports whether the query hasn't finished yet.
func (r QueryRow) Running() bool {
	return r.Status == StatusRunning
}

// History is a page of QueryRows, most recent first.
type History []QueryRow
