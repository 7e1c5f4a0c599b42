package compare

import "fmt"

// MissingMetricError reports a run summary that lacks a metric every
// configuration must expose.
type MissingMetricError struct {
	Configuration string
	Metric        string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("configuration %q: summary is missing required metric %q", e.Configuration, e.Metric)
}

// ReservedColumnError reports a metric whose name collides with the
// configuration column.
type ReservedColumnError struct {
	Configuration string
}

func (e *ReservedColumnError) Error() string {
	return fmt.Sprintf("configuration %q: metric name %q is reserved", e.Configuration, ConfigurationColumn)
}

// EmptyTableError is returned when selecting from a table with no rows.
type EmptyTableError struct {
	Metric string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("cannot select by %q: comparison table has no rows", e.Metric)
}

// MissingColumnError is returned when the metric is not a column of the table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("comparison table has no column %q", e.Column)
}

// NoComparableRowsError is returned when every row's value for the metric is
// missing or NaN.
type NoComparableRowsError struct {
	Column string
	Rows   int
}

func (e *NoComparableRowsError) Error() string {
	return fmt.Sprintf("none of the %d rows has a comparable value for %q", e.Rows, e.Column)
}
