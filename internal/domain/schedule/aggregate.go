package schedule

import "time"

// Span is a nullable date range contributed by one child entity.
type Span struct {
	Start *time.Time
	End   *time.Time
}

// Merge folds child spans into a derived range: the earliest non-null start
// and the latest non-null end. A side with no non-null contributions stays
// null, so an entity with no dated children derives a fully null range.
// Merge is a pure function of its input; recomputing over unchanged children
// reproduces the same range.
func Merge(spans []Span) (start, end *time.Time) {
	for _, span := range spans {
		if span.Start != nil && (start == nil || span.Start.Before(*start)) {
			start = span.Start
		}
		if span.End != nil && (end == nil || span.End.After(*end)) {
			end = span.End
		}
	}
	return start, end
}
