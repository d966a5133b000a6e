package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the calendar-day storage format. Dates carry no time of day.
const dateLayout = "2006-01-02"

// dateArg converts a nullable date into a driver value.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// parseDate converts a scanned date column back into a nullable date.
func parseDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored date %q: %w", ns.String, err)
	}
	return &t, nil
}

// joinTools flattens a tool list into one column.
func joinTools(tools []string) string {
	return strings.Join(tools, ",")
}

// splitTools restores a tool list from its column form.
func splitTools(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
