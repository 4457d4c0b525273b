package repository

import "time"

const dateLayout = "2006-01-02"

// nullableStrToPtr converts a scanned nullable TEXT column to a *string.
func nullableStrToPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ptrToNullable converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func ptrToNullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// parseDate parses a stored date column, tolerating both the date layout
// and RFC3339 timestamps.
func parseDate(s string) time.Time {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
