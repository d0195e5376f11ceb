package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/termplan/internal/domain"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// jsonOrNull marshals v for a nullable TEXT column. Values that encode as
// JSON null are stored as SQL NULL.
func jsonOrNull(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, nil
	}
	return string(data), nil
}

// decodeNullableJSON unmarshals a nullable TEXT column into dst, leaving dst
// untouched for NULL or empty values.
func decodeNullableJSON(s sql.NullString, dst any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), dst)
}

// startKindsToString encodes term kinds as a comma-separated list.
func startKindsToString(kinds []domain.TermKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

func parseStartKinds(s string) []domain.TermKind {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	kinds := make([]domain.TermKind, len(parts))
	for i, p := range parts {
		kinds[i] = domain.TermKind(p)
	}
	return kinds
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
