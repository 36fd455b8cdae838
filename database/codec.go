package database

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// encodeTags serializes a tag list to a compact JSON array.
// A nil list is stored as "[]".
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tags); err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	// Encoder adds a trailing newline
	return strings.TrimSpace(buf.String()), nil
}

// decodeTags parses a stored tag list. NULL, empty and "null" all decode to
// an empty list.
func decodeTags(raw sql.NullString) ([]string, error) {
	tags := []string{}
	if !raw.Valid || raw.String == "" || raw.String == "null" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("decode tags %q: %w", raw.String, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func fromMillis(ms sql.NullInt64) time.Time {
	if !ms.Valid || ms.Int64 == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms.Int64)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// likePattern builds a LIKE pattern matching value as a literal substring.
// Use with ESCAPE '\'.
func likePattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(value) + "%"
}
