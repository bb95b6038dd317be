package postgres

import (
	"encoding/json"
	"fmt"
	"strings"
)

// placeholder returns a placeholder for PostgreSQL (uses $1, $2, ...)
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n placeholders for PostgreSQL
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

// marshalStringList encodes a string list for a JSON text column.
// nil marshals to "[]" so the column default holds.
func marshalStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	buf, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// unmarshalStringList decodes a JSON text column into a string list.
func unmarshalStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}
