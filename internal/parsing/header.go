package parsing

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Field is one parsed header field.
type Field struct {
	Name  string
	Value string
}

// ParseHeaderLines turns raw header lines into fields, keeping their order.
//
// Each line is split on the first ':' and both sides are trimmed.
// A line starting with a space or tab continues the value of the
// previous field (obsolete line folding). Lines without a colon or
// with an invalid name or value are skipped.
func ParseHeaderLines(lines []string) []Field {
	fields := make([]Field, 0, len(lines))

	current := -1
	for _, line := range lines {
		if line == "" {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if current < 0 {
				continue
			}
			if folded := strings.TrimSpace(line); folded != "" {
				if fields[current].Value == "" {
					fields[current].Value = folded
				} else {
					fields[current].Value += " " + folded
				}
			}
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			current = -1
			continue
		}

		fields = append(fields, Field{Name: name, Value: value})
		current = len(fields) - 1
	}

	return fields
}
