package specs

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Header is an immutable, ordered multi-value map of header fields.
//
// Names are matched case-insensitively and keep the spelling they were
// stored with. Every mutator returns a new Header and leaves the receiver
// untouched, so a Header may be shared freely between messages.
// The zero value is an empty header.
type Header struct {
	entries []headerEntry
}

type headerEntry struct {
	key    string
	name   string
	values []string
}

// NewHeader creates a Header and applies configure functions to it in order.
func NewHeader(configure ...func(Header) Header) Header {
	var header Header
	for _, conf := range configure {
		header = conf(header)
	}
	return header
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

func (header Header) index(name string) int {
	key := foldName(name)
	for i, entry := range header.entries {
		if entry.key == key {
			return i
		}
	}
	return -1
}

// Has reports whether a field with the given name is present.
func (header Header) Has(name string) bool {
	return header.index(name) >= 0
}

// Get returns the values stored for name, in insertion order,
// or an empty slice if absent.
func (header Header) Get(name string) []string {
	i := header.index(name)
	if i < 0 {
		return []string{}
	}
	return slices.Clone(header.entries[i].values)
}

// Last returns the last value stored for name.
func (header Header) Last(name string) (string, bool) {
	i := header.index(name)
	if i < 0 || len(header.entries[i].values) == 0 {
		return "", false
	}
	values := header.entries[i].values
	return values[len(values)-1], true
}

// Line returns the values for name joined by ",", or "" if absent.
func (header Header) Line(name string) string {
	i := header.index(name)
	if i < 0 {
		return ""
	}
	return strings.Join(header.entries[i].values, ",")
}

// With returns a copy where the values for name are replaced by values.
func (header Header) With(name string, values ...string) Header {
	entry := headerEntry{
		key:    foldName(name),
		name:   name,
		values: slices.Clone(values),
	}

	entries := slices.Clone(header.entries)
	if i := header.index(name); i >= 0 {
		entries[i] = entry
	} else {
		entries = append(entries, entry)
	}
	return Header{entries: entries}
}

// WithAdded returns a copy where values are appended to the existing
// values for name. It behaves like [Header.With] when name is absent.
func (header Header) WithAdded(name string, values ...string) Header {
	i := header.index(name)
	if i < 0 {
		return header.With(name, values...)
	}

	entries := slices.Clone(header.entries)
	current := entries[i]
	merged := make([]string, 0, len(current.values)+len(values))
	merged = append(merged, current.values...)
	merged = append(merged, values...)
	entries[i] = headerEntry{key: current.key, name: current.name, values: merged}
	return Header{entries: entries}
}

// Without returns a copy with name removed. Removing an absent name is a no-op.
func (header Header) Without(name string) Header {
	i := header.index(name)
	if i < 0 {
		return header
	}
	return Header{entries: slices.Delete(slices.Clone(header.entries), i, i+1)}
}

// Names returns field names in insertion order.
func (header Header) Names() []string {
	names := make([]string, len(header.entries))
	for i, entry := range header.entries {
		names[i] = entry.name
	}
	return names
}

// All iterates over every field name with its values, in insertion order.
func (header Header) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, entry := range header.entries {
			if !yield(entry.name, slices.Clone(entry.values)) {
				break
			}
		}
	}
}
