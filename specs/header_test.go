package specs

import (
	"reflect"
	"testing"
)

func TestHeader_RoundTrip(t *testing.T) {
	header := NewHeader().With("X", "a")
	if got := header.Get("X"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Get() = %v, want [a]", got)
	}

	added := header.WithAdded("X", "b")
	if got := added.Get("X"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Get() = %v, want [a b]", got)
	}
	if got := added.Line("X"); got != "a,b" {
		t.Errorf("Line() = %q, want %q", got, "a,b")
	}
	if got := header.Get("X"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("original header changed: %v", got)
	}
}

func TestHeader_Operations(t *testing.T) {
	tests := []struct {
		name      string
		header    Header
		lookup    string
		wantHas   bool
		wantGet   []string
		wantLine  string
		wantNames []string
	}{
		{
			name:      "Absent",
			header:    Header{},
			lookup:    "Accept",
			wantGet:   []string{},
			wantNames: []string{},
		},
		{
			name:      "Case insensitive lookup",
			header:    NewHeader().With("Content-Type", "text/plain"),
			lookup:    "content-type",
			wantHas:   true,
			wantGet:   []string{"text/plain"},
			wantLine:  "text/plain",
			wantNames: []string{"Content-Type"},
		},
		{
			name:      "Added keeps first spelling",
			header:    NewHeader().With("Set-Cookie", "a=1").WithAdded("set-cookie", "b=2"),
			lookup:    "SET-COOKIE",
			wantHas:   true,
			wantGet:   []string{"a=1", "b=2"},
			wantLine:  "a=1,b=2",
			wantNames: []string{"Set-Cookie"},
		},
		{
			name:      "With replaces values and spelling",
			header:    NewHeader().With("host", "a").With("Host", "b"),
			lookup:    "HOST",
			wantHas:   true,
			wantGet:   []string{"b"},
			wantLine:  "b",
			wantNames: []string{"Host"},
		},
		{
			name:      "Added on absent",
			header:    NewHeader().WithAdded("Accept", "a", "b"),
			lookup:    "Accept",
			wantHas:   true,
			wantGet:   []string{"a", "b"},
			wantLine:  "a,b",
			wantNames: []string{"Accept"},
		},
		{
			name:      "Without",
			header:    NewHeader().With("A", "1").With("B", "2").With("C", "3").Without("b"),
			lookup:    "B",
			wantGet:   []string{},
			wantNames: []string{"A", "C"},
		},
		{
			name:      "Without absent",
			header:    NewHeader().With("A", "1").Without("Z"),
			lookup:    "A",
			wantHas:   true,
			wantGet:   []string{"1"},
			wantLine:  "1",
			wantNames: []string{"A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.header.Has(tt.lookup); got != tt.wantHas {
				t.Errorf("Has() = %v, want %v", got, tt.wantHas)
			}
			if got := tt.header.Get(tt.lookup); !reflect.DeepEqual(got, tt.wantGet) {
				t.Errorf("Get() = %v, want %v", got, tt.wantGet)
			}
			if got := tt.header.Line(tt.lookup); got != tt.wantLine {
				t.Errorf("Line() = %q, want %q", got, tt.wantLine)
			}
			if got := tt.header.Names(); !reflect.DeepEqual(got, tt.wantNames) {
				t.Errorf("Names() = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestHeader_Immutable(t *testing.T) {
	base := NewHeader().With("A", "1").With("B", "2")

	_ = base.With("A", "x")
	_ = base.WithAdded("B", "3")
	_ = base.Without("A")

	values := base.Get("A")
	values[0] = "mutated"

	got := map[string][]string{}
	for name, values := range base.All() {
		got[name] = values
	}
	if !reflect.DeepEqual(got, map[string][]string{"A": {"1"}, "B": {"2"}}) {
		t.Errorf("base header changed: %v", got)
	}
}

func TestHeader_AddedDoesNotShareBacking(t *testing.T) {
	base := NewHeader().With("X", "a")
	first := base.WithAdded("X", "b")
	second := base.WithAdded("X", "c")

	if got := first.Get("X"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("first = %v", got)
	}
	if got := second.Get("X"); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("second = %v", got)
	}
}

func TestHeader_AllOrder(t *testing.T) {
	header := NewHeader(func(h Header) Header {
		return h.With("Host", "localhost").With("Accept", "*/*").WithAdded("Host", "other")
	})

	var names []string
	var values [][]string
	for name, vals := range header.All() {
		names = append(names, name)
		values = append(values, vals)
	}

	if !reflect.DeepEqual(names, []string{"Host", "Accept"}) {
		t.Errorf("names = %v", names)
	}
	if !reflect.DeepEqual(values, [][]string{{"localhost", "other"}, {"*/*"}}) {
		t.Errorf("values = %v", values)
	}
	if last, ok := header.Last("host"); !ok || last != "other" {
		t.Errorf("Last() = %q, %v", last, ok)
	}
}
