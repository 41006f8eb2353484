package almanac

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDuplicateDate is returned when a decoded document repeats a date key.
var ErrDuplicateDate = errors.New("duplicate date in almanac")

// VoidWindow is the void-of-course interval as local "DD.MM HH:mm" strings.
type VoidWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Entry is one day of the published document.
type Entry struct {
	Phase           string           `json:"phase"`
	PhaseName       string           `json:"phase_name"`
	PhaseTime       string           `json:"phase_time"`
	Percent         int              `json:"percent"`
	Sign            string           `json:"sign"`
	Aspects         []string         `json:"aspects"`
	VoidOfCourse    VoidWindow       `json:"void_of_course"`
	NextEvent       string           `json:"next_event"`
	Advice          []string         `json:"advice"`
	LongDesc        string           `json:"long_desc"`
	FavorableDays   map[string][]int `json:"favorable_days"`
	UnfavorableDays map[string][]int `json:"unfavorable_days"`
}

// Almanac maps date strings to entries and keeps insertion order.
type Almanac struct {
	dates   []string
	entries map[string]Entry
}

// New returns an empty almanac.
func New() *Almanac {
	return &Almanac{entries: make(map[string]Entry)}
}

// Add appends an entry. Adding an existing date is an error.
func (a *Almanac) Add(date string, e Entry) error {
	if a.entries == nil {
		a.entries = make(map[string]Entry)
	}
	if _, ok := a.entries[date]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDate, date)
	}
	a.dates = append(a.dates, date)
	a.entries[date] = e
	return nil
}

// Lookup returns the entry for a "YYYY-MM-DD" date.
func (a *Almanac) Lookup(date string) (Entry, bool) {
	e, ok := a.entries[date]
	return e, ok
}

// Dates returns the keys in document order.
func (a *Almanac) Dates() []string {
	return append([]string(nil), a.dates...)
}

// Len returns the number of days.
func (a *Almanac) Len() int { return len(a.dates) }

// Encode renders the document: keys in calendar order, two-space indent,
// non-ASCII text verbatim.
func (a *Almanac) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, date := range a.dates {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")

		key, err := json.Marshal(date)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")

		var val bytes.Buffer
		enc := json.NewEncoder(&val)
		enc.SetEscapeHTML(false)
		enc.SetIndent("  ", "  ")
		if err := enc.Encode(a.entries[date]); err != nil {
			return nil, err
		}
		buf.Write(bytes.TrimRight(val.Bytes(), "\n"))
	}
	if len(a.dates) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (a *Almanac) MarshalJSON() ([]byte, error) {
	return a.Encode()
}

// UnmarshalJSON implements json.Unmarshaler and keeps the document order.
func (a *Almanac) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("almanac: expected object, got %v", tok)
	}

	out := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := tok.(string)
		if !ok {
			return fmt.Errorf("almanac: expected date key, got %v", tok)
		}
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("almanac: %s: %w", date, err)
		}
		if err := out.Add(date, e); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = *out
	return nil
}
