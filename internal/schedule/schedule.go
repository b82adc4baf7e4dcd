// Package schedule holds the per-master weekly working schedule. The catalog
// is configuration, not data: it is parsed and validated once at startup and
// shared read-only afterwards.
package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Weekday indexes follow the shop convention: 0 = Monday .. 6 = Sunday.

type Master struct {
	Name     string
	Weekdays map[int]bool
	Start    string // "HH:MM"
	End      string // "HH:MM"
}

// WorksOn reports whether the master takes clients on the given weekday index.
func (m Master) WorksOn(weekday int) bool {
	return m.Weekdays[weekday]
}

type Registry struct {
	masters map[string]Master
	names   []string
}

type masterJSON struct {
	Days  []int  `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// defaultCatalog mirrors the shop's current staffing.
const defaultCatalog = `{
	"Ivan":    {"days": [0, 1, 5, 6], "start": "12:00", "end": "21:00"},
	"Gleb":    {"days": [0, 2, 4, 5], "start": "12:00", "end": "21:00"},
	"Ruslan":  {"days": [1, 3, 5],    "start": "15:00", "end": "21:00"},
	"Pavel":   {"days": [4, 5, 6],    "start": "12:00", "end": "21:00"},
	"Ibragim": {"days": [1, 3, 5, 6], "start": "12:00", "end": "20:00"}
}`

// Load parses and validates a master catalog. An empty raw string loads the
// built-in default catalog.
func Load(raw string) (*Registry, error) {
	if raw == "" {
		raw = defaultCatalog
	}

	var parsed map[string]masterJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("schedule: invalid catalog JSON: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("schedule: catalog is empty")
	}

	masters := make(map[string]Master, len(parsed))
	names := make([]string, 0, len(parsed))

	for name, mj := range parsed {
		m, err := buildMaster(name, mj)
		if err != nil {
			return nil, err
		}
		masters[name] = m
		names = append(names, name)
	}

	// JSON object order is not preserved; keep listings deterministic.
	sort.Strings(names)

	return &Registry{masters: masters, names: names}, nil
}

func buildMaster(name string, mj masterJSON) (Master, error) {
	if len(mj.Days) == 0 {
		return Master{}, fmt.Errorf("schedule: master %q has no working days", name)
	}

	days := make(map[int]bool, len(mj.Days))
	for _, d := range mj.Days {
		if d < 0 || d > 6 {
			return Master{}, fmt.Errorf("schedule: master %q has invalid weekday %d", name, d)
		}
		days[d] = true
	}

	start, err := time.Parse("15:04", mj.Start)
	if err != nil {
		return Master{}, fmt.Errorf("schedule: master %q has invalid start time %q", name, mj.Start)
	}
	end, err := time.Parse("15:04", mj.End)
	if err != nil {
		return Master{}, fmt.Errorf("schedule: master %q has invalid end time %q", name, mj.End)
	}
	if !start.Before(end) {
		return Master{}, fmt.Errorf("schedule: master %q has start %q not before end %q", name, mj.Start, mj.End)
	}

	return Master{
		Name:     name,
		Weekdays: days,
		Start:    mj.Start,
		End:      mj.End,
	}, nil
}

// Get looks up a master by name.
func (r *Registry) Get(name string) (Master, bool) {
	m, ok := r.masters[name]
	return m, ok
}

// Names returns all master names in stable (sorted) order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// WeekdayIndex converts a calendar date to the shop weekday convention
// (0 = Monday .. 6 = Sunday).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
