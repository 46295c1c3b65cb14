package nav

import "fmt"

// Entry is one sidebar item in document order. An empty MenuID means the item
// carries no menu id.
type Entry struct {
	LinkPath string
	MenuID   string
	Label    string
}

// Preference is the optional persisted active-menu id.
type Preference struct {
	MenuID  string
	Present bool
}

// NoPreference is the "no preference yet" state.
var NoPreference = Preference{}

// PreferenceOf returns a present preference for id, or NoPreference when id is
// empty.
func PreferenceOf(id string) Preference {
	if id == "" {
		return NoPreference
	}
	return Preference{MenuID: id, Present: true}
}

func (p Preference) String() string {
	if !p.Present {
		return "<none>"
	}
	return p.MenuID
}

// SelectionMode controls how many entries may become active when several
// links normalize to the current location.
type SelectionMode int

const (
	// SelectionAll activates every entry whose link matches.
	SelectionAll SelectionMode = iota
	// SelectionFirst activates only the first matching entry.
	SelectionFirst
)

// ParseSelectionMode maps the config value ("all" or "first").
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch s {
	case "", "all":
		return SelectionAll, nil
	case "first":
		return SelectionFirst, nil
	}
	return SelectionAll, fmt.Errorf("nav: unknown selection mode %q", s)
}

// Source records which rule produced a Resolution.
type Source int

const (
	SourceNone Source = iota
	SourcePath
	SourcePreference
	SourceFirst
)

func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourcePreference:
		return "preference"
	case SourceFirst:
		return "first"
	}
	return "none"
}

// Resolution is the desired visual and persisted state after a load.
type Resolution struct {
	Active     []int // indices into the entry slice, ascending
	Preference Preference
	Source     Source
}

// IsActive reports whether entry i is in the active set.
func (r Resolution) IsActive(i int) bool {
	for _, idx := range r.Active {
		if idx == i {
			return true
		}
	}
	return false
}

// Flags expands the active set into one flag per entry. Every flag is
// recomputed, so applying the result twice is the same as applying it once.
func (r Resolution) Flags(n int) []bool {
	flags := make([]bool, n)
	for _, idx := range r.Active {
		if idx >= 0 && idx < n {
			flags[idx] = true
		}
	}
	return flags
}

// Resolve picks the active entries for location. Entries whose normalized
// link equals the normalized location win; otherwise the stored preference is
// used if it names an existing entry, and the first entry otherwise.
// With no entries the result is empty and pref is returned unchanged.
func Resolve(entries []Entry, location string, pref Preference, mode SelectionMode) Resolution {
	if len(entries) == 0 {
		return Resolution{Preference: pref, Source: SourceNone}
	}

	current := Normalize(location)
	var res Resolution
	for i, e := range entries {
		if Normalize(e.LinkPath) != current {
			continue
		}
		res.Active = append(res.Active, i)
		res.Preference = PreferenceOf(e.MenuID)
		res.Source = SourcePath
		if mode == SelectionFirst {
			break
		}
	}
	if res.Source == SourcePath {
		return res
	}

	idx, src := 0, SourceFirst
	if pref.Present {
		for i, e := range entries {
			if e.MenuID == pref.MenuID {
				idx, src = i, SourcePreference
				break
			}
		}
	}
	return Resolution{
		Active:     []int{idx},
		Preference: PreferenceOf(entries[idx].MenuID),
		Source:     src,
	}
}
