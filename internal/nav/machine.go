package nav

import (
	"fmt"

	"github.com/tinytelemetry/gatepass/internal/model"
)

// Machine ties load-time resolution and click persistence to one persisted
// preference. Events: Load, Click, Navigate. Select is Click followed by
// Navigate to the clicked link.
type Machine struct {
	store    model.KeyValueStore
	mode     SelectionMode
	entries  []Entry
	location string
	last     Resolution
}

// NewMachine creates a machine over store. entries may be replaced on every
// load via SetEntries.
func NewMachine(store model.KeyValueStore, entries []Entry, mode SelectionMode) *Machine {
	return &Machine{
		store:   store,
		mode:    mode,
		entries: append([]Entry(nil), entries...),
	}
}

// SetEntries replaces the sidebar snapshot, e.g. after the page is re-read.
func (m *Machine) SetEntries(entries []Entry) {
	m.entries = append([]Entry(nil), entries...)
}

// Entries returns the current sidebar snapshot.
func (m *Machine) Entries() []Entry { return m.entries }

// Location returns the location of the most recent load.
func (m *Machine) Location() string { return m.location }

// Last returns the most recent resolution.
func (m *Machine) Last() Resolution { return m.last }

// Preference reads the persisted preference.
func (m *Machine) Preference() (Preference, error) {
	v, ok, err := m.store.Get(model.KeyActiveMenu)
	if err != nil {
		return NoPreference, fmt.Errorf("nav: read preference: %w", err)
	}
	if !ok {
		return NoPreference, nil
	}
	return PreferenceOf(v), nil
}

// Load resolves location against the stored preference and persists the
// outcome. With no entries it does nothing.
func (m *Machine) Load(location string) (Resolution, error) {
	m.location = location
	if len(m.entries) == 0 {
		m.last = Resolution{Source: SourceNone}
		return m.last, nil
	}

	pref, err := m.Preference()
	if err != nil {
		return Resolution{}, err
	}
	res := Resolve(m.entries, location, pref, m.mode)
	m.last = res
	if err := m.persist(res.Preference); err != nil {
		return res, err
	}
	return res, nil
}

// Navigate is a load for a new location.
func (m *Machine) Navigate(location string) (Resolution, error) {
	return m.Load(location)
}

// Click persists the menu id of entry idx, or clears the preference when the
// entry has none. The active set is not recomputed.
func (m *Machine) Click(idx int) error {
	if idx < 0 || idx >= len(m.entries) {
		return fmt.Errorf("nav: entry %d out of range (%d entries)", idx, len(m.entries))
	}
	return m.persist(PreferenceOf(m.entries[idx].MenuID))
}

// Select clicks entry idx and navigates to its link.
func (m *Machine) Select(idx int) (Resolution, error) {
	if err := m.Click(idx); err != nil {
		return Resolution{}, err
	}
	return m.Navigate(Normalize(m.entries[idx].LinkPath))
}

func (m *Machine) persist(p Preference) error {
	var err error
	if p.Present {
		err = m.store.Set(model.KeyActiveMenu, p.MenuID)
	} else {
		err = m.store.Remove(model.KeyActiveMenu)
	}
	if err != nil {
		return fmt.Errorf("nav: persist preference: %w", err)
	}
	return nil
}
