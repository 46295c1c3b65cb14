// Package page loads the dashboard's page snapshot: the sidebar, the search
// input, the user list and the no-results element. A section left out of
// the document is an absent element.
package page

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/gatepass/internal/nav"
)

//go:embed default_page.yml
var defaultPage []byte

// SidebarItem is one `<li data-menu><a href>` pair.
type SidebarItem struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
	Menu  string `yaml:"menu"`
}

// Search is the search input element.
type Search struct {
	Placeholder string `yaml:"placeholder"`
}

// User is one row of the user list.
type User struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
	Plate string `yaml:"plate"`
}

// InfoText is the text the search filter matches against.
func (u User) InfoText() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Name, u.Email, u.Role, u.Plate} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// NoResults is the "no results" banner element.
type NoResults struct {
	Text string `yaml:"text"`
}

// Snapshot is one read of the page markup.
type Snapshot struct {
	Title     string        `yaml:"title"`
	Subtitle  string        `yaml:"subtitle"`
	Sidebar   []SidebarItem `yaml:"sidebar"`
	Search    *Search       `yaml:"search"`
	Users     *[]User       `yaml:"users"`
	NoResults *NoResults    `yaml:"no_results"`
}

// Parse decodes a snapshot from YAML.
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return &s, nil
}

// Load reads the page file at path, or the embedded default page when path
// is empty.
func Load(path string) (*Snapshot, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("page: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded page.
func Default() (*Snapshot, error) {
	return Parse(defaultPage)
}

// Entries returns the sidebar as navigation entries in document order.
func (s *Snapshot) Entries() []nav.Entry {
	entries := make([]nav.Entry, 0, len(s.Sidebar))
	for _, item := range s.Sidebar {
		entries = append(entries, nav.Entry{
			LinkPath: item.Href,
			MenuID:   item.Menu,
			Label:    item.Label,
		})
	}
	return entries
}

// HasUserList reports whether the user list element is present.
func (s *Snapshot) HasUserList() bool { return s.Users != nil }

// UserRows returns the users in document order, or nil when the list is
// absent.
func (s *Snapshot) UserRows() []User {
	if s.Users == nil {
		return nil
	}
	return *s.Users
}

// InfoTexts returns each user's filterable text in document order.
func (s *Snapshot) InfoTexts() []string {
	users := s.UserRows()
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.InfoText()
	}
	return out
}

// MissingFilterElements names the elements the live filter needs but the
// page lacks.
func (s *Snapshot) MissingFilterElements() []string {
	var missing []string
	if s.Search == nil {
		missing = append(missing, "search input")
	}
	if s.Users == nil {
		missing = append(missing, "user list")
	}
	if s.NoResults == nil {
		missing = append(missing, "no-results element")
	}
	return missing
}
