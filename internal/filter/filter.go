// Package filter implements the live, keystroke-driven user list search.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Row is one filterable list row.
type Row struct {
	InfoText string
	Visible  bool
}

// Result is the outcome of one filter pass.
type Result struct {
	Visible    []bool
	MatchFound bool
	NoResults  bool
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Apply computes row visibility for rawQuery. A non-empty query shows exactly
// the rows whose info text contains it, case-insensitively. An empty query
// leaves every row's visibility as it was and still reports NoResults.
func Apply(rawQuery string, rows []Row) Result {
	q := lower(rawQuery)
	res := Result{Visible: make([]bool, len(rows))}

	for i, row := range rows {
		res.Visible[i] = row.Visible
		if q == "" {
			continue
		}
		if strings.Contains(lower(row.InfoText), q) {
			res.Visible[i] = true
			res.MatchFound = true
		} else {
			res.Visible[i] = false
		}
	}

	res.NoResults = !res.MatchFound
	return res
}

// List holds rows across keystrokes so each pass starts from the previous
// visibility.
type List struct {
	rows []Row
	last Result
}

// NewList creates a list with every row visible.
func NewList(infoTexts []string) *List {
	rows := make([]Row, len(infoTexts))
	for i, text := range infoTexts {
		rows[i] = Row{InfoText: text, Visible: true}
	}
	return &List{rows: rows}
}

// OnKeystroke runs one pass for the current input value and applies it.
func (l *List) OnKeystroke(rawQuery string) Result {
	res := Apply(rawQuery, l.rows)
	for i := range l.rows {
		l.rows[i].Visible = res.Visible[i]
	}
	l.last = res
	return res
}

// Rows returns the rows with their current visibility.
func (l *List) Rows() []Row { return l.rows }

// Last returns the most recent pass. Before any keystroke it is the zero
// Result, which leaves the no-results indicator hidden.
func (l *List) Last() Result { return l.last }

// Len returns the number of rows.
func (l *List) Len() int { return len(l.rows) }

// VisibleCount returns how many rows are currently shown.
func (l *List) VisibleCount() int {
	n := 0
	for _, r := range l.rows {
		if r.Visible {
			n++
		}
	}
	return n
}
