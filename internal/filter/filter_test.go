package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_TypingSequence(t *testing.T) {
	l := NewList([]string{"Alice Smith", "Bob Jones"})

	res := l.OnKeystroke("smi")
	assert.Equal(t, []bool{true, false}, res.Visible)
	assert.True(t, res.MatchFound)
	assert.False(t, res.NoResults)

	res = l.OnKeystroke("zzz")
	assert.Equal(t, []bool{false, false}, res.Visible)
	assert.False(t, res.MatchFound)
	assert.True(t, res.NoResults)

	// Clearing the query does not restore rows, and the banner stays up.
	res = l.OnKeystroke("")
	assert.Equal(t, []bool{false, false}, res.Visible)
	assert.True(t, res.NoResults)
	assert.Equal(t, 0, l.VisibleCount())
}

func TestApply_EmptyQueryKeepsPriorVisibility(t *testing.T) {
	rows := []Row{
		{InfoText: "Alice Smith", Visible: true},
		{InfoText: "Bob Jones", Visible: false},
	}

	res := Apply("", rows)
	assert.Equal(t, []bool{true, false}, res.Visible)
	assert.False(t, res.MatchFound)
	assert.True(t, res.NoResults, "banner shows even though a row is visible")
}

func TestApply_CaseInsensitive(t *testing.T) {
	rows := []Row{{InfoText: "ALICE smith"}, {InfoText: "Ömer Çelik"}}

	res := Apply("Alice S", rows)
	assert.Equal(t, []bool{true, false}, res.Visible)

	res = Apply("öMER", rows)
	assert.Equal(t, []bool{false, true}, res.Visible)
}

func TestApply_NoRows(t *testing.T) {
	res := Apply("x", nil)
	assert.Empty(t, res.Visible)
	assert.True(t, res.NoResults)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rows := []Row{{InfoText: "Alice", Visible: true}}
	Apply("bob", rows)
	assert.True(t, rows[0].Visible)
}

func TestList_LastBeforeKeystroke(t *testing.T) {
	l := NewList([]string{"a"})
	assert.False(t, l.Last().NoResults)
	assert.Equal(t, 1, l.VisibleCount())
	assert.Equal(t, 1, l.Len())
}
