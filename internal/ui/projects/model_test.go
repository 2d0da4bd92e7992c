package projects

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage/internal/keys"
	"github.com/promanage/promanage/tests/testutil"
)

func keyMsg(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDeleteClampsCursorAfterVisibleListShrinks(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "admin")
	m := New(s, keys.DefaultKeyMap(), 80, 24)

	// Wrap the cursor up onto the last of the six visible projects.
	m, _ = m.Update(keyMsg('k'))
	assert.Equal(t, 5, m.selectedIdx)

	// Switching to a lead shrinks the visible list to four projects.
	s.Logout()
	_, ok := s.Login("lead1")
	require.True(t, ok)

	m, _ = m.Update(keyMsg('d'))

	assert.Equal(t, modeConfirmDelete, m.mode)
	assert.Equal(t, "p-atlas", m.deletingID)
	assert.Len(t, s.Projects(), 6)
}

func TestCursorWrapsWithinVisibleList(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")
	m := New(s, keys.DefaultKeyMap(), 80, 24)

	// lead1 sees four projects; down four times wraps back to the top.
	for i := 0; i < 4; i++ {
		m, _ = m.Update(keyMsg('j'))
	}
	assert.Equal(t, 0, m.selectedIdx)
}
