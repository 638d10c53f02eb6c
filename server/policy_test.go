package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardScope(b *BoardSnapshot) ResourceScope {
	return ResolveScope(ResolvedEntities{Board: b})
}

func listScope(l *ListSnapshot) ResourceScope {
	return ResolveScope(ResolvedEntities{List: l})
}

func cardScope(c *CardSnapshot) ResourceScope {
	return ResolveScope(ResolvedEntities{Card: c})
}

func TestIsBoardUser(t *testing.T) {
	b := testBoard()
	assert.True(t, IsBoardUser(b, 10), "owner")
	assert.True(t, IsBoardUser(b, 20), "direct member")
	assert.True(t, IsBoardUser(b, 30), "team member")
	assert.False(t, IsBoardUser(b, 40), "stranger")
}

func TestCanViewBoard(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*BoardSnapshot)
		p     *Principal
		allow bool
	}{
		{"owner sees own board", nil, member(10), true},
		{"member sees restricted board", nil, member(20), true},
		{"team member sees restricted board", nil, member(30), true},
		{"stranger denied restricted board", nil, member(40), false},
		{"stranger sees public board", func(b *BoardSnapshot) { b.Accessibility = AccessPublic }, member(40), true},
		{"stranger sees template board", func(b *BoardSnapshot) { b.IsTemplate = true }, member(40), true},
		{"member denied archived board", func(b *BoardSnapshot) { b.IsArchived = true }, member(20), false},
		{"owner sees archived board", func(b *BoardSnapshot) { b.IsArchived = true }, member(10), true},
		{"admin sees archived board", func(b *BoardSnapshot) { b.IsArchived = true }, admin(), true},
		{"archived wins over public", func(b *BoardSnapshot) {
			b.IsArchived = true
			b.Accessibility = AccessPublic
		}, member(40), false},
		{"archived wins over template", func(b *BoardSnapshot) {
			b.IsArchived = true
			b.IsTemplate = true
		}, member(40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBoard()
			if tt.mut != nil {
				tt.mut(b)
			}
			d := CanView(boardScope(b), tt.p)
			assert.Equal(t, tt.allow, d.Allow, d.Reason)
		})
	}
}

func TestCanViewList(t *testing.T) {
	t.Run("invisible board hides list", func(t *testing.T) {
		b := testBoard()
		d := CanView(listScope(testList(b, false)), member(40))
		require.False(t, d.Allow)
		assert.Equal(t, "board not visible", d.Reason)
	})
	t.Run("archived list hidden from non-members", func(t *testing.T) {
		b := testBoard()
		b.Accessibility = AccessPublic
		l := testList(b, true)
		assert.False(t, CanView(listScope(l), member(40)).Allow)
		assert.True(t, CanView(listScope(l), member(20)).Allow)
		assert.True(t, CanView(listScope(l), admin()).Allow)
	})
	t.Run("live list follows board", func(t *testing.T) {
		b := testBoard()
		l := testList(b, false)
		assert.True(t, CanView(listScope(l), member(20)).Allow)
		assert.False(t, CanView(listScope(l), member(40)).Allow)
	})
}

func TestCanViewCard(t *testing.T) {
	t.Run("archived card hidden from non-members", func(t *testing.T) {
		b := testBoard()
		b.Accessibility = AccessPublic
		c := testCard(testList(b, false), true)
		assert.False(t, CanView(cardScope(c), member(40)).Allow)
		assert.True(t, CanView(cardScope(c), member(20)).Allow)
		assert.True(t, CanView(cardScope(c), admin()).Allow)
	})
	t.Run("archived list hides live card", func(t *testing.T) {
		b := testBoard()
		b.Accessibility = AccessPublic
		c := testCard(testList(b, true), false)
		assert.False(t, CanView(cardScope(c), member(40)).Allow)
		assert.True(t, CanView(cardScope(c), member(20)).Allow)
	})
	t.Run("visibility never exceeds the container", func(t *testing.T) {
		b := testBoard()
		b.IsArchived = true
		c := testCard(testList(b, false), false)
		assert.False(t, CanView(cardScope(c), member(20)).Allow)
		assert.True(t, CanView(cardScope(c), member(10)).Allow)
	})
}

func TestCanEditBoard(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*BoardSnapshot)
		p     *Principal
		cap   CapabilityClass
		allow bool
	}{
		{"admin edits anything", func(b *BoardSnapshot) { b.IsArchived = true }, admin(), CapGeneric, true},
		{"owner edits board", nil, member(10), CapGeneric, true},
		{"owner edits archived board", func(b *BoardSnapshot) { b.IsArchived = true }, member(10), CapGeneric, true},
		{"owner edits template board", func(b *BoardSnapshot) { b.IsTemplate = true }, member(10), CapGeneric, true},
		{"member denied generic board edit", nil, member(20), CapGeneric, false},
		{"member creates label", nil, member(20), CapLabel, true},
		{"member manages lists", nil, member(20), CapListManagement, true},
		{"team member copies", nil, member(30), CapListOrCardCopy, true},
		{"member moves", nil, member(20), CapListOrCardMove, true},
		{"archived board blocks member capability", func(b *BoardSnapshot) { b.IsArchived = true }, member(20), CapLabel, false},
		{"template board blocks member capability", func(b *BoardSnapshot) { b.IsTemplate = true }, member(20), CapListManagement, false},
		{"stranger denied capability on public board", func(b *BoardSnapshot) { b.Accessibility = AccessPublic }, member(40), CapLabel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBoard()
			if tt.mut != nil {
				tt.mut(b)
			}
			d := CanEdit(boardScope(b), tt.p, tt.cap)
			assert.Equal(t, tt.allow, d.Allow, d.Reason)
		})
	}
}

func TestCanEditCard(t *testing.T) {
	t.Run("any board user edits live card", func(t *testing.T) {
		b := testBoard()
		c := testCard(testList(b, false), false)
		assert.True(t, CanEdit(cardScope(c), member(20), CapGeneric).Allow)
		assert.True(t, CanEdit(cardScope(c), member(30), CapGeneric).Allow)
	})
	t.Run("anyone edits cards on public board", func(t *testing.T) {
		b := testBoard()
		b.Accessibility = AccessPublic
		c := testCard(testList(b, false), false)
		assert.True(t, CanEdit(cardScope(c), member(40), CapGeneric).Allow)
	})
	t.Run("archived card editable only by board users", func(t *testing.T) {
		b := testBoard()
		b.Accessibility = AccessPublic
		c := testCard(testList(b, false), true)
		assert.False(t, CanEdit(cardScope(c), member(40), CapGeneric).Allow)
		assert.True(t, CanEdit(cardScope(c), member(20), CapGeneric).Allow)
		assert.True(t, CanEdit(cardScope(c), admin(), CapGeneric).Allow)
	})
	t.Run("stranger denied on restricted board", func(t *testing.T) {
		b := testBoard()
		c := testCard(testList(b, false), false)
		assert.False(t, CanEdit(cardScope(c), member(40), CapGeneric).Allow)
	})
}

func TestCanEditList(t *testing.T) {
	b := testBoard()
	assert.True(t, CanEdit(listScope(testList(b, false)), member(20), CapGeneric).Allow)
	assert.False(t, CanEdit(listScope(testList(b, true)), member(40), CapGeneric).Allow)
	assert.True(t, CanEdit(listScope(testList(b, true)), member(20), CapGeneric).Allow)
}

// End-to-end walkthroughs combining view and edit on one hierarchy.

func TestScenarioMemberOnRestrictedBoard(t *testing.T) {
	b := testBoard()
	c := testCard(testList(b, false), false)
	p := member(20)

	require.True(t, CanView(cardScope(c), p).Allow)
	assert.True(t, CanEdit(cardScope(c), p, CapGeneric).Allow)
	assert.False(t, CanEdit(boardScope(b), p, CapGeneric).Allow)
	assert.True(t, CanEdit(boardScope(b), p, CapListManagement).Allow)
}

func TestScenarioStrangerOnPublicBoard(t *testing.T) {
	b := testBoard()
	b.Accessibility = AccessPublic
	c := testCard(testList(b, false), false)
	p := member(40)

	require.True(t, CanView(cardScope(c), p).Allow)
	assert.True(t, CanEdit(cardScope(c), p, CapGeneric).Allow)
	assert.False(t, CanEdit(boardScope(b), p, CapGeneric).Allow)
	assert.False(t, CanEdit(boardScope(b), p, CapLabel).Allow)
}

func TestScenarioArchivedBoardLocksEverything(t *testing.T) {
	b := testBoard()
	b.IsArchived = true
	c := testCard(testList(b, false), false)

	assert.False(t, CanView(cardScope(c), member(20)).Allow)
	assert.True(t, CanView(cardScope(c), member(10)).Allow)
	assert.True(t, CanEdit(boardScope(b), member(10), CapGeneric).Allow)
	assert.False(t, CanEdit(boardScope(b), member(20), CapLabel).Allow)
}

func TestScenarioAdministratorBypass(t *testing.T) {
	b := testBoard()
	b.IsArchived = true
	c := testCard(testList(b, true), true)
	p := admin()

	assert.True(t, CanView(cardScope(c), p).Allow)
	assert.True(t, CanEdit(cardScope(c), p, CapGeneric).Allow)
	assert.True(t, CanEdit(boardScope(b), p, CapGeneric).Allow)
}
