package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared fixtures. One restricted board with an owner (10), a direct
// member (20) and a team member (30); everything else hangs off it.

func testBoard() *BoardSnapshot {
	return &BoardSnapshot{
		ID:            1,
		Accessibility: AccessRestricted,
		Owners:        []int64{10},
		Members:       []int64{20},
		Teams:         []TeamSnapshot{{ID: 5, Members: []int64{30}}},
	}
}

func testList(b *BoardSnapshot, archived bool) *ListSnapshot {
	return &ListSnapshot{ID: 2, Board: b, IsArchived: archived}
}

func testCard(l *ListSnapshot, archived bool) *CardSnapshot {
	return &CardSnapshot{ID: 3, List: l, IsArchived: archived}
}

func member(id int64) *Principal { return &Principal{ID: id} }

func admin() *Principal { return &Principal{ID: 99, Roles: []string{RoleAdministrator}} }

func TestResolveScopeMostSpecificWins(t *testing.T) {
	b := testBoard()
	l := testList(b, false)
	c := testCard(l, false)

	s := ResolveScope(ResolvedEntities{Board: b})
	assert.Equal(t, ScopeBoard, s.Kind)
	assert.Equal(t, b, s.Board())
	assert.Nil(t, s.List())
	assert.Nil(t, s.Card())

	s = ResolveScope(ResolvedEntities{List: l})
	assert.Equal(t, ScopeList, s.Kind)
	assert.Equal(t, b, s.Board())
	assert.Equal(t, l, s.List())

	s = ResolveScope(ResolvedEntities{Card: c})
	assert.Equal(t, ScopeCard, s.Kind)
	assert.Equal(t, b, s.Board())
	assert.Equal(t, l, s.List())
	assert.Equal(t, c, s.Card())
}

func TestResolveScopeLeafResolvesToCard(t *testing.T) {
	b := testBoard()
	l := testList(b, false)
	c := testCard(l, false)

	for name, ent := range map[string]ResolvedEntities{
		"comment":   {Comment: &CommentSnapshot{ID: 7, Card: c}},
		"checklist": {Checklist: &ChecklistSnapshot{ID: 7, Card: c}},
		"task":      {Task: &TaskSnapshot{ID: 7, Card: c}},
	} {
		s := ResolveScope(ent)
		require.Equal(t, ScopeCard, s.Kind, name)
		assert.Equal(t, c, s.Card(), name)
		assert.Equal(t, b, s.Board(), name)
	}
}

func TestResolveScopeEmpty(t *testing.T) {
	s := ResolveScope(ResolvedEntities{})
	assert.Equal(t, ScopeNone, s.Kind)
	assert.Nil(t, s.Board())
	assert.Nil(t, s.List())
	assert.Nil(t, s.Card())
}

func TestScopeKindString(t *testing.T) {
	assert.Equal(t, "none", ScopeNone.String())
	assert.Equal(t, "board", ScopeBoard.String())
	assert.Equal(t, "list", ScopeList.String())
	assert.Equal(t, "card", ScopeCard.String())
}
