package main

// Snapshot types carry the fully materialized state of a board hierarchy
// branch as loaded by the store for a single request. The policy core works
// on these exclusively; it never goes back to the database, so a decision is
// always made against one consistent view of the board. Snapshots must not
// outlive the request: membership can change between any two requests and a
// stale snapshot would produce stale allow decisions.

type BoardSnapshot struct {
	ID            int64
	Accessibility string
	IsArchived    bool
	IsTemplate    bool
	Owners        []int64
	Members       []int64
	Teams         []TeamSnapshot
}

type TeamSnapshot struct {
	ID      int64
	Members []int64
}

type ListSnapshot struct {
	ID         int64
	Board      *BoardSnapshot
	IsArchived bool
}

type CardSnapshot struct {
	ID         int64
	List       *ListSnapshot
	IsArchived bool
}

// CommentSnapshot, ChecklistSnapshot and TaskSnapshot carry no policy state
// of their own; they exist so the binder can express "this request addresses
// a comment" and still resolve to the owning card.

type CommentSnapshot struct {
	ID   int64
	Card *CardSnapshot
}

type ChecklistSnapshot struct {
	ID   int64
	Card *CardSnapshot
}

type TaskSnapshot struct {
	ID   int64
	Card *CardSnapshot
}

// ResolvedEntities is what the route binder hands to the gate: zero or one of
// each board-hierarchy resource, already loaded by id. A reference that
// pointed at a non-existent id is simply left nil; the gate then sees no
// scope and the handler's own load produces the 404. The API surface never
// binds more than one card-hierarchy leaf per request.
type ResolvedEntities struct {
	Board     *BoardSnapshot
	List      *ListSnapshot
	Card      *CardSnapshot
	Comment   *CommentSnapshot
	Checklist *ChecklistSnapshot
	Task      *TaskSnapshot
}

type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeBoard
	ScopeList
	ScopeCard
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeBoard:
		return "board"
	case ScopeList:
		return "list"
	case ScopeCard:
		return "card"
	default:
		return "none"
	}
}

// ResourceScope is the most specific board-hierarchy resource a request
// targets. Produced fresh per request, never stored.
type ResourceScope struct {
	Kind  ScopeKind
	board *BoardSnapshot
	list  *ListSnapshot
	card  *CardSnapshot
}

// Board returns the root board of the scope, nil for ScopeNone.
func (s ResourceScope) Board() *BoardSnapshot {
	switch s.Kind {
	case ScopeCard:
		return s.card.List.Board
	case ScopeList:
		return s.list.Board
	case ScopeBoard:
		return s.board
	default:
		return nil
	}
}

func (s ResourceScope) List() *ListSnapshot {
	switch s.Kind {
	case ScopeCard:
		return s.card.List
	case ScopeList:
		return s.list
	default:
		return nil
	}
}

func (s ResourceScope) Card() *CardSnapshot { return s.card }

// ResolveScope walks the bound entities leaf to root and returns the most
// specific scope present. Comment/checklist/task requests resolve to their
// owning card. This function is the single hierarchy decomposition shared by
// the access gate and the event bus; both must see identical resolution for
// the same inputs.
func ResolveScope(ent ResolvedEntities) ResourceScope {
	card := ent.Card
	if card == nil && ent.Comment != nil {
		card = ent.Comment.Card
	}
	if card == nil && ent.Checklist != nil {
		card = ent.Checklist.Card
	}
	if card == nil && ent.Task != nil {
		card = ent.Task.Card
	}
	switch {
	case card != nil:
		return ResourceScope{Kind: ScopeCard, card: card}
	case ent.List != nil:
		return ResourceScope{Kind: ScopeList, list: ent.List}
	case ent.Board != nil:
		return ResourceScope{Kind: ScopeBoard, board: ent.Board}
	default:
		return ResourceScope{Kind: ScopeNone}
	}
}
