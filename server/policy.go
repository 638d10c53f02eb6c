package main

// Policy core. Pure functions over request-local snapshots; rule order is
// load-bearing: each rule either settles the decision or falls through to the
// next, and reordering changes who gets in. Decisions carry a reason string
// for the audit log only, never for the client.

// RoleAdministrator is the global role that bypasses board-level gates.
const RoleAdministrator = "Administrator"

// Principal is the authenticated caller: a stable identity plus the set of
// global roles held. Built once per request by the auth layer, read-only here.
type Principal struct {
	ID    int64
	Roles []string
}

func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdministrator() bool { return p.HasRole(RoleAdministrator) }

// CapabilityClass tags which family of mutating operation is being
// authorized. A few families are deliberately editable by any board user
// instead of only owners/admins; the tag makes that exception set explicit
// and enumerable instead of re-derived per call site.
type CapabilityClass int

const (
	CapGeneric CapabilityClass = iota
	CapLabel
	CapListManagement
	CapListOrCardCopy
	CapListOrCardMove
)

func (c CapabilityClass) String() string {
	switch c {
	case CapLabel:
		return "label"
	case CapListManagement:
		return "list_management"
	case CapListOrCardCopy:
		return "copy"
	case CapListOrCardMove:
		return "move"
	default:
		return "generic"
	}
}

// boardUserEditable reports whether this capability class is open to any
// board user at board scope (the label/list/copy/move product exception).
func (c CapabilityClass) boardUserEditable() bool {
	switch c {
	case CapLabel, CapListManagement, CapListOrCardCopy, CapListOrCardMove:
		return true
	}
	return false
}

type Decision struct {
	Allow  bool
	Reason string
}

func allowed(reason string) Decision { return Decision{Allow: true, Reason: reason} }
func denied(reason string) Decision  { return Decision{Allow: false, Reason: reason} }

// IsBoardUser reports whether the user is an owner, an explicit member, or a
// member of any team assigned to the board. Recomputed on every call: boards
// mutate between requests and membership must never be read from a stale
// cache. The board must be non-nil; scope resolution guarantees that for any
// scope other than ScopeNone.
func IsBoardUser(b *BoardSnapshot, userID int64) bool {
	for _, id := range b.Owners {
		if id == userID {
			return true
		}
	}
	for _, id := range b.Members {
		if id == userID {
			return true
		}
	}
	for _, t := range b.Teams {
		for _, id := range t.Members {
			if id == userID {
				return true
			}
		}
	}
	return false
}

func isOwner(b *BoardSnapshot, userID int64) bool {
	for _, id := range b.Owners {
		if id == userID {
			return true
		}
	}
	return false
}

// CanView decides whether the principal may see the scoped resource.
// Visibility cascades downward: a resource is never more visible than its
// container, and each level adds its own archival gate.
func CanView(scope ResourceScope, p *Principal) Decision {
	switch scope.Kind {
	case ScopeBoard:
		return canViewBoard(scope.Board(), p)
	case ScopeList:
		return canViewList(scope.List(), p)
	case ScopeCard:
		return canViewCard(scope.Card(), p)
	default:
		return allowed("no scope")
	}
}

func canViewBoard(b *BoardSnapshot, p *Principal) Decision {
	switch {
	case isOwner(b, p.ID):
		return allowed("board owner")
	case p.IsAdministrator():
		return allowed("administrator")
	case b.IsArchived:
		return denied("board archived")
	case b.IsTemplate:
		return allowed("template board")
	case b.Accessibility == AccessPublic:
		return allowed("public board")
	case IsBoardUser(b, p.ID):
		return allowed("board user")
	default:
		return denied("not a board user")
	}
}

func canViewList(l *ListSnapshot, p *Principal) Decision {
	if d := canViewBoard(l.Board, p); !d.Allow {
		return denied("board not visible")
	}
	if l.IsArchived && !p.IsAdministrator() && !IsBoardUser(l.Board, p.ID) {
		return denied("list archived")
	}
	return allowed("list visible")
}

func canViewCard(c *CardSnapshot, p *Principal) Decision {
	if d := canViewList(c.List, p); !d.Allow {
		return d
	}
	if c.IsArchived && !p.IsAdministrator() && !IsBoardUser(c.List.Board, p.ID) {
		return denied("card archived")
	}
	return allowed("card visible")
}

// CanEdit decides whether the principal may mutate the scoped resource. Only
// evaluated after CanView has allowed. Board-level edits stay owner/admin
// gated apart from the enumerated capability-class exceptions; list and card
// edits are deliberately open to any board user. That asymmetry is a product
// rule, not an accident.
func CanEdit(scope ResourceScope, p *Principal, cap CapabilityClass) Decision {
	switch scope.Kind {
	case ScopeBoard:
		return canEditBoard(scope.Board(), p, cap)
	case ScopeList:
		return canEditItem(scope.Board(), scope.List().IsArchived, p)
	case ScopeCard:
		return canEditItem(scope.Board(), scope.Card().IsArchived, p)
	default:
		return allowed("no scope")
	}
}

func canEditBoard(b *BoardSnapshot, p *Principal, cap CapabilityClass) Decision {
	switch {
	case p.IsAdministrator():
		return allowed("administrator")
	case isOwner(b, p.ID):
		return allowed("board owner")
	case b.IsArchived:
		return denied("board archived")
	case b.IsTemplate:
		return denied("template board")
	case cap.boardUserEditable() && IsBoardUser(b, p.ID):
		return allowed("board user capability " + cap.String())
	default:
		return denied("not a board owner")
	}
}

func canEditItem(b *BoardSnapshot, archived bool, p *Principal) Decision {
	switch {
	case p.IsAdministrator():
		return allowed("administrator")
	case archived && !IsBoardUser(b, p.ID):
		return denied("archived")
	case b.Accessibility == AccessPublic:
		return allowed("public board")
	case isOwner(b, p.ID):
		return allowed("board owner")
	case IsBoardUser(b, p.ID):
		return allowed("board user")
	default:
		return denied("not a board user")
	}
}
