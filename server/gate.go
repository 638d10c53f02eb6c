package main

import (
	"context"
	"errors"
	"net/http"
)

// Access gate. One evaluation per request, before the protected handler
// runs: bind the addressed resources, resolve the scope, require a
// principal, apply the view policy and, for mutating verbs, the edit policy.
// Requests outside the board hierarchy (no scope) pass through untouched.

type gateOutcome int

const (
	gateProceed gateOutcome = iota
	gateUnauthorized
	gateForbidden
)

type gateResult struct {
	outcome gateOutcome
	reason  string
	scope   ResourceScope
}

// evaluateGate is the gate's decision core, pure over already-loaded
// entities. p may be nil (unauthenticated); that is only acceptable when the
// entities resolve to no scope.
func evaluateGate(ent ResolvedEntities, p *Principal, mutating bool, cap CapabilityClass) gateResult {
	scope := ResolveScope(ent)
	if scope.Kind == ScopeNone {
		return gateResult{outcome: gateProceed, reason: "no scope", scope: scope}
	}
	if p == nil {
		return gateResult{outcome: gateUnauthorized, reason: "no principal", scope: scope}
	}
	if d := CanView(scope, p); !d.Allow {
		return gateResult{outcome: gateForbidden, reason: "view: " + d.Reason, scope: scope}
	}
	if mutating {
		if d := CanEdit(scope, p, cap); !d.Allow {
			return gateResult{outcome: gateForbidden, reason: "edit: " + d.Reason, scope: scope}
		}
	}
	return gateResult{outcome: gateProceed, reason: "allowed", scope: scope}
}

// mutatingVerb reports whether the request can change state. Anything other
// than a pure fetch counts as mutating for policy purposes.
func mutatingVerb(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// A binder loads the entities a route addresses from its path values. A
// reference to a non-existent id leaves the entity nil so the gate sees no
// scope; the handler's own load then produces the 404. Any other store error
// is a genuine fault and propagates.
type binder func(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error)

func bindNothing(context.Context, *Store, *http.Request) (ResolvedEntities, error) {
	return ResolvedEntities{}, nil
}

func bindBoard(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	b, err := s.BoardSnapshot(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	return ResolvedEntities{Board: b}, err
}

func bindList(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	l, err := s.ListSnapshot(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	return ResolvedEntities{List: l}, err
}

func bindCard(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	c, err := s.CardSnapshot(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	return ResolvedEntities{Card: c}, err
}

func bindComment(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	card, err := s.CardSnapshotByComment(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	if err != nil {
		return ResolvedEntities{}, err
	}
	return ResolvedEntities{Comment: &CommentSnapshot{ID: id, Card: card}}, nil
}

func bindChecklist(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	card, err := s.CardSnapshotByChecklist(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	if err != nil {
		return ResolvedEntities{}, err
	}
	return ResolvedEntities{Checklist: &ChecklistSnapshot{ID: id, Card: card}}, nil
}

func bindTask(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	card, err := s.CardSnapshotByTask(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	if err != nil {
		return ResolvedEntities{}, err
	}
	return ResolvedEntities{Task: &TaskSnapshot{ID: id, Card: card}}, nil
}

// bindLabel resolves a label route to its owning board; labels are
// board-scoped resources.
func bindLabel(ctx context.Context, s *Store, r *http.Request) (ResolvedEntities, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return ResolvedEntities{}, nil
	}
	b, err := s.BoardSnapshotByLabel(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ResolvedEntities{}, nil
	}
	return ResolvedEntities{Board: b}, err
}

// guard wraps a handler with the access gate for one route. The capability
// class is fixed at registration time; it is routing metadata, not something
// derived from the request.
func (a *api) guard(cap CapabilityClass, bind binder, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ent, err := bind(r.Context(), a.store, r)
		if err != nil {
			a.log.Error("gate bind", "err", err, "path", r.URL.Path)
			writeError(w, 500, "internal error")
			return
		}
		p, err := a.currentPrincipal(r)
		if err != nil && !errors.Is(err, ErrNotFound) {
			a.log.Error("gate principal", "err", err)
			writeError(w, 500, "internal error")
			return
		}
		res := evaluateGate(ent, p, mutatingVerb(r.Method), cap)
		switch res.outcome {
		case gateUnauthorized:
			writeError(w, 401, "unauthorized")
			return
		case gateForbidden:
			a.log.Info("access denied", "reason", res.reason,
				"scope", res.scope.Kind.String(), "method", r.Method, "path", r.URL.Path)
			writeError(w, 403, "forbidden")
			return
		}
		next(w, r)
	}
}
