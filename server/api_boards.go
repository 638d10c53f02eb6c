package main

import (
	"errors"
	"net/http"
	"strings"
)

func (a *api) handleListBoards(w http.ResponseWriter, r *http.Request) {
	u, errU := a.currentUser(r)
	if errU != nil {
		writeError(w, 401, "unauthorized")
		return
	}
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "mine"
	}
	items, err := a.store.ListBoards(r.Context(), u.ID, scope)
	if err != nil {
		a.log.Error("list boards", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	u, errU := a.currentUser(r)
	if errU != nil {
		writeError(w, 401, "unauthorized")
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(w, r, &req); err != nil || len(strings.TrimSpace(req.Title)) == 0 {
		if err != nil {
			a.log.Error("decode create board", "err", err)
		}
		writeError(w, 400, "invalid payload")
		return
	}
	b, err := a.store.CreateBoard(r.Context(), u.ID, strings.TrimSpace(req.Title))
	if err != nil {
		a.log.Error("create board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, b)
}

func (a *api) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	b, err := a.store.GetBoard(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("get board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, b)
}

func (a *api) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Title         *string `json:"title"`
		Color         *string `json:"color"`
		Accessibility *string `json:"accessibility"`
		IsArchived    *bool   `json:"is_archived"`
		IsTemplate    *bool   `json:"is_template"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, 400, "title cannot be empty")
			return
		}
		req.Title = &title
	}
	if req.Accessibility != nil && *req.Accessibility != AccessPublic && *req.Accessibility != AccessRestricted {
		writeError(w, 400, "bad accessibility")
		return
	}
	if err := a.store.UpdateBoard(r.Context(), id, req.Title, req.Color, req.Accessibility, req.IsArchived, req.IsTemplate); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("update board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	a.bus.Publish(Event{Type: "board.updated", Entity: "board", BoardID: id, Payload: map[string]any{"id": id}})
}

func (a *api) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	if err := a.store.DeleteBoard(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("delete board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleMoveBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		NewIndex int `json:"new_index"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.MoveBoard(r.Context(), id, req.NewIndex); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("move board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	a.bus.Publish(Event{Type: "board.moved", Entity: "board", BoardID: id, Payload: map[string]any{"id": id, "new_index": req.NewIndex}})
}

func (a *api) handleGetBoardFull(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	board, err := a.store.GetBoard(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("get board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	includeArchived := r.URL.Query().Get("archived") == "true"
	lists, err := a.store.ListsByBoard(r.Context(), id, includeArchived)
	if err != nil {
		a.log.Error("lists by board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	out := map[string]any{"board": board, "lists": lists, "cards": map[int64][]Card{}}
	cardsMap := out["cards"].(map[int64][]Card)
	for _, l := range lists {
		cards, err := a.store.CardsByList(r.Context(), l.ID, includeArchived)
		if err != nil {
			a.log.Error("cards by list", "err", err)
			writeError(w, 500, "internal error")
			return
		}
		cardsMap[l.ID] = cards
	}
	writeJSON(w, 200, out)
}

// --- Membership ---

func (a *api) handleBoardUsers(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	items, err := a.store.BoardUsers(r.Context(), id)
	if err != nil {
		a.log.Error("board users", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleAddBoardUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		UserID int64 `json:"user_id"`
		Owner  bool  `json:"owner"`
	}
	if err := readJSON(w, r, &req); err != nil || req.UserID == 0 {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.AddBoardUser(r.Context(), id, req.UserID, req.Owner); err != nil {
		a.log.Error("add board user", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	a.bus.Publish(Event{Type: "board.members", Entity: "board", BoardID: id, Payload: map[string]any{"id": id}})
}

func (a *api) handleRemoveBoardUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	uid, err := parseID(r.PathValue("uid"))
	if err != nil {
		writeError(w, 400, "bad user id")
		return
	}
	owner := r.URL.Query().Get("owner") == "true"
	if owner {
		// a board must always keep at least one owner
		n, err := a.store.OwnerCount(r.Context(), id)
		if err != nil {
			a.log.Error("owner count", "err", err)
			writeError(w, 500, "internal error")
			return
		}
		if n <= 1 {
			writeError(w, 409, "cannot remove last owner")
			return
		}
	}
	if err := a.store.RemoveBoardUser(r.Context(), id, uid, owner); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("remove board user", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	a.bus.Publish(Event{Type: "board.members", Entity: "board", BoardID: id, Payload: map[string]any{"id": id}})
}

func (a *api) handleBoardTeams(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	items, err := a.store.BoardTeams(r.Context(), id)
	if err != nil {
		a.log.Error("board teams", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleBoardTeamAdd(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		TeamID int64 `json:"team_id"`
	}
	if err := readJSON(w, r, &req); err != nil || req.TeamID == 0 {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.AttachTeam(r.Context(), id, req.TeamID); err != nil {
		a.log.Error("attach team", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	a.bus.Publish(Event{Type: "board.members", Entity: "board", BoardID: id, Payload: map[string]any{"id": id}})
}

func (a *api) handleBoardTeamRemove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	tid, err := parseID(r.PathValue("tid"))
	if err != nil {
		writeError(w, 400, "bad team id")
		return
	}
	if err := a.store.DetachTeam(r.Context(), id, tid); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("detach team", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	a.bus.Publish(Event{Type: "board.members", Entity: "board", BoardID: id, Payload: map[string]any{"id": id}})
}

func (a *api) handleBoardEvents(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	a.bus.ServeSSE(w, r, id)
}
