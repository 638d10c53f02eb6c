package main

import (
	"errors"
	"net/http"
)

func (a *api) handleListsByBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	includeArchived := r.URL.Query().Get("archived") == "true"
	items, err := a.store.ListsByBoard(r.Context(), id, includeArchived)
	if err != nil {
		a.log.Error("lists by board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleCreateList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(w, r, &req); err != nil || len(req.Title) == 0 {
		if err != nil {
			a.log.Error("decode create list", "err", err)
		}
		writeError(w, 400, "invalid payload")
		return
	}
	l, err := a.store.CreateList(r.Context(), id, req.Title)
	if err != nil {
		a.log.Error("create list", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, l)
	a.bus.Publish(Event{Type: "list.created", Entity: "list", BoardID: l.BoardID, ListID: &l.ID, Payload: l})
}

func (a *api) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Title      *string `json:"title"`
		Color      *string `json:"color"`
		IsArchived *bool   `json:"is_archived"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.UpdateList(r.Context(), id, req.Title, req.Color, req.IsArchived); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("update list", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	if bid, e := a.store.BoardIDByList(r.Context(), id); e == nil {
		lID := id
		a.bus.Publish(Event{Type: "list.updated", Entity: "list", BoardID: bid, ListID: &lID, Payload: map[string]any{"id": id}})
	}
}

func (a *api) handleMoveList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		BoardID  int64 `json:"board_id"`
		NewIndex int   `json:"new_index"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.MoveList(r.Context(), id, req.BoardID, req.NewIndex); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("move list", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	if bid, e := a.store.BoardIDByList(r.Context(), id); e == nil {
		lID := id
		a.bus.Publish(Event{Type: "list.moved", Entity: "list", BoardID: bid, ListID: &lID, Payload: map[string]any{"id": id, "new_index": req.NewIndex}})
	}
}

func (a *api) handleCopyList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		BoardID int64 `json:"board_id"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	l, err := a.store.CopyList(r.Context(), id, req.BoardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("copy list", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, l)
	a.bus.Publish(Event{Type: "list.created", Entity: "list", BoardID: l.BoardID, ListID: &l.ID, Payload: l})
}

func (a *api) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	bid, _ := a.store.BoardIDByList(r.Context(), id)
	if err := a.store.DeleteList(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("delete list", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	if bid != 0 {
		lID := id
		a.bus.Publish(Event{Type: "list.deleted", Entity: "list", BoardID: bid, ListID: &lID, Payload: map[string]any{"id": id}})
	}
}
