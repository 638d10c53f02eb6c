package main

import (
	"errors"
	"net/http"
)

func (a *api) handleLabelsByBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	items, err := a.store.LabelsByBoard(r.Context(), id)
	if err != nil {
		a.log.Error("labels by board", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := readJSON(w, r, &req); err != nil || len(req.Name) == 0 {
		writeError(w, 400, "invalid payload")
		return
	}
	l, err := a.store.CreateLabel(r.Context(), id, req.Name, req.Color)
	if err != nil {
		a.log.Error("create label", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, l)
	a.bus.Publish(Event{Type: "label.created", Entity: "label", BoardID: id, Payload: l})
}

func (a *api) handleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.UpdateLabel(r.Context(), id, req.Name, req.Color); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("update label", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	if err := a.store.DeleteLabel(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("delete label", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleLabelsByCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	items, err := a.store.LabelsByCard(r.Context(), id)
	if err != nil {
		a.log.Error("labels by card", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleAttachLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	lid, err := parseID(r.PathValue("lid"))
	if err != nil {
		writeError(w, 400, "bad label id")
		return
	}
	if err := a.store.AttachLabel(r.Context(), id, lid); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("attach label", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	if bid, lID, e := a.store.BoardAndListByCard(r.Context(), id); e == nil {
		a.bus.Publish(Event{Type: "card.updated", Entity: "card", BoardID: bid, ListID: &lID, Payload: map[string]any{"id": id}})
	}
}

func (a *api) handleDetachLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	lid, err := parseID(r.PathValue("lid"))
	if err != nil {
		writeError(w, 400, "bad label id")
		return
	}
	if err := a.store.DetachLabel(r.Context(), id, lid); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("detach label", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
	if bid, lID, e := a.store.BoardAndListByCard(r.Context(), id); e == nil {
		a.bus.Publish(Event{Type: "card.updated", Entity: "card", BoardID: bid, ListID: &lID, Payload: map[string]any{"id": id}})
	}
}
