package main

import (
	"errors"
	"net/http"
	"strings"
)

func (a *api) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	items, err := a.store.ListUsers(r.Context())
	if err != nil {
		a.log.Error("admin list users", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleAdminSetActive(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.SetUserActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("admin set active", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleAdminSetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	me, errU := a.currentUser(r)
	if errU != nil {
		writeError(w, 401, "unauthorized")
		return
	}
	var req struct {
		Admin bool `json:"admin"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if id == me.ID && !req.Admin {
		writeError(w, 409, "cannot demote yourself")
		return
	}
	if err := a.store.SetUserAdmin(r.Context(), id, req.Admin); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("admin set admin", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleAdminListTeams(w http.ResponseWriter, r *http.Request) {
	items, err := a.store.ListTeams(r.Context())
	if err != nil {
		a.log.Error("admin list teams", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleAdminCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil || len(strings.TrimSpace(req.Name)) == 0 {
		writeError(w, 400, "invalid payload")
		return
	}
	t, err := a.store.CreateTeamBare(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		a.log.Error("admin create team", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, t)
}

func (a *api) handleAdminDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	if err := a.store.DeleteTeam(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("admin delete team", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleAdminTeamUsers(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	items, err := a.store.TeamUsers(r.Context(), id)
	if err != nil {
		a.log.Error("admin team users", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleAdminTeamAddUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		UserID int64 `json:"user_id"`
	}
	if err := readJSON(w, r, &req); err != nil || req.UserID == 0 {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.store.AddUserToTeam(r.Context(), id, req.UserID); err != nil {
		a.log.Error("admin team add user", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleAdminTeamRemoveUser(w http.ResponseWriter, r *http.Request) {
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
	if err := a.store.RemoveUserFromTeam(r.Context(), id, uid); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("admin team remove user", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}
