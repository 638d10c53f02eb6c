package main

import (
	"errors"
	"net/http"
	"strings"
)

func (a *api) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	me, errU := a.currentUser(r)
	if errU != nil {
		writeError(w, 401, "unauthorized")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil || len(strings.TrimSpace(req.Name)) == 0 {
		writeError(w, 400, "invalid payload")
		return
	}
	t, err := a.store.CreateTeam(r.Context(), strings.TrimSpace(req.Name), me.ID)
	if err != nil {
		a.log.Error("create team", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, t)
}

func (a *api) handleMyTeams(w http.ResponseWriter, r *http.Request) {
	me, errU := a.currentUser(r)
	if errU != nil {
		writeError(w, 401, "unauthorized")
		return
	}
	items, err := a.store.MyTeams(r.Context(), me.ID)
	if err != nil {
		a.log.Error("my teams", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

// teamAccess loads the team id from the path and checks the caller belongs
// to the team (or manages it, when needAdmin is set). Site admins pass.
func (a *api) teamAccess(w http.ResponseWriter, r *http.Request, needAdmin bool) (int64, bool) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return 0, false
	}
	me, errU := a.currentUser(r)
	if errU != nil {
		writeError(w, 401, "unauthorized")
		return 0, false
	}
	if me.IsAdmin {
		return id, true
	}
	var ok bool
	if needAdmin {
		ok, err = a.store.IsTeamAdmin(r.Context(), id, me.ID)
	} else {
		ok, err = a.store.IsTeamMember(r.Context(), id, me.ID)
	}
	if err != nil {
		a.log.Error("team access", "err", err)
		writeError(w, 500, "internal error")
		return 0, false
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return 0, false
	}
	return id, true
}

func (a *api) handleTeamUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := a.teamAccess(w, r, false)
	if !ok {
		return
	}
	items, err := a.store.TeamUsers(r.Context(), id)
	if err != nil {
		a.log.Error("team users", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleTeamSearchUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.teamAccess(w, r, true); !ok {
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 2 {
		writeJSON(w, 200, []User{})
		return
	}
	items, err := a.store.SearchUsers(r.Context(), q, 20)
	if err != nil {
		a.log.Error("search users", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleTeamAddUser(w http.ResponseWriter, r *http.Request) {
	id, ok := a.teamAccess(w, r, true)
	if !ok {
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
		a.log.Error("team add user", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleTeamRemoveUser(w http.ResponseWriter, r *http.Request) {
	id, ok := a.teamAccess(w, r, true)
	if !ok {
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
		a.log.Error("team remove user", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleTeamLeave(w http.ResponseWriter, r *http.Request) {
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
	if err := a.store.RemoveUserFromTeam(r.Context(), id, me.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("team leave", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (a *api) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.teamAccess(w, r, true)
	if !ok {
		return
	}
	if err := a.store.DeleteTeam(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, 404, "not found")
			return
		}
		a.log.Error("delete team", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}
