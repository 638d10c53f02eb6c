package main

import (
	"net/http"
	"time"
)

// Route table. Every route that addresses a board-hierarchy resource goes
// through the access gate with a binder for the addressed entity and the
// capability class of the operation family. Routes outside the hierarchy
// (auth, teams, admin, board listing/creation) resolve to no scope and carry
// their own auth checks.
func (a *api) routes(mux *http.ServeMux) {
	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", a.withRateLimit("auth", 20, time.Minute, a.handleRegister))
	mux.HandleFunc("POST /api/auth/login", a.withRateLimit("auth", 30, time.Minute, a.handleLogin))
	mux.HandleFunc("POST /api/auth/logout", a.handleLogout)
	mux.HandleFunc("GET /api/auth/me", a.handleMe)

	mux.HandleFunc("PATCH /api/profile", a.requireAuth(a.handleUpdateProfile))

	mux.HandleFunc("GET /api/health", a.handleHealth)

	// Boards
	mux.HandleFunc("GET /api/boards", a.requireAuth(a.handleListBoards))
	mux.HandleFunc("POST /api/boards", a.requireAuth(a.handleCreateBoard))
	mux.HandleFunc("GET /api/boards/{id}", a.guard(CapGeneric, bindBoard, a.handleGetBoard))
	mux.HandleFunc("GET /api/boards/{id}/full", a.guard(CapGeneric, bindBoard, a.handleGetBoardFull))
	mux.HandleFunc("GET /api/boards/{id}/events", a.guard(CapGeneric, bindBoard, a.handleBoardEvents))
	mux.HandleFunc("PATCH /api/boards/{id}", a.guard(CapGeneric, bindBoard, a.handleUpdateBoard))
	mux.HandleFunc("POST /api/boards/{id}/move", a.guard(CapGeneric, bindBoard, a.handleMoveBoard))
	mux.HandleFunc("DELETE /api/boards/{id}", a.guard(CapGeneric, bindBoard, a.handleDeleteBoard))

	// Board membership and teams
	mux.HandleFunc("GET /api/boards/{id}/users", a.guard(CapGeneric, bindBoard, a.handleBoardUsers))
	mux.HandleFunc("POST /api/boards/{id}/users", a.guard(CapGeneric, bindBoard, a.handleAddBoardUser))
	mux.HandleFunc("DELETE /api/boards/{id}/users/{uid}", a.guard(CapGeneric, bindBoard, a.handleRemoveBoardUser))
	mux.HandleFunc("GET /api/boards/{id}/teams", a.guard(CapGeneric, bindBoard, a.handleBoardTeams))
	mux.HandleFunc("POST /api/boards/{id}/teams", a.guard(CapGeneric, bindBoard, a.handleBoardTeamAdd))
	mux.HandleFunc("DELETE /api/boards/{id}/teams/{tid}", a.guard(CapGeneric, bindBoard, a.handleBoardTeamRemove))

	// Lists
	mux.HandleFunc("GET /api/boards/{id}/lists", a.guard(CapGeneric, bindBoard, a.handleListsByBoard))
	mux.HandleFunc("POST /api/boards/{id}/lists", a.guard(CapListManagement, bindBoard, a.handleCreateList))
	mux.HandleFunc("PATCH /api/lists/{id}", a.guard(CapListManagement, bindList, a.handleUpdateList))
	mux.HandleFunc("POST /api/lists/{id}/move", a.guard(CapListOrCardMove, bindList, a.handleMoveList))
	mux.HandleFunc("POST /api/lists/{id}/copy", a.guard(CapListOrCardCopy, bindList, a.handleCopyList))
	mux.HandleFunc("DELETE /api/lists/{id}", a.guard(CapListManagement, bindList, a.handleDeleteList))

	// Cards
	mux.HandleFunc("GET /api/lists/{id}/cards", a.guard(CapGeneric, bindList, a.handleCardsByList))
	mux.HandleFunc("POST /api/lists/{id}/cards", a.guard(CapGeneric, bindList, a.handleCreateCard))
	mux.HandleFunc("PATCH /api/cards/{id}", a.guard(CapGeneric, bindCard, a.handleUpdateCard))
	mux.HandleFunc("DELETE /api/cards/{id}", a.guard(CapGeneric, bindCard, a.handleDeleteCard))
	mux.HandleFunc("POST /api/cards/{id}/move", a.guard(CapListOrCardMove, bindCard, a.handleMoveCard))
	mux.HandleFunc("POST /api/cards/{id}/copy", a.guard(CapListOrCardCopy, bindCard, a.handleCopyCard))

	// Comments
	mux.HandleFunc("GET /api/cards/{id}/comments", a.guard(CapGeneric, bindCard, a.handleCommentsByCard))
	mux.HandleFunc("POST /api/cards/{id}/comments", a.guard(CapGeneric, bindCard, a.handleAddComment))
	mux.HandleFunc("DELETE /api/comments/{id}", a.guard(CapGeneric, bindComment, a.handleDeleteComment))

	// Checklists and tasks
	mux.HandleFunc("GET /api/cards/{id}/checklists", a.guard(CapGeneric, bindCard, a.handleChecklistsByCard))
	mux.HandleFunc("POST /api/cards/{id}/checklists", a.guard(CapGeneric, bindCard, a.handleCreateChecklist))
	mux.HandleFunc("PATCH /api/checklists/{id}", a.guard(CapGeneric, bindChecklist, a.handleUpdateChecklist))
	mux.HandleFunc("DELETE /api/checklists/{id}", a.guard(CapGeneric, bindChecklist, a.handleDeleteChecklist))
	mux.HandleFunc("GET /api/checklists/{id}/tasks", a.guard(CapGeneric, bindChecklist, a.handleTasksByChecklist))
	mux.HandleFunc("POST /api/checklists/{id}/tasks", a.guard(CapGeneric, bindChecklist, a.handleCreateTask))
	mux.HandleFunc("PATCH /api/tasks/{id}", a.guard(CapGeneric, bindTask, a.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", a.guard(CapGeneric, bindTask, a.handleDeleteTask))

	// Labels
	mux.HandleFunc("GET /api/boards/{id}/labels", a.guard(CapGeneric, bindBoard, a.handleLabelsByBoard))
	mux.HandleFunc("POST /api/boards/{id}/labels", a.guard(CapLabel, bindBoard, a.handleCreateLabel))
	mux.HandleFunc("PATCH /api/labels/{id}", a.guard(CapLabel, bindLabel, a.handleUpdateLabel))
	mux.HandleFunc("DELETE /api/labels/{id}", a.guard(CapLabel, bindLabel, a.handleDeleteLabel))
	mux.HandleFunc("GET /api/cards/{id}/labels", a.guard(CapGeneric, bindCard, a.handleLabelsByCard))
	mux.HandleFunc("POST /api/cards/{id}/labels/{lid}", a.guard(CapLabel, bindCard, a.handleAttachLabel))
	mux.HandleFunc("DELETE /api/cards/{id}/labels/{lid}", a.guard(CapLabel, bindCard, a.handleDetachLabel))

	// Teams (self-managed)
	mux.HandleFunc("POST /api/teams", a.requireAuth(a.handleCreateTeam))
	mux.HandleFunc("GET /api/my/teams", a.requireAuth(a.handleMyTeams))
	mux.HandleFunc("GET /api/teams/{id}/users", a.requireAuth(a.handleTeamUsers))
	mux.HandleFunc("GET /api/teams/{id}/users/search", a.requireAuth(a.handleTeamSearchUsers))
	mux.HandleFunc("POST /api/teams/{id}/users", a.requireAuth(a.handleTeamAddUser))
	mux.HandleFunc("DELETE /api/teams/{id}/users/{uid}", a.requireAuth(a.handleTeamRemoveUser))
	mux.HandleFunc("POST /api/teams/{id}/leave", a.requireAuth(a.handleTeamLeave))
	mux.HandleFunc("DELETE /api/teams/{id}", a.requireAuth(a.handleTeamDelete))

	// Admin: users, roles, teams
	mux.HandleFunc("GET /api/admin/users", a.requireAdmin(a.handleAdminListUsers))
	mux.HandleFunc("POST /api/admin/users/{id}/active", a.requireAdmin(a.handleAdminSetActive))
	mux.HandleFunc("POST /api/admin/users/{id}/admin", a.requireAdmin(a.handleAdminSetAdmin))
	mux.HandleFunc("GET /api/admin/teams", a.requireAdmin(a.handleAdminListTeams))
	mux.HandleFunc("POST /api/admin/teams", a.requireAdmin(a.handleAdminCreateTeam))
	mux.HandleFunc("DELETE /api/admin/teams/{id}", a.requireAdmin(a.handleAdminDeleteTeam))
	mux.HandleFunc("GET /api/admin/teams/{id}/users", a.requireAdmin(a.handleAdminTeamUsers))
	mux.HandleFunc("POST /api/admin/teams/{id}/users", a.requireAdmin(a.handleAdminTeamAddUser))
	mux.HandleFunc("DELETE /api/admin/teams/{id}/users/{uid}", a.requireAdmin(a.handleAdminTeamRemoveUser))
}
