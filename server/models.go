package main

import "time"

// Board accessibility values. A public board is visible to every
// authenticated user; a restricted board only to its users (owners,
// members, team members).
const (
	AccessPublic     = "public"
	AccessRestricted = "restricted"
)

type Board struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Color         string    `json:"color,omitempty"`
	Accessibility string    `json:"accessibility"`
	IsArchived    bool      `json:"is_archived"`
	IsTemplate    bool      `json:"is_template"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	// ViaTeam indicates the board is accessible to the current user through
	// one of their teams rather than direct membership.
	ViaTeam bool `json:"via_team,omitempty"`
}

type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	// Role is the current user's role in this team when applicable (1=member, 2=admin)
	Role int `json:"role,omitempty"`
}

type List struct {
	ID         int64     `json:"id"`
	BoardID    int64     `json:"board_id"`
	Title      string    `json:"title"`
	Color      string    `json:"color,omitempty"`
	Pos        int64     `json:"pos"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

type Card struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Color       string     `json:"color,omitempty"`
	Pos         int64      `json:"pos"`
	IsArchived  bool       `json:"is_archived"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Checklist struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	Title     string    `json:"title"`
	Pos       int64     `json:"pos"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a single checklist item.
type Task struct {
	ID          int64     `json:"id"`
	ChecklistID int64     `json:"checklist_id"`
	Body        string    `json:"body"`
	Done        bool      `json:"done"`
	Pos         int64     `json:"pos"`
	CreatedAt   time.Time `json:"created_at"`
}

type Label struct {
	ID      int64  `json:"id"`
	BoardID int64  `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
