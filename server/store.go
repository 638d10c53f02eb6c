package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

var ErrNotFound = errors.New("not found")

// --- Boards ---

const boardCols = `id, title, coalesce(color,''), accessibility, is_archived, is_template, created_at, created_by`

func scanBoard(row interface{ Scan(...any) error }) (Board, error) {
	var b Board
	err := row.Scan(&b.ID, &b.Title, &b.Color, &b.Accessibility, &b.IsArchived, &b.IsTemplate, &b.CreatedAt, &b.CreatedBy)
	return b, err
}

// ListBoards returns boards for a given scope: "mine" (owner, member or team
// member), "public", or "templates".
func (s *Store) ListBoards(ctx context.Context, userID int64, scope string) ([]Board, error) {
	var q string
	var args []any
	switch scope {
	case "public":
		q = `select ` + boardCols + `, false from boards
			where accessibility='public' and not is_archived and not is_template order by pos, id`
	case "templates":
		q = `select ` + boardCols + `, false from boards where is_template and not is_archived order by pos, id`
	default:
		q = `select ` + boardCols + `,
			not exists(select 1 from board_owners o where o.board_id=boards.id and o.user_id=$1)
			and not exists(select 1 from board_members m where m.board_id=boards.id and m.user_id=$1)
			from boards
			where exists(select 1 from board_owners o where o.board_id=boards.id and o.user_id=$1)
			   or exists(select 1 from board_members m where m.board_id=boards.id and m.user_id=$1)
			   or exists(select 1 from board_teams bt join team_members tm on tm.team_id=bt.team_id
			             where bt.board_id=boards.id and tm.user_id=$1)
			order by pos, id`
		args = append(args, userID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Board
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Title, &b.Color, &b.Accessibility, &b.IsArchived, &b.IsTemplate, &b.CreatedAt, &b.CreatedBy, &b.ViaTeam); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateBoard inserts the board and records the creator as its first owner.
// Every board has at least one owner from birth.
func (s *Store) CreateBoard(ctx context.Context, userID int64, title string) (Board, error) {
	var next int64 = 1000
	_ = s.db.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from boards`).Scan(&next)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Board{}, err
	}
	defer func() { _ = tx.Rollback() }()
	b, err := scanBoard(tx.QueryRowContext(ctx,
		`insert into boards(title, pos, created_by) values($1,$2,$3) returning `+boardCols, title, next, userID))
	if err != nil {
		return Board{}, err
	}
	if _, err = tx.ExecContext(ctx, `insert into board_owners(board_id, user_id) values($1,$2)`, b.ID, userID); err != nil {
		return Board{}, err
	}
	if err = tx.Commit(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func (s *Store) GetBoard(ctx context.Context, id int64) (Board, error) {
	b, err := scanBoard(s.db.QueryRowContext(ctx, `select `+boardCols+` from boards where id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Board{}, ErrNotFound
	}
	return b, err
}

// UpdateBoard patches the provided fields only, building the SET clause from
// non-nil arguments.
func (s *Store) UpdateBoard(ctx context.Context, id int64, title, color, accessibility *string, archived, template *bool) error {
	set := []string{}
	args := []any{}
	idx := 1
	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s=$%d", col, idx))
		args = append(args, v)
		idx++
	}
	if title != nil {
		add("title", *title)
	}
	if color != nil {
		add("color", *color)
	}
	if accessibility != nil {
		add("accessibility", *accessibility)
	}
	if archived != nil {
		add("is_archived", *archived)
	}
	if template != nil {
		add("is_template", *template)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("update boards set %s where id=$%d", joinComma(set), idx), args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBoard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from boards where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Board membership ---

type BoardUserEntry struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Owner  bool   `json:"owner"`
}

func (s *Store) BoardUsers(ctx context.Context, boardID int64) ([]BoardUserEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		select u.id, u.name, u.email, true as owner from board_owners bo join users u on u.id=bo.user_id where bo.board_id=$1
		union
		select u.id, u.name, u.email, false from board_members bm join users u on u.id=bm.user_id where bm.board_id=$1
		order by owner desc, name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BoardUserEntry
	for rows.Next() {
		var e BoardUserEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Email, &e.Owner); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) AddBoardUser(ctx context.Context, boardID, userID int64, owner bool) error {
	table := "board_members"
	if owner {
		table = "board_owners"
	}
	_, err := s.db.ExecContext(ctx,
		`insert into `+table+`(board_id, user_id) values($1,$2) on conflict do nothing`, boardID, userID)
	return err
}

func (s *Store) RemoveBoardUser(ctx context.Context, boardID, userID int64, owner bool) error {
	table := "board_members"
	if owner {
		table = "board_owners"
	}
	res, err := s.db.ExecContext(ctx, `delete from `+table+` where board_id=$1 and user_id=$2`, boardID, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) OwnerCount(ctx context.Context, boardID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `select count(*) from board_owners where board_id=$1`, boardID).Scan(&n)
	return n, err
}

func (s *Store) BoardTeams(ctx context.Context, boardID int64) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `select t.id, t.name, t.created_at
		from board_teams bt join teams t on t.id=bt.team_id where bt.board_id=$1 order by t.name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) AttachTeam(ctx context.Context, boardID, teamID int64) error {
	_, err := s.db.ExecContext(ctx,
		`insert into board_teams(board_id, team_id) values($1,$2) on conflict do nothing`, boardID, teamID)
	return err
}

func (s *Store) DetachTeam(ctx context.Context, boardID, teamID int64) error {
	res, err := s.db.ExecContext(ctx, `delete from board_teams where board_id=$1 and team_id=$2`, boardID, teamID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Snapshots for the access gate ---

// BoardSnapshot loads the board state the policy core needs: the flags plus
// the full membership graph (owners, members, assigned teams with their
// members). Loaded fresh per request, never cached.
func (s *Store) BoardSnapshot(ctx context.Context, id int64) (*BoardSnapshot, error) {
	b := &BoardSnapshot{ID: id}
	err := s.db.QueryRowContext(ctx,
		`select accessibility, is_archived, is_template from boards where id=$1`, id).
		Scan(&b.Accessibility, &b.IsArchived, &b.IsTemplate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.Owners, err = s.idColumn(ctx, `select user_id from board_owners where board_id=$1 order by user_id`, id); err != nil {
		return nil, err
	}
	if b.Members, err = s.idColumn(ctx, `select user_id from board_members where board_id=$1 order by user_id`, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `select bt.team_id, tm.user_id
		from board_teams bt left join team_members tm on tm.team_id=bt.team_id
		where bt.board_id=$1 order by bt.team_id, tm.user_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var teamID int64
		var userID *int64
		if err := rows.Scan(&teamID, &userID); err != nil {
			return nil, err
		}
		if len(b.Teams) == 0 || b.Teams[len(b.Teams)-1].ID != teamID {
			b.Teams = append(b.Teams, TeamSnapshot{ID: teamID})
		}
		if userID != nil {
			t := &b.Teams[len(b.Teams)-1]
			t.Members = append(t.Members, *userID)
		}
	}
	return b, rows.Err()
}

func (s *Store) ListSnapshot(ctx context.Context, id int64) (*ListSnapshot, error) {
	var boardID int64
	l := &ListSnapshot{ID: id}
	err := s.db.QueryRowContext(ctx, `select board_id, is_archived from lists where id=$1`, id).
		Scan(&boardID, &l.IsArchived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if l.Board, err = s.BoardSnapshot(ctx, boardID); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) CardSnapshot(ctx context.Context, id int64) (*CardSnapshot, error) {
	var listID int64
	c := &CardSnapshot{ID: id}
	err := s.db.QueryRowContext(ctx, `select list_id, is_archived from cards where id=$1`, id).
		Scan(&listID, &c.IsArchived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.List, err = s.ListSnapshot(ctx, listID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) CardSnapshotByComment(ctx context.Context, commentID int64) (*CardSnapshot, error) {
	return s.cardSnapshotVia(ctx, `select card_id from comments where id=$1`, commentID)
}

func (s *Store) CardSnapshotByChecklist(ctx context.Context, checklistID int64) (*CardSnapshot, error) {
	return s.cardSnapshotVia(ctx, `select card_id from checklists where id=$1`, checklistID)
}

func (s *Store) CardSnapshotByTask(ctx context.Context, taskID int64) (*CardSnapshot, error) {
	return s.cardSnapshotVia(ctx,
		`select c.card_id from checklist_tasks t join checklists c on c.id=t.checklist_id where t.id=$1`, taskID)
}

func (s *Store) BoardSnapshotByLabel(ctx context.Context, labelID int64) (*BoardSnapshot, error) {
	var boardID int64
	err := s.db.QueryRowContext(ctx, `select board_id from labels where id=$1`, labelID).Scan(&boardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.BoardSnapshot(ctx, boardID)
}

func (s *Store) cardSnapshotVia(ctx context.Context, q string, id int64) (*CardSnapshot, error) {
	var cardID int64
	err := s.db.QueryRowContext(ctx, q, id).Scan(&cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.CardSnapshot(ctx, cardID)
}

func (s *Store) idColumn(ctx context.Context, q string, args ...any) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// --- Lists ---

const listCols = `id, board_id, title, coalesce(color,''), pos, is_archived, created_at`

func scanList(row interface{ Scan(...any) error }) (List, error) {
	var l List
	err := row.Scan(&l.ID, &l.BoardID, &l.Title, &l.Color, &l.Pos, &l.IsArchived, &l.CreatedAt)
	return l, err
}

func (s *Store) ListsByBoard(ctx context.Context, boardID int64, includeArchived bool) ([]List, error) {
	q := `select ` + listCols + ` from lists where board_id=$1`
	if !includeArchived {
		q += ` and not is_archived`
	}
	q += ` order by pos, id`
	rows, err := s.db.QueryContext(ctx, q, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) CreateList(ctx context.Context, boardID int64, title string) (List, error) {
	var next int64 = 1000
	_ = s.db.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from lists where board_id=$1`, boardID).Scan(&next)
	return scanList(s.db.QueryRowContext(ctx,
		`insert into lists(board_id, title, pos) values($1,$2,$3) returning `+listCols, boardID, title, next))
}

func (s *Store) GetList(ctx context.Context, id int64) (List, error) {
	l, err := scanList(s.db.QueryRowContext(ctx, `select `+listCols+` from lists where id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, ErrNotFound
	}
	return l, err
}

func (s *Store) UpdateList(ctx context.Context, id int64, title, color *string, archived *bool) error {
	set := []string{}
	args := []any{}
	idx := 1
	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s=$%d", col, idx))
		args = append(args, v)
		idx++
	}
	if title != nil {
		add("title", *title)
	}
	if color != nil {
		add("color", *color)
	}
	if archived != nil {
		add("is_archived", *archived)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("update lists set %s where id=$%d", joinComma(set), idx), args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteList(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from lists where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CopyList duplicates a list with all of its live cards onto the target
// board (the same board when targetBoardID is 0).
func (s *Store) CopyList(ctx context.Context, listID, targetBoardID int64) (List, error) {
	src, err := s.GetList(ctx, listID)
	if err != nil {
		return List{}, err
	}
	if targetBoardID == 0 {
		targetBoardID = src.BoardID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return List{}, err
	}
	defer func() { _ = tx.Rollback() }()
	var next int64 = 1000
	_ = tx.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from lists where board_id=$1`, targetBoardID).Scan(&next)
	dst, err := scanList(tx.QueryRowContext(ctx,
		`insert into lists(board_id, title, color, pos) values($1,$2,nullif($3,''),$4) returning `+listCols,
		targetBoardID, src.Title, src.Color, next))
	if err != nil {
		return List{}, err
	}
	if _, err = tx.ExecContext(ctx, `insert into cards(list_id, title, description, color, pos, due_at)
		select $1, title, description, color, pos, due_at from cards where list_id=$2 and not is_archived`,
		dst.ID, listID); err != nil {
		return List{}, err
	}
	if err = tx.Commit(); err != nil {
		return List{}, err
	}
	return dst, nil
}

// --- Cards ---

const cardCols = `id, list_id, title, description, coalesce(color,''), pos, is_archived, due_at, created_at`

func scanCard(row interface{ Scan(...any) error }) (Card, error) {
	var c Card
	err := row.Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.Color, &c.Pos, &c.IsArchived, &c.DueAt, &c.CreatedAt)
	return c, err
}

func (s *Store) CardsByList(ctx context.Context, listID int64, includeArchived bool) ([]Card, error) {
	q := `select ` + cardCols + ` from cards where list_id=$1`
	if !includeArchived {
		q += ` and not is_archived`
	}
	q += ` order by pos, id`
	rows, err := s.db.QueryContext(ctx, q, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCard(ctx context.Context, listID int64, title, description string) (Card, error) {
	var next int64 = 1000
	_ = s.db.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from cards where list_id=$1`, listID).Scan(&next)
	return scanCard(s.db.QueryRowContext(ctx,
		`insert into cards(list_id, title, description, pos) values($1,$2,$3,$4) returning `+cardCols,
		listID, title, description, next))
}

func (s *Store) GetCard(ctx context.Context, id int64) (Card, error) {
	c, err := scanCard(s.db.QueryRowContext(ctx, `select `+cardCols+` from cards where id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Card{}, ErrNotFound
	}
	return c, err
}

func (s *Store) UpdateCard(ctx context.Context, id int64, title, description, color *string, dueAt *time.Time, archived *bool) error {
	set := []string{}
	args := []any{}
	idx := 1
	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s=$%d", col, idx))
		args = append(args, v)
		idx++
	}
	if title != nil {
		add("title", *title)
	}
	if description != nil {
		add("description", *description)
	}
	if color != nil {
		add("color", *color)
	}
	if dueAt != nil {
		add("due_at", *dueAt)
	}
	if archived != nil {
		add("is_archived", *archived)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("update cards set %s where id=$%d", joinComma(set), idx), args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from cards where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CopyCard duplicates a card at the end of the target list (the same list
// when targetListID is 0). Comments and checklists are not copied; label
// attachments are, when the label exists on the target board.
func (s *Store) CopyCard(ctx context.Context, cardID, targetListID int64) (Card, error) {
	src, err := s.GetCard(ctx, cardID)
	if err != nil {
		return Card{}, err
	}
	if targetListID == 0 {
		targetListID = src.ListID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Card{}, err
	}
	defer func() { _ = tx.Rollback() }()
	var next int64 = 1000
	_ = tx.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from cards where list_id=$1`, targetListID).Scan(&next)
	dst, err := scanCard(tx.QueryRowContext(ctx,
		`insert into cards(list_id, title, description, color, pos, due_at) values($1,$2,$3,nullif($4,''),$5,$6) returning `+cardCols,
		targetListID, src.Title, src.Description, src.Color, next, src.DueAt))
	if err != nil {
		return Card{}, err
	}
	if _, err = tx.ExecContext(ctx, `insert into card_labels(card_id, label_id)
		select $1, cl.label_id from card_labels cl
		join labels lb on lb.id=cl.label_id
		join lists l on l.id=$2
		where cl.card_id=$3 and lb.board_id=l.board_id`, dst.ID, targetListID, cardID); err != nil {
		return Card{}, err
	}
	if err = tx.Commit(); err != nil {
		return Card{}, err
	}
	return dst, nil
}

// Helpers for the API layer to resolve board/list relationships for events
func (s *Store) BoardIDByList(ctx context.Context, listID int64) (int64, error) {
	var boardID int64
	err := s.db.QueryRowContext(ctx, `select board_id from lists where id=$1`, listID).Scan(&boardID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return boardID, err
}

func (s *Store) BoardAndListByCard(ctx context.Context, cardID int64) (int64, int64, error) {
	var boardID, listID int64
	err := s.db.QueryRowContext(ctx, `select l.board_id, c.list_id from cards c join lists l on l.id=c.list_id where c.id=$1`, cardID).
		Scan(&boardID, &listID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	return boardID, listID, err
}

// --- Comments ---

func (s *Store) CommentsByCard(ctx context.Context, cardID int64) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, card_id, user_id, body, created_at from comments where card_id=$1 order by id`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.CardID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) AddComment(ctx context.Context, cardID int64, body string, userID *int64) (Comment, error) {
	var c Comment
	err := s.db.QueryRowContext(ctx,
		`insert into comments(card_id, body, user_id) values($1,$2,$3) returning id, card_id, user_id, body, created_at`,
		cardID, body, userID).Scan(&c.ID, &c.CardID, &c.UserID, &c.Body, &c.CreatedAt)
	return c, err
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from comments where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Checklists and tasks ---

func (s *Store) ChecklistsByCard(ctx context.Context, cardID int64) ([]Checklist, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, card_id, title, pos, created_at from checklists where card_id=$1 order by pos, id`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Checklist
	for rows.Next() {
		var c Checklist
		if err := rows.Scan(&c.ID, &c.CardID, &c.Title, &c.Pos, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateChecklist(ctx context.Context, cardID int64, title string) (Checklist, error) {
	var next int64 = 1000
	_ = s.db.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from checklists where card_id=$1`, cardID).Scan(&next)
	var c Checklist
	err := s.db.QueryRowContext(ctx,
		`insert into checklists(card_id, title, pos) values($1,$2,$3) returning id, card_id, title, pos, created_at`,
		cardID, title, next).Scan(&c.ID, &c.CardID, &c.Title, &c.Pos, &c.CreatedAt)
	return c, err
}

func (s *Store) UpdateChecklist(ctx context.Context, id int64, title *string) error {
	if title == nil {
		return nil
	}
	res, err := s.db.ExecContext(ctx, `update checklists set title=$1 where id=$2`, *title, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteChecklist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from checklists where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) TasksByChecklist(ctx context.Context, checklistID int64) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, checklist_id, body, done, pos, created_at from checklist_tasks where checklist_id=$1 order by pos, id`, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.ChecklistID, &t.Body, &t.Done, &t.Pos, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateTask(ctx context.Context, checklistID int64, body string) (Task, error) {
	var next int64 = 1000
	_ = s.db.QueryRowContext(ctx, `select coalesce(max(pos),0)+1000 from checklist_tasks where checklist_id=$1`, checklistID).Scan(&next)
	var t Task
	err := s.db.QueryRowContext(ctx,
		`insert into checklist_tasks(checklist_id, body, pos) values($1,$2,$3) returning id, checklist_id, body, done, pos, created_at`,
		checklistID, body, next).Scan(&t.ID, &t.ChecklistID, &t.Body, &t.Done, &t.Pos, &t.CreatedAt)
	return t, err
}

func (s *Store) UpdateTask(ctx context.Context, id int64, body *string, done *bool) error {
	set := []string{}
	args := []any{}
	idx := 1
	if body != nil {
		set = append(set, fmt.Sprintf("body=$%d", idx))
		args = append(args, *body)
		idx++
	}
	if done != nil {
		set = append(set, fmt.Sprintf("done=$%d", idx))
		args = append(args, *done)
		idx++
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("update checklist_tasks set %s where id=$%d", joinComma(set), idx), args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from checklist_tasks where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Labels ---

func (s *Store) LabelsByBoard(ctx context.Context, boardID int64) ([]Label, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, board_id, name, coalesce(color,'') from labels where board_id=$1 order by name, id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Label
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) CreateLabel(ctx context.Context, boardID int64, name, color string) (Label, error) {
	var l Label
	err := s.db.QueryRowContext(ctx,
		`insert into labels(board_id, name, color) values($1,$2,nullif($3,'')) returning id, board_id, name, coalesce(color,'')`,
		boardID, name, color).Scan(&l.ID, &l.BoardID, &l.Name, &l.Color)
	return l, err
}

func (s *Store) UpdateLabel(ctx context.Context, id int64, name, color *string) error {
	set := []string{}
	args := []any{}
	idx := 1
	if name != nil {
		set = append(set, fmt.Sprintf("name=$%d", idx))
		args = append(args, *name)
		idx++
	}
	if color != nil {
		set = append(set, fmt.Sprintf("color=$%d", idx))
		args = append(args, *color)
		idx++
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("update labels set %s where id=$%d", joinComma(set), idx), args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteLabel(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from labels where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) LabelsByCard(ctx context.Context, cardID int64) ([]Label, error) {
	rows, err := s.db.QueryContext(ctx, `select l.id, l.board_id, l.name, coalesce(l.color,'')
		from card_labels cl join labels l on l.id=cl.label_id where cl.card_id=$1 order by l.name, l.id`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Label
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// AttachLabel links a board label to a card on the same board. A label from
// another board never attaches; the insert selects nothing in that case.
func (s *Store) AttachLabel(ctx context.Context, cardID, labelID int64) error {
	res, err := s.db.ExecContext(ctx, `insert into card_labels(card_id, label_id)
		select c.id, lb.id from cards c
		join lists l on l.id=c.list_id
		join labels lb on lb.board_id=l.board_id
		where c.id=$1 and lb.id=$2
		on conflict do nothing`, cardID, labelID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DetachLabel(ctx context.Context, cardID, labelID int64) error {
	res, err := s.db.ExecContext(ctx, `delete from card_labels where card_id=$1 and label_id=$2`, cardID, labelID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Moves (gap-based positions with renumber fallback) ---

func (s *Store) MoveCard(ctx context.Context, cardID int64, targetList int64, newIndex int) error {
	attempts := 0
retry:
	var listID int64
	var pos int64
	if err := s.db.QueryRowContext(ctx, `select list_id, pos from cards where id=$1`, cardID).Scan(&listID, &pos); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if targetList != 0 && targetList != listID {
		if _, err = tx.ExecContext(ctx, `update cards set list_id=$1 where id=$2`, targetList, cardID); err != nil {
			_ = tx.Rollback()
			return err
		}
		listID = targetList
	}

	positions, err := txPositions(ctx, tx, `select pos from cards where list_id=$1 and id<>$2 order by pos, id`, listID, cardID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	newPos, needRenumber := placeAt(positions, newIndex)
	if needRenumber {
		if err = renumberCardPositions(ctx, tx, listID); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		attempts++
		if attempts < 2 {
			goto retry
		}
		return errors.New("move failed after renumber")
	}

	if _, err = tx.ExecContext(ctx, `update cards set pos=$1 where id=$2`, newPos, cardID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// MoveList moves a list within its board or to another board at given index
func (s *Store) MoveList(ctx context.Context, listID int64, targetBoardID int64, newIndex int) error {
	attempts := 0
retry:
	var boardID int64
	var pos int64
	if err := s.db.QueryRowContext(ctx, `select board_id, pos from lists where id=$1`, listID).Scan(&boardID, &pos); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if targetBoardID != 0 && targetBoardID != boardID {
		if _, err = tx.ExecContext(ctx, `update lists set board_id=$1 where id=$2`, targetBoardID, listID); err != nil {
			_ = tx.Rollback()
			return err
		}
		boardID = targetBoardID
	}
	positions, err := txPositions(ctx, tx, `select pos from lists where board_id=$1 and id<>$2 order by pos, id`, boardID, listID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	newPos, needRenumber := placeAt(positions, newIndex)
	if needRenumber {
		if err = renumberListPositions(ctx, tx, boardID); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		attempts++
		if attempts < 2 {
			goto retry
		}
		return errors.New("move list failed after renumber")
	}
	if _, err = tx.ExecContext(ctx, `update lists set pos=$1 where id=$2`, newPos, listID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// MoveBoard reorders a board among all boards
func (s *Store) MoveBoard(ctx context.Context, boardID int64, newIndex int) error {
	attempts := 0
retry:
	var pos int64
	if err := s.db.QueryRowContext(ctx, `select pos from boards where id=$1`, boardID).Scan(&pos); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	positions, err := txPositions(ctx, tx, `select pos from boards where id<>$1 order by pos, id`, boardID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	newPos, needRenumber := placeAt(positions, newIndex)
	if needRenumber {
		if err = renumberBoardPositions(ctx, tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		attempts++
		if attempts < 2 {
			goto retry
		}
		return errors.New("move board failed after renumber")
	}
	if _, err = tx.ExecContext(ctx, `update boards set pos=$1 where id=$2`, newPos, boardID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txPositions(ctx context.Context, tx *sql.Tx, q string, args ...any) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var positions []int64
	for rows.Next() {
		var p int64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// placeAt computes the new position for an item inserted at newIndex among
// the given sorted positions. needRenumber is set when the gap between
// neighbors is exhausted.
func placeAt(positions []int64, newIndex int) (newPos int64, needRenumber bool) {
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(positions) {
		newIndex = len(positions)
	}
	var beforePos, afterPos *int64
	if newIndex > 0 {
		v := positions[newIndex-1]
		beforePos = &v
	}
	if newIndex < len(positions) {
		v := positions[newIndex]
		afterPos = &v
	}
	switch {
	case beforePos == nil && afterPos == nil:
		return 1000, false
	case beforePos != nil && afterPos == nil:
		return *beforePos + 1000, false
	case beforePos == nil && afterPos != nil:
		p := *afterPos - 500
		if p <= 0 {
			p = 1
		}
		return p, false
	default:
		gap := *afterPos - *beforePos
		if gap <= 1 {
			return 0, true
		}
		return *beforePos + gap/2, false
	}
}

func renumberCardPositions(ctx context.Context, tx *sql.Tx, listID int64) error {
	return renumber(ctx, tx, `select id from cards where list_id=$1 order by pos, id`, `update cards set pos=$1 where id=$2`, listID)
}

func renumberListPositions(ctx context.Context, tx *sql.Tx, boardID int64) error {
	return renumber(ctx, tx, `select id from lists where board_id=$1 order by pos, id`, `update lists set pos=$1 where id=$2`, boardID)
}

func renumberBoardPositions(ctx context.Context, tx *sql.Tx) error {
	return renumber(ctx, tx, `select id from boards order by pos, id`, `update boards set pos=$1 where id=$2`)
}

func renumber(ctx context.Context, tx *sql.Tx, selectQ, updateQ string, args ...any) error {
	rows, err := tx.QueryContext(ctx, selectQ, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	pos := int64(1000)
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, updateQ, pos, id); err != nil {
			return err
		}
		pos += 1000
	}
	return nil
}

// --- Auth & users ---

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, name string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `insert into users(email, password_hash, name) values($1,$2,$3)
		returning id, email, name, coalesce(avatar_url,''), is_active, is_admin, created_at`, email, passwordHash, name).
		Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.IsActive, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// get user creds by email, including password hash
func (s *Store) userCredsByEmail(ctx context.Context, email string) (User, string, error) {
	var u User
	var hash string
	err := s.db.QueryRowContext(ctx, `select id, email, name, coalesce(avatar_url,''), is_active, is_admin, created_at, password_hash from users where lower(email)=lower($1)`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.IsActive, &u.IsAdmin, &u.CreatedAt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	return u, hash, err
}

// Verify user password and return user if ok
func (s *Store) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, hash, err := s.userCredsByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrNotFound
	}
	if !u.IsActive {
		return User{}, errors.New("user_inactive")
	}
	return u, nil
}

func (s *Store) CreateSession(ctx context.Context, userID int64, ttl time.Duration) (string, time.Time, error) {
	// 32 random bytes, base64 URL encoded
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, err
	}
	token := base64.RawURLEncoding.EncodeToString(b)
	expires := time.Now().Add(ttl)
	_, err := s.db.ExecContext(ctx, `insert into sessions(user_id, token, expires_at) values($1,$2,$3)`, userID, token, expires)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

func (s *Store) UserBySession(ctx context.Context, token string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select u.id, u.email, u.name, coalesce(u.avatar_url,''), u.is_active, u.is_admin, u.created_at
		from sessions s join users u on u.id=s.user_id
		where s.token=$1 and s.expires_at > now()`, token).
		Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.IsActive, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `delete from sessions where token=$1`, token)
	return err
}

func (s *Store) UpdateProfile(ctx context.Context, userID int64, name, avatarURL *string) error {
	set := []string{}
	args := []any{}
	idx := 1
	if name != nil {
		set = append(set, fmt.Sprintf("name=$%d", idx))
		args = append(args, *name)
		idx++
	}
	if avatarURL != nil {
		set = append(set, fmt.Sprintf("avatar_url=$%d", idx))
		args = append(args, *avatarURL)
		idx++
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, userID)
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("update users set %s where id=$%d", joinComma(set), idx), args...)
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, email, name, coalesce(avatar_url,''), is_active, is_admin, created_at from users order by id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (s *Store) SetUserActive(ctx context.Context, userID int64, active bool) error {
	res, err := s.db.ExecContext(ctx, `update users set is_active=$1 where id=$2`, active, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUserAdmin grants or revokes the global Administrator role.
func (s *Store) SetUserAdmin(ctx context.Context, userID int64, admin bool) error {
	res, err := s.db.ExecContext(ctx, `update users set is_admin=$1 where id=$2`, admin, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Teams ---

// CreateTeam inserts the team with the creator as its first admin member.
func (s *Store) CreateTeam(ctx context.Context, name string, creatorID int64) (Team, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Team{}, err
	}
	defer func() { _ = tx.Rollback() }()
	var t Team
	err = tx.QueryRowContext(ctx, `insert into teams(name) values($1) returning id, name, created_at`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return Team{}, err
	}
	if _, err = tx.ExecContext(ctx, `insert into team_members(team_id, user_id, role) values($1,$2,2)`, t.ID, creatorID); err != nil {
		return Team{}, err
	}
	if err = tx.Commit(); err != nil {
		return Team{}, err
	}
	t.Role = 2
	return t, nil
}

// CreateTeamBare inserts a team with no members (admin surface).
func (s *Store) CreateTeamBare(ctx context.Context, name string) (Team, error) {
	var t Team
	err := s.db.QueryRowContext(ctx, `insert into teams(name) values($1) returning id, name, created_at`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	return t, err
}

func (s *Store) MyTeams(ctx context.Context, userID int64) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `select t.id, t.name, t.created_at, tm.role
		from team_members tm join teams t on t.id=tm.team_id where tm.user_id=$1 order by t.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Role); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `select id, name, created_at from teams order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) TeamUsers(ctx context.Context, teamID int64) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `select u.id, u.email, u.name, coalesce(u.avatar_url,''), u.is_active, u.is_admin, u.created_at
		from team_members tm join users u on u.id=tm.user_id where tm.team_id=$1 order by u.name, u.id`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `select id, email, name, coalesce(avatar_url,''), is_active, is_admin, created_at
		from users where is_active and (lower(email) like lower($1) or lower(name) like lower($1))
		order by name, id limit $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]User, error) {
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.IsActive, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// IsTeamAdmin reports whether the user administers the team (role 2).
func (s *Store) IsTeamAdmin(ctx context.Context, teamID, userID int64) (bool, error) {
	var role int
	err := s.db.QueryRowContext(ctx, `select role from team_members where team_id=$1 and user_id=$2`, teamID, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return role == 2, err
}

func (s *Store) IsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `select 1 from team_members where team_id=$1 and user_id=$2`, teamID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) AddUserToTeam(ctx context.Context, teamID, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`insert into team_members(team_id, user_id, role) values($1,$2,1) on conflict do nothing`, teamID, userID)
	return err
}

func (s *Store) RemoveUserFromTeam(ctx context.Context, teamID, userID int64) error {
	res, err := s.db.ExecContext(ctx, `delete from team_members where team_id=$1 and user_id=$2`, teamID, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTeam(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from teams where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func joinComma(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for i := 1; i < len(parts); i++ {
		out += ", " + parts[i]
	}
	return out
}

const schema = `
create table if not exists users(
		id bigserial primary key,
		email text unique not null,
		password_hash text not null default '',
		name text not null default '',
		avatar_url text,
		is_active boolean not null default true,
		is_admin boolean not null default false,
		created_at timestamptz not null default now()
);

create table if not exists sessions(
		id bigserial primary key,
		user_id bigint not null references users(id) on delete cascade,
		token text unique not null,
		created_at timestamptz not null default now(),
		expires_at timestamptz not null
);

create table if not exists teams(
		id bigserial primary key,
		name text unique not null,
		created_at timestamptz not null default now()
);
create table if not exists team_members(
		team_id bigint not null references teams(id) on delete cascade,
		user_id bigint not null references users(id) on delete cascade,
		role smallint not null default 1,
		primary key(team_id, user_id)
);

create table if not exists boards(
    id bigserial primary key,
    title text not null check (length(title) > 0),
	color text,
	accessibility text not null default 'restricted' check (accessibility in ('public','restricted')),
	is_archived boolean not null default false,
	is_template boolean not null default false,
    pos bigint not null default 1000,
	created_by bigint references users(id) on delete set null,
    created_at timestamptz not null default now()
);
create index if not exists boards_pos_idx on boards(pos);

create table if not exists board_owners(
		board_id bigint not null references boards(id) on delete cascade,
		user_id bigint not null references users(id) on delete cascade,
		primary key(board_id, user_id)
);
create table if not exists board_members(
		board_id bigint not null references boards(id) on delete cascade,
		user_id bigint not null references users(id) on delete cascade,
		primary key(board_id, user_id)
);
create table if not exists board_teams(
		board_id bigint not null references boards(id) on delete cascade,
		team_id bigint not null references teams(id) on delete cascade,
		primary key(board_id, team_id)
);

create table if not exists lists(
    id bigserial primary key,
    board_id bigint not null references boards(id) on delete cascade,
    title text not null check (length(title) > 0),
	color text,
    pos bigint not null default 1000,
	is_archived boolean not null default false,
    created_at timestamptz not null default now()
);
create index if not exists lists_board_idx on lists(board_id);

create table if not exists cards(
    id bigserial primary key,
    list_id bigint not null references lists(id) on delete cascade,
    title text not null check (length(title) > 0),
    description text not null default '',
	color text,
    pos bigint not null default 1000,
	is_archived boolean not null default false,
    due_at timestamptz,
    created_at timestamptz not null default now()
);
create index if not exists cards_list_idx on cards(list_id);

create table if not exists comments(
    id bigserial primary key,
    card_id bigint not null references cards(id) on delete cascade,
	user_id bigint references users(id) on delete set null,
    body text not null check (length(body) > 0),
    created_at timestamptz not null default now()
);
create index if not exists comments_card_idx on comments(card_id);

create table if not exists checklists(
		id bigserial primary key,
		card_id bigint not null references cards(id) on delete cascade,
		title text not null check (length(title) > 0),
		pos bigint not null default 1000,
		created_at timestamptz not null default now()
);
create index if not exists checklists_card_idx on checklists(card_id);

create table if not exists checklist_tasks(
		id bigserial primary key,
		checklist_id bigint not null references checklists(id) on delete cascade,
		body text not null check (length(body) > 0),
		done boolean not null default false,
		pos bigint not null default 1000,
		created_at timestamptz not null default now()
);
create index if not exists checklist_tasks_checklist_idx on checklist_tasks(checklist_id);

create table if not exists labels(
		id bigserial primary key,
		board_id bigint not null references boards(id) on delete cascade,
		name text not null check (length(name) > 0),
		color text,
		unique(board_id, name)
);
create table if not exists card_labels(
		card_id bigint not null references cards(id) on delete cascade,
		label_id bigint not null references labels(id) on delete cascade,
		primary key(card_id, label_id)
);
`
