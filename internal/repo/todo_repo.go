package repo

import (
	"context"
	"time"

	dom "taskflow/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo persists tasks. Every method is scoped by ownerID; a task owned
// by someone else behaves exactly like a missing one (pgx.ErrNoRows / false).
type TodoRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, ownerID int64, id string) (dom.Task, error)
	List(ctx context.Context, ownerID int64) ([]dom.Task, error)
	Update(ctx context.Context, ownerID int64, id string, t dom.Task) (dom.Task, error)
	SoftDelete(ctx context.Context, ownerID int64, id string) (bool, error)
	MarkDone(ctx context.Context, ownerID int64, id string, done bool, at time.Time) (dom.Task, error)
	Search(ctx context.Context, ownerID int64, q string) ([]dom.Task, error)
	Overdue(ctx context.Context, ownerID int64, now time.Time) ([]dom.Task, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

const todoColumns = `id, user_id, title, description, completed, priority, category,
	urgency, importance, quadrant, due_date, created_at, updated_at, deleted_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (dom.Task, error) {
	var (
		t        dom.Task
		quadrant *string
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.Category,
		&t.Urgency, &t.Importance, &quadrant, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	if err != nil {
		return dom.Task{}, err
	}
	if quadrant != nil {
		q := dom.Quadrant(*quadrant)
		t.Quadrant = &q
	}
	return t, nil
}

func quadrantArg(q *dom.Quadrant) *string {
	if q == nil {
		return nil
	}
	s := string(*q)
	return &s
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO todos (id, user_id, title, description, completed, priority, category,
			urgency, importance, quadrant, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + todoColumns
	return scanTask(r.db.QueryRow(ctx, query,
		t.ID, t.OwnerID, t.Title, t.Description, t.Completed, t.Priority, t.Category,
		t.Urgency, t.Importance, quadrantArg(t.Quadrant), t.DueDate, t.CreatedAt, t.UpdatedAt,
	))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, ownerID int64, id string) (dom.Task, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	return scanTask(r.db.QueryRow(ctx, query, id, ownerID))
}

func (r *PGTodoRepo) List(ctx context.Context, ownerID int64) ([]dom.Task, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	return r.queryTasks(ctx, query, ownerID)
}

// Update writes every mutable column in a single-row statement.
func (r *PGTodoRepo) Update(ctx context.Context, ownerID int64, id string, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE todos SET title = $3, description = $4, completed = $5, priority = $6, category = $7,
			urgency = $8, importance = $9, quadrant = $10, due_date = $11, updated_at = $12
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanTask(r.db.QueryRow(ctx, query, id, ownerID,
		t.Title, t.Description, t.Completed, t.Priority, t.Category,
		t.Urgency, t.Importance, quadrantArg(t.Quadrant), t.DueDate, t.UpdatedAt,
	))
}

func (r *PGTodoRepo) SoftDelete(ctx context.Context, ownerID int64, id string) (bool, error) {
	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx,
		`UPDATE todos SET deleted_at = $3, updated_at = $3 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, ownerID, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGTodoRepo) MarkDone(ctx context.Context, ownerID int64, id string, done bool, at time.Time) (dom.Task, error) {
	query := `
		UPDATE todos SET completed = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanTask(r.db.QueryRow(ctx, query, id, ownerID, done, at))
}

func (r *PGTodoRepo) Search(ctx context.Context, ownerID int64, q string) ([]dom.Task, error) {
	pattern := "%" + q + "%"
	query := `SELECT ` + todoColumns + `
		FROM todos WHERE user_id = $1 AND deleted_at IS NULL AND (title ILIKE $2 OR description ILIKE $2)
		ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, ownerID, pattern)
}

func (r *PGTodoRepo) Overdue(ctx context.Context, ownerID int64, now time.Time) ([]dom.Task, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos WHERE user_id = $1 AND deleted_at IS NULL AND completed = FALSE
			AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date ASC`
	return r.queryTasks(ctx, query, ownerID, now)
}

func (r *PGTodoRepo) queryTasks(ctx context.Context, query string, args ...any) ([]dom.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
