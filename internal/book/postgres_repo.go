package book

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements Repository on a shared pgx connection pool. The
// pool bounds concurrent storage operations; every call carries a deadline
// so pool exhaustion fails instead of blocking indefinitely.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

const defaultTimeout = 3 * time.Second

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: defaultTimeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = "id, title, author, publisher, price, isbn"

// Search returns all books when query is empty, ordered by id so the result
// is stable within a call. A non-empty query matches title or author with a
// %query% pattern via ILIKE: case-insensitive, no Unicode normalization.
// LIKE metacharacters in the query are escaped, so it always matches as a
// literal substring.
func (r *PostgresRepo) Search(ctx context.Context, query string) ([]Book, error) {
	sql := "SELECT " + bookColumns + " FROM books ORDER BY id"
	var args []any
	if query != "" {
		sql = "SELECT " + bookColumns + " FROM books WHERE title ILIKE $1 OR author ILIKE $1 ORDER BY id"
		args = append(args, "%"+escapeLike(query)+"%")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "search books", Err: err}
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Price, &b.ISBN); err != nil {
			return nil, &PersistenceError{Op: "scan book", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "search books", Err: err}
	}
	return out, nil
}

// Create inserts the form as a single atomic statement and returns the fully
// populated row including the assigned id. String fields are trimmed of
// leading/trailing whitespace; business-rule validation is the caller's job.
func (r *PostgresRepo) Create(ctx context.Context, form CreateBookForm) (Book, error) {
	const insertSQL = `
		INSERT INTO books (title, author, publisher, price, isbn)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRow(timeoutCtx, insertSQL,
		strings.TrimSpace(form.Title),
		strings.TrimSpace(form.Author),
		strings.TrimSpace(form.Publisher),
		form.Price,
		strings.TrimSpace(form.ISBN),
	).Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Price, &b.ISBN)
	if err != nil {
		return Book{}, &PersistenceError{Op: "insert book", Err: err}
	}
	return b, nil
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
