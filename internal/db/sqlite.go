package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RichardoC/synxai/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultThreadTitle is used when a thread is created without a title.
const DefaultThreadTitle = "New Thread"

const schema = `
CREATE TABLE IF NOT EXISTS threads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    thread_id INTEGER NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (thread_id) REFERENCES threads (id)
);`

// now is UTC so stored timestamps sort lexically in time order.
func now() time.Time {
	return time.Now().UTC()
}

// Database is the thread and message store backed by one SQLite file.
type Database struct {
	db *sql.DB
}

type options struct {
	foreignKeys bool
}

// Option configures New.
type Option func(*options)

// WithForeignKeys makes SQLite reject messages that reference a missing
// thread. Off by default, so orphaned inserts succeed.
func WithForeignKeys(enabled bool) Option {
	return func(o *options) {
		o.foreignKeys = enabled
	}
}

// New opens dbPath and creates the tables if they do not exist yet.
func New(dbPath string, opts ...Option) (*Database, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	fk := "off"
	if o.foreignKeys {
		fk = "on"
	}
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=%s", dbPath, fk)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the connection pool.
func (db *Database) Close() error {
	return db.db.Close()
}

// ListThreads returns every thread, newest first.
func (db *Database) ListThreads(ctx context.Context) ([]models.Thread, error) {
	query := `
        SELECT id, title, created_at
        FROM threads
        ORDER BY created_at DESC, id DESC`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	threads := make([]models.Thread, 0)
	for rows.Next() {
		var t models.Thread
		if err := rows.Scan(&t.ID, &t.Title, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return threads, nil
}

// CreateThread inserts a thread. A nil title means none was given and
// DefaultThreadTitle is used; anything else, "" included, is stored as is.
func (db *Database) CreateThread(ctx context.Context, title *string) (*models.Thread, error) {
	name := DefaultThreadTitle
	if title != nil {
		name = *title
	}

	query := `
        INSERT INTO threads (title, created_at)
        VALUES (?, ?)`

	t := &models.Thread{Title: name, CreatedAt: now()}
	res, err := db.db.ExecContext(ctx, query, t.Title, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return t, nil
}

// ListMessages returns a thread's messages in insertion order. An unknown
// thread yields an empty slice, not an error.
func (db *Database) ListMessages(ctx context.Context, threadID int64) ([]models.Message, error) {
	query := `
        SELECT id, thread_id, role, content, timestamp
        FROM messages
        WHERE thread_id = ?
        ORDER BY timestamp ASC, id ASC`

	rows, err := db.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// SaveMessage appends msg to its thread and fills in ID and Timestamp.
func (db *Database) SaveMessage(ctx context.Context, msg *models.Message) error {
	query := `
        INSERT INTO messages (thread_id, role, content, timestamp)
        VALUES (?, ?, ?, ?)`

	ts := now()
	res, err := db.db.ExecContext(ctx, query, msg.ThreadID, msg.Role, msg.Content, ts)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	msg.ID, msg.Timestamp = id, ts
	return nil
}
