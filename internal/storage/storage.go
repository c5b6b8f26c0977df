package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"kadai/internal/task"
)

// tasksKey is the single slot the task collection is stored under.
const tasksKey = "tasks"

// Persistor saves and loads the whole task collection.
type Persistor interface {
	Save([]task.Task) error
	Load() ([]task.Task, error)
}

// SQLite keeps the serialized collection in a one-table key-value slot.
type SQLite struct {
	db  *sql.DB
	log *zap.Logger
}

func Open(dbPath string, log *zap.Logger) (*SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, log: log}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLite) Save(ts []task.Task) error {
	data, err := encodeTasks(ts)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		tasksKey, data)
	return err
}

// Load reads the slot. A missing or undecodable value yields an empty
// collection, never an error.
func (s *SQLite) Load() ([]task.Task, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?;`, tasksKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeTasks(data, s.log), nil
}

func encodeTasks(ts []task.Task) ([]byte, error) {
	if ts == nil {
		ts = []task.Task{}
	}
	return json.Marshal(ts)
}

func decodeTasks(data []byte, log *zap.Logger) []task.Task {
	var ts []task.Task
	if err := json.Unmarshal(data, &ts); err != nil {
		log.Warn("stored task collection is corrupt, starting empty", zap.Error(err))
		return nil
	}
	return ts
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
