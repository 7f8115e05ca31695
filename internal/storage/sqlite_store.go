package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timetable/internal/migration"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := migration.NewRunner(s.db, migrations.SQLite()).Apply(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	ctx := context.Background()
	runner := migration.NewRunner(s.db, migrations.SQLite())
	if err := runner.Validate(ctx); err != nil {
		return err
	}
	// apply migrations added since the file was created
	if _, err := runner.Apply(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

const eventColumns = "id, title, date_from, date_to, group_id, location, notes"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e        models.Event
		from, to string
		groupID  sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Title, &from, &to, &groupID, &e.Location, &e.Notes); err != nil {
		return models.Event{}, err
	}

	var err error
	if e.DateFrom, err = parseTime(from); err != nil {
		return models.Event{}, fmt.Errorf("event %s: invalid date_from %q: %w", e.ID, from, err)
	}
	if e.DateTo, err = parseTime(to); err != nil {
		return models.Event{}, fmt.Errorf("event %s: invalid date_to %q: %w", e.ID, to, err)
	}
	if groupID.Valid {
		e.GroupID = &groupID.String
	}
	return e, nil
}

func (s *SQLiteStore) GetEvent(id string) (models.Event, error) {
	if s.db == nil {
		return models.Event{}, ErrNotLoaded
	}

	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *SQLiteStore) GetAllEvents() ([]models.Event, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT " + eventColumns + " FROM events ORDER BY date_from, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortEvents(events)
	return events, nil
}

// SaveEvents inserts or replaces the events in one transaction, assigning ids to new ones
func (s *SQLiteStore) SaveEvents(events ...*models.Event) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	assignIDs(events)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO events (id, title, date_from, date_to, group_id, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date_from = excluded.date_from,
			date_to = excluded.date_to,
			group_id = excluded.group_id,
			location = excluded.location,
			notes = excluded.notes,
			updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range events {
		if e == nil {
			continue
		}
		var groupID sql.NullString
		if e.GroupID != nil {
			groupID = sql.NullString{String: *e.GroupID, Valid: true}
		}
		_, err := stmt.Exec(e.ID, e.Title, formatTime(e.DateFrom), formatTime(e.DateTo), groupID, e.Location, e.Notes, now, now)
		if err != nil {
			return fmt.Errorf("failed to save event %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeleteEvents(ids ...string) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := s.db.Exec("DELETE FROM events WHERE id IN ("+placeholders+")", args...); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}

// GetConfigPath returns the path of the database file.
// Running several timetable processes against one file at the same time is not supported.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// SchemaVersion reports the applied and the newest embedded migration versions
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, ErrNotLoaded
	}
	runner := migration.NewRunner(s.db, migrations.SQLite())
	if current, err = runner.CurrentVersion(ctx); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}
