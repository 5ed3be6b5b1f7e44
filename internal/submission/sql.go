package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// SQLStore keeps submissions in the SQLite submissions table.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time

	mu sync.Mutex
}

// NewSQLStore creates a store over an opened database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Create implements Store.
func (s *SQLStore) Create(ctx context.Context, p Payload) (*Submission, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxExisting int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM submissions").Scan(&maxExisting); err != nil {
		return nil, fmt.Errorf("reading max id: %w", err)
	}

	now := s.now()
	sub := build(p, nextID(now, maxExisting), now)

	activities, err := json.Marshal(sub.Activities)
	if err != nil {
		return nil, fmt.Errorf("encoding activities: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO submissions (id, selected_date, phone_number, activities, activity_description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.SelectedDate, sub.PhoneNumber, string(activities), sub.ActivityDescription, sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing submission: %w", err)
	}

	return sub, nil
}

// ListAll implements Store.
func (s *SQLStore) ListAll(ctx context.Context) (subs []*Submission, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, selected_date, phone_number, activities, activity_description, created_at
		 FROM submissions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	subs = []*Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}

	return subs, nil
}

// GetByID implements Store.
func (s *SQLStore) GetByID(ctx context.Context, id int64) (*Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, selected_date, phone_number, activities, activity_description, created_at
		 FROM submissions WHERE id = ?`, id,
	)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sub, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*Submission, error) {
	var sub Submission
	var activities string
	err := row.Scan(&sub.ID, &sub.SelectedDate, &sub.PhoneNumber, &activities, &sub.ActivityDescription, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning submission: %w", err)
	}

	if err := json.Unmarshal([]byte(activities), &sub.Activities); err != nil {
		return nil, fmt.Errorf("decoding activities for %d: %w", sub.ID, err)
	}
	if sub.Activities == nil {
		sub.Activities = []string{}
	}
	sub.CreatedAt = sub.CreatedAt.UTC()

	return &sub, nil
}
