// Package review stores tenant-written building reviews in SQLite. Contact
// details are collected on submission for moderation but never leave the
// store through any read path.
package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidSubmission wraps all submission validation failures.
	ErrInvalidSubmission = errors.New("invalid review submission")
	// ErrNotFound is returned when a review id does not exist.
	ErrNotFound = errors.New("review not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS reviews (
	id            TEXT PRIMARY KEY,
	bbl           TEXT NOT NULL,
	rating        INTEGER NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	review        TEXT NOT NULL,
	pros          TEXT NOT NULL DEFAULT '',
	cons          TEXT NOT NULL DEFAULT '',
	lived_here    INTEGER NOT NULL DEFAULT 0,
	years_lived   TEXT NOT NULL DEFAULT '',
	author_name   TEXT NOT NULL DEFAULT 'Anonymous',
	email         TEXT NOT NULL,
	phone         TEXT NOT NULL,
	helpful_count INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_bbl ON reviews (bbl, created_at DESC);
`

// Review is the public shape of a stored review. Email and phone exist only
// in the table.
type Review struct {
	ID           string    `json:"id"`
	BBL          string    `json:"bbl"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title,omitempty"`
	Review       string    `json:"review"`
	Pros         string    `json:"pros,omitempty"`
	Cons         string    `json:"cons,omitempty"`
	LivedHere    bool      `json:"lived_here"`
	YearsLived   string    `json:"years_lived,omitempty"`
	AuthorName   string    `json:"author_name"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submission is an incoming review before validation.
type Submission struct {
	BBL        string `json:"bbl"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Review     string `json:"review"`
	Pros       string `json:"pros"`
	Cons       string `json:"cons"`
	LivedHere  bool   `json:"lived_here"`
	YearsLived string `json:"years_lived"`
	AuthorName string `json:"author_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// Validate applies the submission rules.
func (sub Submission) Validate() error {
	if sub.BBL == "" || sub.Rating == 0 || strings.TrimSpace(sub.Review) == "" {
		return fmt.Errorf("%w: bbl, rating, and review are required", ErrInvalidSubmission)
	}
	if strings.TrimSpace(sub.Email) == "" || strings.TrimSpace(sub.Phone) == "" {
		return fmt.Errorf("%w: email and phone are required", ErrInvalidSubmission)
	}
	if sub.Rating < 1 || sub.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidSubmission)
	}
	if len(strings.TrimSpace(sub.Review)) < 10 {
		return fmt.Errorf("%w: review must be at least 10 characters", ErrInvalidSubmission)
	}
	return nil
}

// Summary is the per-building review rollup.
type Summary struct {
	Reviews       []Review    `json:"reviews"`
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"`
}

// Store is a SQLite-backed review repository.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens (creating if needed) the review database at path.
func Open(path string, clock clockwork.Clock) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open review db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate review db: %w", err)
	}
	return &Store{db: db, clock: clock}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

const publicColumns = "id, bbl, rating, title, review, pros, cons, lived_here, years_lived, author_name, helpful_count, created_at"

// Add validates and stores a submission, returning the public view of the
// created review.
func (s *Store) Add(ctx context.Context, sub Submission) (*Review, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	author := strings.TrimSpace(sub.AuthorName)
	if author == "" {
		author = "Anonymous"
	}
	r := Review{
		ID:         uuid.NewString(),
		BBL:        sub.BBL,
		Rating:     sub.Rating,
		Title:      strings.TrimSpace(sub.Title),
		Review:     strings.TrimSpace(sub.Review),
		Pros:       strings.TrimSpace(sub.Pros),
		Cons:       strings.TrimSpace(sub.Cons),
		LivedHere:  sub.LivedHere,
		YearsLived: strings.TrimSpace(sub.YearsLived),
		AuthorName: author,
		CreatedAt:  s.clock.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, bbl, rating, title, review, pros, cons, lived_here, years_lived, author_name, email, phone, helpful_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		r.ID, r.BBL, r.Rating, r.Title, r.Review, r.Pros, r.Cons, r.LivedHere, r.YearsLived, r.AuthorName,
		strings.TrimSpace(sub.Email), strings.TrimSpace(sub.Phone), r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return &r, nil
}

// ForBuilding returns the newest-first reviews for a parcel with the rating
// rollup.
func (s *Store) ForBuilding(ctx context.Context, bbl string) (*Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+publicColumns+" FROM reviews WHERE bbl = ? ORDER BY created_at DESC", bbl)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	summary := &Summary{
		Reviews:      []Review{},
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	total := 0
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.BBL, &r.Rating, &r.Title, &r.Review, &r.Pros, &r.Cons,
			&r.LivedHere, &r.YearsLived, &r.AuthorName, &r.HelpfulCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		summary.Reviews = append(summary.Reviews, r)
		if r.Rating >= 1 && r.Rating <= 5 {
			summary.Distribution[r.Rating]++
		}
		total += r.Rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	summary.Count = len(summary.Reviews)
	if summary.Count > 0 {
		summary.AverageRating = math.Round(float64(total)/float64(summary.Count)*10) / 10
	}
	return summary, nil
}

// MarkHelpful increments a review's helpful counter.
func (s *Store) MarkHelpful(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE reviews SET helpful_count = helpful_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark helpful: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark helpful: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
