package review_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/review"
)

func newTestStore(t *testing.T) (*review.Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	store, err := review.Open(filepath.Join(t.TempDir(), "reviews.db"), clock)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, clock
}

func validSubmission() review.Submission {
	return review.Submission{
		BBL:        "1000477501",
		Rating:     4,
		Review:     "Solid building, responsive super, occasional heat issues in winter.",
		AuthorName: "Jordan",
		Email:      "jordan@example.com",
		Phone:      "555-0100",
	}
}

func TestAddAndFetchReviews(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, validSubmission())
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, clock.Now().UTC(), first.CreatedAt)

	clock.Advance(time.Hour)
	sub := validSubmission()
	sub.Rating = 2
	sub.AuthorName = ""
	second, err := store.Add(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", second.AuthorName)

	summary, err := store.ForBuilding(ctx, "1000477501")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	// Newest first.
	assert.Equal(t, second.ID, summary.Reviews[0].ID)
	assert.Equal(t, 3.0, summary.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 1, 5: 0}, summary.Distribution)
}

func TestAverageRatingRoundsToOneDecimal(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4} {
		sub := validSubmission()
		sub.Rating = rating
		_, err := store.Add(ctx, sub)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	summary, err := store.ForBuilding(ctx, "1000477501")
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.AverageRating)
}

func TestForBuildingEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	summary, err := store.ForBuilding(context.Background(), "4000000001")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Zero(t, summary.AverageRating)
	assert.NotNil(t, summary.Reviews)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, summary.Distribution)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*review.Submission)
	}{
		{"missing bbl", func(s *review.Submission) { s.BBL = "" }},
		{"missing rating", func(s *review.Submission) { s.Rating = 0 }},
		{"missing review", func(s *review.Submission) { s.Review = "   " }},
		{"missing email", func(s *review.Submission) { s.Email = "" }},
		{"missing phone", func(s *review.Submission) { s.Phone = "" }},
		{"rating too high", func(s *review.Submission) { s.Rating = 6 }},
		{"review too short", func(s *review.Submission) { s.Review = "too short" }},
	}
	store, _ := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			_, err := store.Add(context.Background(), sub)
			assert.ErrorIs(t, err, review.ErrInvalidSubmission)
		})
	}
}

func TestContactDetailsNeverSerialized(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Add(context.Background(), validSubmission())
	require.NoError(t, err)

	raw, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "jordan@example.com")
	assert.NotContains(t, string(raw), "555-0100")

	summary, err := store.ForBuilding(context.Background(), "1000477501")
	require.NoError(t, err)
	raw, err = json.Marshal(summary)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "jordan@example.com")
	assert.NotContains(t, string(raw), "555-0100")
}

func TestMarkHelpful(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Add(ctx, validSubmission())
	require.NoError(t, err)

	require.NoError(t, store.MarkHelpful(ctx, created.ID))
	require.NoError(t, store.MarkHelpful(ctx, created.ID))

	summary, err := store.ForBuilding(ctx, "1000477501")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Reviews[0].HelpfulCount)
}

func TestMarkHelpfulUnknownID(t *testing.T) {
	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.MarkHelpful(context.Background(), "nope"), review.ErrNotFound)
}
