package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

func TestPostgresWindowRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	repo := NewPostgresWindowRepository(db)
	ctx := context.Background()

	var firstID string

	t.Run("Create opens a window", func(t *testing.T) {
		w, err := repo.Create(ctx, "wh-1", "s-1", day("2025-06-02"))
		require.NoError(t, err)
		assert.Equal(t, "2025-W23", w.ISOWeekKey)
		firstID = w.ID

		fetched, err := repo.GetByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, day("2025-06-02"), fetched.StartDate)
		assert.True(t, fetched.IsOpen())
	})

	t.Run("Second open window conflicts", func(t *testing.T) {
		_, err := repo.Create(ctx, "wh-1", "s-1", day("2025-06-09"))
		assert.ErrorIs(t, err, domain.ErrWindowAlreadyOpen)
	})

	t.Run("Close validates the range", func(t *testing.T) {
		_, err := repo.Close(ctx, firstID, day("2025-06-09"))
		assert.ErrorIs(t, err, domain.ErrWindowTooLong)

		_, err = repo.Close(ctx, firstID, day("2025-06-01"))
		assert.ErrorIs(t, err, domain.ErrEndBeforeStart)

		closed, err := repo.Close(ctx, firstID, day("2025-06-08"))
		require.NoError(t, err)
		assert.Equal(t, day("2025-06-08"), *closed.EndDate)

		_, err = repo.Close(ctx, firstID, day("2025-06-07"))
		assert.ErrorIs(t, err, domain.ErrWindowNotFound)
	})

	t.Run("Start inside a closed window overlaps", func(t *testing.T) {
		_, err := repo.Create(ctx, "wh-1", "s-1", day("2025-06-05"))
		assert.ErrorIs(t, err, domain.ErrWindowOverlaps)
	})

	t.Run("List and GetOpen", func(t *testing.T) {
		open, err := repo.GetOpen(ctx, "wh-1", "s-1")
		require.NoError(t, err)
		assert.Nil(t, open)

		second, err := repo.Create(ctx, "wh-1", "s-1", day("2025-06-09"))
		require.NoError(t, err)

		open, err = repo.GetOpen(ctx, "wh-1", "s-1")
		require.NoError(t, err)
		assert.Equal(t, second.ID, open.ID)

		list, err := repo.List(ctx, "wh-1", "s-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, firstID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)
	})

	t.Run("FinalizeSeason clamps the end date and blocks writes", func(t *testing.T) {
		closed, err := repo.FinalizeSeason(ctx, "s-1", day("2025-07-01"), day("2025-07-01"))
		require.NoError(t, err)
		require.Len(t, closed, 1)
		assert.Equal(t, day("2025-06-15"), *closed[0].EndDate)

		_, err = repo.Create(ctx, "wh-1", "s-1", day("2025-06-16"))
		assert.ErrorIs(t, err, domain.ErrSeasonFinalized)

		_, err = repo.Close(ctx, closed[0].ID, day("2025-06-14"))
		assert.ErrorIs(t, err, domain.ErrSeasonFinalized)

		again, err := repo.FinalizeSeason(ctx, "s-1", day("2025-07-02"), day("2025-07-02"))
		require.NoError(t, err)
		assert.Empty(t, again)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPostgresWindowRepository_FinalizeStopsBeforeClosedWindow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	repo := NewPostgresWindowRepository(db)
	ctx := context.Background()

	later, err := repo.Create(ctx, "wh-1", "s-1", day("2025-06-09"))
	require.NoError(t, err)
	_, err = repo.Close(ctx, later.ID, day("2025-06-15"))
	require.NoError(t, err)
	earlier, err := repo.Create(ctx, "wh-1", "s-1", day("2025-06-05"))
	require.NoError(t, err)

	closed, err := repo.FinalizeSeason(ctx, "s-1", day("2025-06-12"), day("2025-06-12"))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, earlier.ID, closed[0].ID)
	assert.Equal(t, day("2025-06-08"), *closed[0].EndDate)

	list, err := repo.List(ctx, "wh-1", "s-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].OverlapsRange(list[1].StartDate, *list[1].EndDate), "closed windows overlap")
}

func TestPostgresWindowRepository_FinalizeRacesCreate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresWindowRepository(db)
	seasons := NewPostgresSeasonRepository(db)
	ctx := context.Background()

	for round := 0; round < 10; round++ {
		cleanup(t, db)

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, _ = repo.Create(ctx, "wh-1", "s-1", day("2025-06-02"))
		}()
		go func() {
			defer wg.Done()
			<-start
			_, _ = repo.FinalizeSeason(ctx, "s-1", day("2025-06-04"), day("2025-06-04"))
		}()
		close(start)
		wg.Wait()

		finalized, err := seasons.IsFinalized(ctx, "s-1")
		require.NoError(t, err)
		require.True(t, finalized)
		open, err := repo.GetOpen(ctx, "wh-1", "s-1")
		require.NoError(t, err)
		assert.Nil(t, open, "finalized season kept an open window")
	}
}

func TestPostgresWindowRepository_ConcurrentCreate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	repo := NewPostgresWindowRepository(db)
	ctx := context.Background()

	const callers = 10
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, "wh-race", "s-race", day("2025-06-02"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, created)
}

func TestPostgresSeasonRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	repo := NewPostgresSeasonRepository(db)
	ctx := context.Background()

	finalized, err := repo.IsFinalized(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, finalized)

	s, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, s.Finalized)

	at := day("2025-06-20")
	require.NoError(t, repo.Finalize(ctx, "s-1", at))
	require.NoError(t, repo.Finalize(ctx, "s-1", at.AddDate(0, 0, 1)))

	s, err = repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, s.Finalized)
	require.NotNil(t, s.FinalizedAt)
	assert.True(t, at.Equal(*s.FinalizedAt))
}
