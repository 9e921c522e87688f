package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/internal/model"
)

func result(name string, winner, loser string) *model.GameResult {
	return &model.GameResult{
		Name:       model.GameName(name),
		Winner:     model.Login(winner),
		Loser:      model.Login(loser),
		Moves:      12,
		FinishedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordAndRecent(t *testing.T) {
	archive := New()
	ctx := context.Background()

	require.NoError(t, archive.Record(ctx, result("G1", "alice", "bob")))
	require.NoError(t, archive.Record(ctx, result("G2", "carol", "dave")))

	results, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Most recent first.
	assert.Equal(t, model.GameName("G2"), results[0].Name)
	assert.Equal(t, model.GameName("G1"), results[1].Name)
}

func TestRecentLimits(t *testing.T) {
	archive := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, archive.Record(ctx, result(fmt.Sprintf("G%d", i), "alice", "bob")))
	}

	results, err := archive.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, model.GameName("G4"), results[0].Name)
}

func TestRecentOnEmptyArchive(t *testing.T) {
	results, err := New().Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecordCopiesInput(t *testing.T) {
	archive := New()
	ctx := context.Background()

	r := result("G1", "alice", "bob")
	require.NoError(t, archive.Record(ctx, r))
	r.Winner = "mallory"

	results, err := archive.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Login("alice"), results[0].Winner)
}

func TestConcurrentRecords(t *testing.T) {
	archive := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, archive.Record(ctx, result(fmt.Sprintf("G%d", i), "alice", "bob")))
		}(i)
	}
	wg.Wait()

	results, err := archive.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, results, 20)
}
