package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *MockStore {
	return NewMockStore(0, nil)
}

func TestMockCreateReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	doc := map[string]any{"title": "PT Schedule", "reps": float64(12), "done": false}

	id, err := s.Create(ctx, "workouts", doc)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, found, err := s.Read(ctx, "workouts", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Document(doc), got)
}

func TestMockCreateEncodesStructs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	type workout struct {
		Title string `json:"title"`
		Reps  int    `json:"reps"`
	}

	id, err := s.Create(ctx, "workouts", workout{Title: "Ruck March", Reps: 1})
	require.NoError(t, err)

	got, found, err := ReadAs[workout](ctx, s, "workouts", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, workout{Title: "Ruck March", Reps: 1}, got)
}

func TestMockCreateRejectsUnencodableData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Create(ctx, "workouts", map[string]any{"fn": func() {}})
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestMockReadMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, found, err := s.Read(ctx, "workouts", "no-such-id")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMockReadAsMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	type workout struct{}
	_, found, err := ReadAs[workout](ctx, s, "workouts", "no-such-id")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMockUpdateReplacesDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Create(ctx, "workouts", map[string]any{"title": "Run", "km": float64(5)})
	require.NoError(t, err)

	err = s.Update(ctx, "workouts", id, map[string]any{"title": "Swim"})
	require.NoError(t, err)

	got, found, err := s.Read(ctx, "workouts", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Document{"title": "Swim"}, got)
	_, hasKm := got["km"]
	assert.False(t, hasKm)
}

func TestMockUpdateMissingDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	err := s.Update(ctx, "workouts", "no-such-id", map[string]any{"title": "Swim"})
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMockDeleteIsOneShot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Create(ctx, "workouts", map[string]any{"title": "Run"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "workouts", id))

	_, found, err := s.Read(ctx, "workouts", id)
	require.NoError(t, err)
	assert.False(t, found)

	err = s.Delete(ctx, "workouts", id)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMockSeedData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	doc, found, err := s.Read(ctx, "users", "mock-user")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "test@example.com", doc["email"])
}

func TestMockFindFiltersSortsAndLimits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	for _, w := range []map[string]any{
		{"name": "a", "score": float64(10)},
		{"name": "b", "score": float64(30)},
		{"name": "c", "score": float64(20)},
		{"name": "d", "score": float64(5)},
	} {
		_, err := s.Create(ctx, "scores", w)
		require.NoError(t, err)
	}

	q := NewQuery().
		WhereGreaterThan("score", float64(5)).
		OrderBy("score", true).
		Limit(2)

	results, err := s.Find(ctx, "scores", q)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0]["name"])
	assert.Equal(t, "c", results[1]["name"])
}

func TestMockFindMissingFieldNeverMatches(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Create(ctx, "scores", map[string]any{"name": "no-score"})
	require.NoError(t, err)

	results, err := s.Find(ctx, "scores", NewQuery().WhereEqual("score", float64(0)))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMockFindNumericEquality(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Create(ctx, "scores", map[string]any{"score": float64(85)})
	require.NoError(t, err)

	// Callers routinely filter with int literals against decoded floats.
	results, err := s.Find(ctx, "scores", NewQuery().WhereEqual("score", 85))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMockWatchDocumentInitialSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Create(ctx, "workouts", map[string]any{"title": "Run"})
	require.NoError(t, err)

	sub, err := s.WatchDocument(ctx, "workouts", id)
	require.NoError(t, err)
	defer sub.Cancel()

	snap := <-sub.Updates()
	assert.Equal(t, id, snap.ID)
	assert.True(t, snap.Exists)
	assert.Equal(t, Document{"title": "Run"}, snap.Data)
}

func TestMockWatchDocumentSeesMutations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Create(ctx, "workouts", map[string]any{"title": "Run"})
	require.NoError(t, err)

	sub, err := s.WatchDocument(ctx, "workouts", id)
	require.NoError(t, err)
	defer sub.Cancel()

	<-sub.Updates() // initial

	require.NoError(t, s.Update(ctx, "workouts", id, map[string]any{"title": "Swim"}))
	snap := <-sub.Updates()
	assert.True(t, snap.Exists)
	assert.Equal(t, "Swim", snap.Data["title"])

	require.NoError(t, s.Delete(ctx, "workouts", id))
	snap = <-sub.Updates()
	assert.False(t, snap.Exists)
	assert.Nil(t, snap.Data)
}

func TestMockWatchDocumentCancelStopsDelivery(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Create(ctx, "workouts", map[string]any{"title": "Run"})
	require.NoError(t, err)

	sub, err := s.WatchDocument(ctx, "workouts", id)
	require.NoError(t, err)

	<-sub.Updates()
	sub.Cancel()
	sub.Cancel() // idempotent

	_, open := <-sub.Updates()
	assert.False(t, open)

	// Mutating after cancel must not panic on a closed channel.
	require.NoError(t, s.Update(ctx, "workouts", id, map[string]any{"title": "Swim"}))
}

func TestMockWatchesAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Create(ctx, "workouts", map[string]any{"title": "Run"})
	require.NoError(t, err)

	a, err := s.WatchDocument(ctx, "workouts", id)
	require.NoError(t, err)
	b, err := s.WatchDocument(ctx, "workouts", id)
	require.NoError(t, err)
	defer b.Cancel()

	<-a.Updates()
	<-b.Updates()

	a.Cancel()

	require.NoError(t, s.Update(ctx, "workouts", id, map[string]any{"title": "Swim"}))

	select {
	case snap := <-b.Updates():
		assert.Equal(t, "Swim", snap.Data["title"])
	case <-time.After(time.Second):
		t.Fatal("surviving watch received no update")
	}
}

func TestMockWatchQueryPushesResultSets(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Create(ctx, "scores", map[string]any{"name": "a", "score": float64(10)})
	require.NoError(t, err)

	sub, err := s.WatchQuery(ctx, "scores", NewQuery().WhereGreaterThan("score", float64(5)))
	require.NoError(t, err)
	defer sub.Cancel()

	initial := <-sub.Updates()
	require.Len(t, initial, 1)

	_, err = s.Create(ctx, "scores", map[string]any{"name": "b", "score": float64(20)})
	require.NoError(t, err)

	next := <-sub.Updates()
	assert.Len(t, next, 2)
}

func TestMockHonorsContextCancellation(t *testing.T) {
	s := newTestStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, "workouts", map[string]any{"title": "Run"})
	require.ErrorIs(t, err, context.Canceled)
}
