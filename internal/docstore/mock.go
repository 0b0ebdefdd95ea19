package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/miltrack/miltrack/internal/logging"
)

// watcher buffers a few snapshots so slow consumers never block mutations.
const watchBuffer = 8

type docWatcher struct {
	sub *Subscription
}

type queryWatcher struct {
	sub *QuerySubscription
	q   Query
}

// MockStore is the in-memory stand-in for a real document store, used for
// local development and tests. State is a collection→id→document map with
// JSON round-trip serialization, simulated latency, and deterministic seed
// data. Concurrent mutations resolve last-write-wins by completion order;
// that is an accepted mock limitation, not part of the Store contract.
type MockStore struct {
	mu            sync.Mutex
	data          map[string]map[string]Document
	docWatchers   map[string]map[int]*docWatcher
	queryWatchers map[string]map[int]*queryWatcher
	nextWatcherID int

	latencyUnit time.Duration
	logger      logging.Logger
}

var _ Store = (*MockStore)(nil)

// NewMockStore constructs a MockStore with the development seed data.
// latencyUnit scales the simulated network delay (100ms gives realistic
// development delays; 0 disables sleeping).
func NewMockStore(latencyUnit time.Duration, logger logging.Logger) *MockStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &MockStore{
		data:          make(map[string]map[string]Document),
		docWatchers:   make(map[string]map[int]*docWatcher),
		queryWatchers: make(map[string]map[int]*queryWatcher),
		latencyUnit:   latencyUnit,
		logger:        logger,
	}
	s.seed()
	return s
}

func (s *MockStore) seed() {
	now := float64(time.Now().Unix())
	s.data["users"] = map[string]Document{
		"mock-user": {
			"id":          "mock-user",
			"email":       "test@example.com",
			"displayName": "Test User",
			"branch":      "Army",
			"rank":        "E-4",
			"unit":        "1st Battalion",
			"createdAt":   now,
			"updatedAt":   now,
		},
	}
	s.data["fitness"] = map[string]Document{
		"workout-1": {
			"id":     "workout-1",
			"userId": "mock-user",
			"type":   "PT Test",
			"date":   now,
			"score":  float64(85),
			"notes":  "Great performance today!",
		},
	}
}

func (s *MockStore) simulate(ctx context.Context, units int) error {
	d := time.Duration(units) * s.latencyUnit
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func copyDoc(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (s *MockStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	s.logger.Debug(ctx, "mock create document", "collection", collection)

	if err := s.simulate(ctx, 5); err != nil {
		return "", err
	}

	stored, err := Encode(doc)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.mu.Lock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]Document)
	}
	s.data[collection][id] = stored
	s.notifyLocked(collection, id)
	s.mu.Unlock()

	return id, nil
}

func (s *MockStore) Read(ctx context.Context, collection, id string) (Document, bool, error) {
	s.logger.Debug(ctx, "mock read document", "collection", collection, "id", id)

	if err := s.simulate(ctx, 3); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, false, nil
	}
	return copyDoc(doc), true, nil
}

func (s *MockStore) Update(ctx context.Context, collection, id string, doc any) error {
	s.logger.Debug(ctx, "mock update document", "collection", collection, "id", id)

	if err := s.simulate(ctx, 5); err != nil {
		return err
	}

	stored, err := Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return ErrDocumentNotFound
	}
	s.data[collection][id] = stored
	s.notifyLocked(collection, id)
	return nil
}

func (s *MockStore) Delete(ctx context.Context, collection, id string) error {
	s.logger.Debug(ctx, "mock delete document", "collection", collection, "id", id)

	if err := s.simulate(ctx, 3); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.data[collection], id)
	s.notifyLocked(collection, id)
	return nil
}

func (s *MockStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.logger.Debug(ctx, "mock query", "collection", collection)

	if err := s.simulate(ctx, 4); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(collection, q), nil
}

func (s *MockStore) findLocked(collection string, q Query) []Document {
	results := make([]Document, 0)
	for _, doc := range s.data[collection] {
		if matches(doc, q.Filters()) {
			results = append(results, copyDoc(doc))
		}
	}

	if field, desc := q.Order(); field != "" {
		sort.SliceStable(results, func(i, j int) bool {
			c, ok := compareValues(results[i][field], results[j][field])
			if !ok {
				return false
			}
			if desc {
				return c > 0
			}
			return c < 0
		})
	} else {
		// map iteration is random; settle on id order so results are stable
		sort.SliceStable(results, func(i, j int) bool {
			a, _ := results[i]["id"].(string)
			b, _ := results[j]["id"].(string)
			return a < b
		})
	}

	if n := q.Max(); n > 0 && len(results) > n {
		results = results[:n]
	}
	return results
}

// WatchDocument delivers the document's current snapshot after a simulated
// subscription delay, then again after every mutation, until cancelled.
func (s *MockStore) WatchDocument(ctx context.Context, collection, id string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := collection + "/" + id
	wid := s.nextWatcherID
	s.nextWatcherID++

	var sub *Subscription
	sub = newSubscription(watchBuffer, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ws, ok := s.docWatchers[key]; ok {
			if _, present := ws[wid]; present {
				delete(ws, wid)
				close(sub.updates)
			}
		}
	})

	if s.docWatchers[key] == nil {
		s.docWatchers[key] = make(map[int]*docWatcher)
	}
	s.docWatchers[key][wid] = &docWatcher{sub: sub}

	go func() {
		if err := s.simulate(ctx, 10); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, present := s.docWatchers[key][wid]; !present {
			return
		}
		s.sendSnapshotLocked(sub, collection, id)
	}()

	return sub, nil
}

// WatchQuery delivers the query's current result set after a simulated
// subscription delay, then again after every mutation in the collection,
// until cancelled.
func (s *MockStore) WatchQuery(ctx context.Context, collection string, q Query) (*QuerySubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wid := s.nextWatcherID
	s.nextWatcherID++

	var sub *QuerySubscription
	sub = newQuerySubscription(watchBuffer, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ws, ok := s.queryWatchers[collection]; ok {
			if _, present := ws[wid]; present {
				delete(ws, wid)
				close(sub.updates)
			}
		}
	})

	if s.queryWatchers[collection] == nil {
		s.queryWatchers[collection] = make(map[int]*queryWatcher)
	}
	s.queryWatchers[collection][wid] = &queryWatcher{sub: sub, q: q}

	go func() {
		if err := s.simulate(ctx, 10); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		w, present := s.queryWatchers[collection][wid]
		if !present {
			return
		}
		s.sendResultsLocked(w, collection)
	}()

	return sub, nil
}

// notifyLocked pushes fresh state to every watcher affected by a mutation
// of collection/id. Caller holds s.mu.
func (s *MockStore) notifyLocked(collection, id string) {
	key := collection + "/" + id
	for _, w := range s.docWatchers[key] {
		s.sendSnapshotLocked(w.sub, collection, id)
	}
	for _, w := range s.queryWatchers[collection] {
		s.sendResultsLocked(w, collection)
	}
}

func (s *MockStore) sendSnapshotLocked(sub *Subscription, collection, id string) {
	snap := Snapshot{ID: id}
	if doc, ok := s.data[collection][id]; ok {
		snap.Exists = true
		snap.Data = copyDoc(doc)
	}
	select {
	case sub.updates <- snap:
	default:
	}
}

func (s *MockStore) sendResultsLocked(w *queryWatcher, collection string) {
	select {
	case w.sub.updates <- s.findLocked(collection, w.q):
	default:
	}
}
