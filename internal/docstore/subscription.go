package docstore

import "sync"

// Snapshot is the state of a single document at a point in time. Exists is
// false when the document has been deleted (or never existed); Data is nil
// in that case.
type Snapshot struct {
	ID     string
	Exists bool
	Data   Document
}

// Subscription is a live, cancellable stream of single-document snapshots.
// Updates is closed after Cancel; Cancel is safe to call more than once and
// releases any backend-held resources.
type Subscription struct {
	updates  chan Snapshot
	stop     func()
	stopOnce sync.Once
}

func newSubscription(buffer int, stop func()) *Subscription {
	return &Subscription{updates: make(chan Snapshot, buffer), stop: stop}
}

// Updates returns the snapshot stream.
func (s *Subscription) Updates() <-chan Snapshot { return s.updates }

// Cancel stops delivery and releases backend resources.
func (s *Subscription) Cancel() {
	s.stopOnce.Do(s.stop)
}

// QuerySubscription is a live, cancellable stream of filtered collection
// states: each element is the full current result set of the query.
type QuerySubscription struct {
	updates  chan []Document
	stop     func()
	stopOnce sync.Once
}

func newQuerySubscription(buffer int, stop func()) *QuerySubscription {
	return &QuerySubscription{updates: make(chan []Document, buffer), stop: stop}
}

// Updates returns the result-set stream.
func (s *QuerySubscription) Updates() <-chan []Document { return s.updates }

// Cancel stops delivery and releases backend resources.
func (s *QuerySubscription) Cancel() {
	s.stopOnce.Do(s.stop)
}
