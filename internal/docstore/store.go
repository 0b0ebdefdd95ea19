// Package docstore defines the document-store capability: generic CRUD over
// named collections, filtered queries, and live subscriptions, with a mock
// in-memory implementation and a MongoDB implementation.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Closed error set for the capability. Implementations map every
// backend-specific failure into one of these (or wrap an unknown message).
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidData      = errors.New("invalid data format")
	ErrNetwork          = errors.New("network error, check your connection")
	ErrPermissionDenied = errors.New("permission denied")
)

// Document is the wire form of a stored value: whatever survives the
// store's serialization round trip.
type Document = map[string]any

// Store is the document-store capability.
//
// Contract:
//   - Create generates and returns a new unique document identifier.
//   - Read reports absence via the bool, not an error.
//   - Update and Delete fail with ErrDocumentNotFound for absent ids;
//     Delete is one-shot, not idempotent.
//   - Find applies the query's filters, ordering, and limit.
//   - WatchDocument and WatchQuery deliver snapshots until cancelled;
//     cancelling one subscription never affects another.
type Store interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Read(ctx context.Context, collection, id string) (Document, bool, error)
	Update(ctx context.Context, collection, id string, doc any) error
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	WatchDocument(ctx context.Context, collection, id string) (*Subscription, error)
	WatchQuery(ctx context.Context, collection string, q Query) (*QuerySubscription, error)
}

// Encode converts an arbitrary value into its stored Document form. Values
// that cannot round-trip the serialization fail with ErrInvalidData.
func Encode(doc any) (Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, ErrInvalidData
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, ErrInvalidData
	}
	return out, nil
}

// Decode converts a stored Document back into a typed value.
func Decode[T any](d Document) (T, error) {
	var out T
	data, err := json.Marshal(d)
	if err != nil {
		return out, ErrInvalidData
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, ErrInvalidData
	}
	return out, nil
}

// ReadAs reads a document and decodes it into T. Absence is reported via
// the bool, matching Store.Read.
func ReadAs[T any](ctx context.Context, s Store, collection, id string) (T, bool, error) {
	var zero T
	doc, found, err := s.Read(ctx, collection, id)
	if err != nil || !found {
		return zero, found, err
	}
	out, err := Decode[T](doc)
	if err != nil {
		return zero, true, err
	}
	return out, true, nil
}

// FindAs runs a query and decodes every result into T.
func FindAs[T any](ctx context.Context, s Store, collection string, q Query) ([]T, error) {
	docs, err := s.Find(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := Decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
