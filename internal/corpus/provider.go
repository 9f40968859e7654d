// Package corpus enumerates the documents an index is built from. A Provider
// yields (id, text) pairs in a fixed, provider-defined order and reports read
// failures as errors matching pkg/errors.ErrIO.
package corpus

import (
	"context"
	"fmt"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

// Document is one unit of the corpus. Text is owned by the provider and is
// not retained by the index after normalization.
type Document struct {
	ID   string
	Text string
}

// WalkFunc receives each document. Returning an error stops the walk and the
// provider returns that error unchanged.
type WalkFunc func(doc Document) error

// Provider enumerates a snapshot of the corpus.
type Provider interface {
	Walk(ctx context.Context, fn WalkFunc) error
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, fn WalkFunc) error

func (f ProviderFunc) Walk(ctx context.Context, fn WalkFunc) error { return f(ctx, fn) }

// Memory is an ordered in-memory corpus, mostly useful as a fixture.
type Memory struct {
	docs []Document
}

func NewMemory(docs ...Document) *Memory {
	return &Memory{docs: docs}
}

// FromMap builds a Memory corpus from id -> text, ordered by the ids given.
func FromMap(texts map[string]string, order ...string) *Memory {
	docs := make([]Document, 0, len(order))
	for _, id := range order {
		docs = append(docs, Document{ID: id, Text: texts[id]})
	}
	return NewMemory(docs...)
}

func (m *Memory) Walk(ctx context.Context, fn WalkFunc) error {
	for _, doc := range m.docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrIO, op, err)
}
