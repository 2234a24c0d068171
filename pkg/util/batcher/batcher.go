package batcher

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

var ErrClosed = xerrors.New("batcher is closed")

// Batcher accumulates values and hands them to pusher in batches bounded by
// count and, when sizeOf is set, by total size. A single value larger than
// maxBytes is pushed alone. Batcher is not safe for concurrent use.
type Batcher[T any] struct {
	maxCount int
	maxBytes uint64
	sizeOf   func(T) uint64
	pusher   func([]T) error

	pending      []T
	pendingBytes uint64
	closed       bool
}

// NewBatcher creates a count bounded batcher. maxCount < 1 disables buffering.
func NewBatcher[T any](maxCount int, pusher func([]T) error) *Batcher[T] {
	return NewSizedBatcher(maxCount, 0, nil, pusher)
}

func NewSizedBatcher[T any](maxCount int, maxBytes uint64, sizeOf func(T) uint64, pusher func([]T) error) *Batcher[T] {
	return &Batcher[T]{
		maxCount:     maxCount,
		maxBytes:     maxBytes,
		sizeOf:       sizeOf,
		pusher:       pusher,
		pending:      nil,
		pendingBytes: 0,
		closed:       false,
	}
}

func (b *Batcher[T]) Len() int {
	return len(b.pending)
}

func (b *Batcher[T]) Bytes() uint64 {
	return b.pendingBytes
}

// Append adds values and pushes every batch that becomes full.
// On push failure the failed batch is dropped from the buffer and the error returned.
func (b *Batcher[T]) Append(values []T) error {
	if b.closed {
		return ErrClosed
	}
	if b.maxCount < 1 {
		if len(values) == 0 {
			return nil
		}
		if err := b.pusher(values); err != nil {
			return xerrors.Errorf("unbuffered push of %d values failed: %w", len(values), err)
		}
		return nil
	}
	for _, v := range values {
		size := b.size(v)
		if b.maxBytes > 0 && len(b.pending) > 0 && b.pendingBytes+size > b.maxBytes {
			if err := b.push(); err != nil {
				return err
			}
		}
		b.pending = append(b.pending, v)
		b.pendingBytes += size
		if len(b.pending) >= b.maxCount || (b.maxBytes > 0 && b.pendingBytes >= b.maxBytes) {
			if err := b.push(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush pushes whatever is buffered, even a partial batch.
func (b *Batcher[T]) Flush() error {
	if b.closed {
		return ErrClosed
	}
	if len(b.pending) == 0 {
		return nil
	}
	return b.push()
}

// Close drops buffered values, later calls fail with ErrClosed.
func (b *Batcher[T]) Close() {
	b.closed = true
	b.pending = nil
	b.pendingBytes = 0
}

func (b *Batcher[T]) FlushAndClose() error {
	err := b.Flush()
	b.Close()
	return err
}

func (b *Batcher[T]) push() error {
	batch := b.pending
	b.pending = nil
	b.pendingBytes = 0
	if err := b.pusher(batch); err != nil {
		return xerrors.Errorf("push of %d values failed: %w", len(batch), err)
	}
	return nil
}

func (b *Batcher[T]) size(v T) uint64 {
	if b.sizeOf == nil {
		return 0
	}
	return b.sizeOf(v)
}
