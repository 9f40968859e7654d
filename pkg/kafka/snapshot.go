// Package kafka reads point-in-time snapshots of a single topic partition with
// segmentio/kafka-go. A snapshot covers every message from the partition's
// first retained offset up to the high-water mark observed when the read
// starts; messages produced afterwards are not included.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
)

const defaultReadIdleTimeout = 5 * time.Second

// Record is one message of a snapshot.
type Record struct {
	Key    []byte
	Value  []byte
	Offset int64
}

// RecordHandler is invoked for each record, in offset order.
type RecordHandler func(rec Record) error

// SnapshotReader reads bounded snapshots of cfg.Topic/cfg.Partition.
type SnapshotReader struct {
	cfg    config.KafkaConfig
	logger *slog.Logger
}

// NewSnapshotReader creates a reader for the configured topic partition.
func NewSnapshotReader(cfg config.KafkaConfig) *SnapshotReader {
	return &SnapshotReader{
		cfg:    cfg,
		logger: slog.Default().With("component", "kafka-snapshot", "topic", cfg.Topic),
	}
}

// Offsets returns the first retained offset and the high-water mark.
func (s *SnapshotReader) Offsets(ctx context.Context) (first, last int64, err error) {
	if len(s.cfg.Brokers) == 0 {
		return 0, 0, fmt.Errorf("no kafka brokers configured")
	}
	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.DialTimeout)
	defer cancel()
	conn, err := kafka.DialLeader(dialCtx, "tcp", s.cfg.Brokers[0], s.cfg.Topic, s.cfg.Partition)
	if err != nil {
		return 0, 0, fmt.Errorf("dialing partition leader: %w", err)
	}
	defer conn.Close()
	first, last, err = conn.ReadOffsets()
	if err != nil {
		return 0, 0, fmt.Errorf("reading partition offsets: %w", err)
	}
	return first, last, nil
}

// ReadAll delivers every record in [first, high-water) to fn. It stops at the
// first error from Kafka or from fn.
func (s *SnapshotReader) ReadAll(ctx context.Context, fn RecordHandler) error {
	first, last, err := s.Offsets(ctx)
	if err != nil {
		return err
	}
	if last <= first {
		s.logger.Debug("partition empty", "first", first, "last", last)
		return nil
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   s.cfg.Brokers,
		Topic:     s.cfg.Topic,
		Partition: s.cfg.Partition,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer r.Close()
	if err := r.SetOffset(first); err != nil {
		return fmt.Errorf("seeking to offset %d: %w", first, err)
	}

	n, err := s.drain(ctx, r, last, fn)
	if err != nil {
		return err
	}
	s.logger.Debug("snapshot read", "records", n, "first", first, "last", last)
	return nil
}

// messageReader is the part of *kafka.Reader that drain needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// drain hands records to fn until one at or past last-1 arrives. Offsets
// below the high-water mark may never surface as messages (transaction
// commit and abort markers), so a read that idles for ReadIdleTimeout while
// ctx is still live also ends the snapshot.
func (s *SnapshotReader) drain(ctx context.Context, r messageReader, last int64, fn RecordHandler) (int, error) {
	idle := s.cfg.ReadIdleTimeout
	if idle <= 0 {
		idle = defaultReadIdleTimeout
	}

	var n int
	for {
		readCtx, cancel := context.WithTimeout(ctx, idle)
		msg, err := r.ReadMessage(readCtx)
		cancel()
		if err != nil {
			if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
				s.logger.Warn("no record before high-water mark, ending snapshot",
					"records", n, "last", last, "idle", idle)
				return n, nil
			}
			return n, fmt.Errorf("reading message after %d records: %w", n, err)
		}
		if err := fn(Record{Key: msg.Key, Value: msg.Value, Offset: msg.Offset}); err != nil {
			return n, err
		}
		n++
		if msg.Offset >= last-1 {
			return n, nil
		}
	}
}

// Ping checks that the partition leader is reachable.
func (s *SnapshotReader) Ping(ctx context.Context) error {
	_, _, err := s.Offsets(ctx)
	return err
}
