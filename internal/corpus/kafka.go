package corpus

import (
	"context"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/kafka"
)

// RecordSource reads a bounded snapshot of a topic partition.
// *pkg/kafka.SnapshotReader satisfies it.
type RecordSource interface {
	ReadAll(ctx context.Context, fn kafka.RecordHandler) error
}

// KafkaTopic serves a corpus kept in a compacted topic: the message key is the
// document id and the value its text. The latest value per key wins and an
// empty value deletes the document. Documents are yielded in id order.
type KafkaTopic struct {
	source RecordSource
}

func NewKafkaTopic(source RecordSource) *KafkaTopic {
	return &KafkaTopic{source: source}
}

func (k *KafkaTopic) Walk(ctx context.Context, fn WalkFunc) error {
	latest := make(map[string]string)
	err := k.source.ReadAll(ctx, func(rec kafka.Record) error {
		compact(latest, rec)
		return nil
	})
	if err != nil {
		return ioError("reading corpus topic", err)
	}

	ids := make([]string, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := fn(Document{ID: id, Text: latest[id]}); err != nil {
			return err
		}
	}
	return nil
}

func compact(latest map[string]string, rec kafka.Record) {
	if len(rec.Key) == 0 {
		return
	}
	id := string(rec.Key)
	if len(rec.Value) == 0 {
		delete(latest, id)
		return
	}
	latest[id] = string(rec.Value)
}
