package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/config"
	"github.com/stemsi/kinderbook/internal/subject"
	"github.com/stemsi/kinderbook/internal/websocket"
)

const (
	EventBatchSize    = 50
	EventBatchTimeout = 500 * time.Millisecond
)

// ScoreEventWorker mirrors score changes into Redis: each change is
// published on the subject channel and applied to the subject score hash.
type ScoreEventWorker struct {
	rdb   *redis.Client
	queue chan websocket.ScoreChangedEvent
	log   zerolog.Logger
}

func NewScoreEventWorker(rdb *redis.Client, buffer int, log zerolog.Logger) *ScoreEventWorker {
	if buffer <= 0 {
		buffer = 1
	}
	return &ScoreEventWorker{
		rdb:   rdb,
		queue: make(chan websocket.ScoreChangedEvent, buffer),
		log:   log.With().Str("component", "score_event_worker").Logger(),
	}
}

// Observe is a subject.Registry subscriber.
func (w *ScoreEventWorker) Observe(subjectName string, c subject.Change) {
	w.Enqueue(websocket.NewScoreChangedEvent(subjectName, c))
}

// Enqueue never blocks. A full queue drops the event.
func (w *ScoreEventWorker) Enqueue(e websocket.ScoreChangedEvent) bool {
	select {
	case w.queue <- e:
		return true
	default:
		w.log.Warn().
			Str("subject", e.Subject).
			Int64("person_id", int64(e.PersonID)).
			Msg("Event queue full, dropping score event")
		return false
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ScoreEventWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ScoreEventWorker started")

	batch := make([]websocket.ScoreChangedEvent, 0, EventBatchSize)
	ticker := time.NewTicker(EventBatchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.drain(&batch)
			w.flushSafe(context.Background(), batch)
			return

		case e := <-w.queue:
			batch = append(batch, e)
			if len(batch) >= EventBatchSize {
				w.flushSafe(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flushSafe(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

func (w *ScoreEventWorker) drain(batch *[]websocket.ScoreChangedEvent) {
	for {
		select {
		case e := <-w.queue:
			*batch = append(*batch, e)
		default:
			return
		}
	}
}

// ----------------------------------------------------------------
// Pipelined publish + hash update
// ----------------------------------------------------------------

func (w *ScoreEventWorker) flushSafe(ctx context.Context, batch []websocket.ScoreChangedEvent) {
	if len(batch) == 0 {
		return
	}

	pipe := w.rdb.Pipeline()
	for _, e := range batch {
		raw, err := encodeEvent(e)
		if err != nil {
			w.log.Error().Err(err).Msg("Invalid score event")
			continue
		}
		applyEvent(ctx, pipe, e, raw)
	}
	pipe.Set(ctx, config.CacheKey.BookSnapshotKey(), time.Now().UTC().Format(time.RFC3339Nano), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		w.log.Error().Err(err).Int("count", len(batch)).Msg("Score event flush failed")
		return
	}
	w.log.Debug().Int("count", len(batch)).Msg("Score events flushed")
}

func encodeEvent(e websocket.ScoreChangedEvent) ([]byte, error) {
	return json.Marshal(e)
}

// applyEvent queues the Redis commands for one event on pipe.
func applyEvent(ctx context.Context, pipe redis.Pipeliner, e websocket.ScoreChangedEvent, raw []byte) {
	key := config.CacheKey.SubjectScoresKey(e.Subject)
	field := strconv.FormatInt(int64(e.PersonID), 10)

	pipe.Publish(ctx, config.CacheKey.SubjectScoresChannel(e.Subject), raw)
	if e.Kind == subject.ChangeRemoved {
		pipe.HDel(ctx, key, field)
		return
	}
	pipe.HSet(ctx, key, field, int(e.Score))
}
