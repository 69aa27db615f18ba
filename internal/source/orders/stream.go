package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wavesplatform/push-notifications/internal/core"
)

// maxBlockTime bounds how long one XREADGROUP call waits for new entries;
// without a timeout the read would never return when the stream is idle,
// and the loop below would never get a chance to check ctx.
const maxBlockTime = 6 * time.Second

const (
	beginOfStream = "0-0"
	newMessages   = ">"
)

// StreamConfig names the Redis stream, consumer group and consumer this
// reader uses.
type StreamConfig struct {
	StreamName   string
	GroupName    string
	ConsumerName string
	BatchMaxSize int64
}

// Source reads the matcher's order-update stream and feeds decoded events
// to an EventProcessor (original_source/src/lib/source/orders.rs's
// redis_stream module).
type Source struct {
	rdb       *redis.Client
	stream    StreamConfig
	processor EventProcessor
	logger    core.ILogger
}

// New connects to Redis and verifies (creating if necessary) the configured
// consumer group.
func New(ctx context.Context, opts *redis.Options, stream StreamConfig, processor EventProcessor, logger core.ILogger) (*Source, error) {
	rdb := redis.NewClient(opts)

	if err := prepare(ctx, rdb, stream, logger); err != nil {
		return nil, err
	}

	return &Source{rdb: rdb, stream: stream, processor: processor, logger: logger}, nil
}

func prepare(ctx context.Context, rdb *redis.Client, stream StreamConfig, logger core.ILogger) error {
	logger.Info("querying redis stream", "stream", stream.StreamName)
	info, err := rdb.XInfoStream(ctx, stream.StreamName).Result()
	if err != nil {
		return fmt.Errorf("stream %q not found, please create it before running this service: %w", stream.StreamName, err)
	}
	logger.Info("stream info", "length", info.Length, "groups", info.Groups)

	logger.Info("checking redis consumer group", "group", stream.GroupName)
	groups, err := rdb.XInfoGroups(ctx, stream.StreamName).Result()
	if err != nil {
		return fmt.Errorf("list consumer groups for stream %q: %w", stream.StreamName, err)
	}
	if !hasGroup(groups, stream.GroupName) {
		logger.Warn("consumer group not found, creating", "group", stream.GroupName)
		if err := rdb.XGroupCreate(ctx, stream.StreamName, stream.GroupName, beginOfStream).Err(); err != nil {
			return fmt.Errorf("create consumer group %q: %w", stream.GroupName, err)
		}
	}
	return nil
}

func hasGroup(groups []redis.XInfoGroup, name string) bool {
	for _, g := range groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Close releases the Redis connection.
func (s *Source) Close() error {
	return s.rdb.Close()
}

// Run replays any pending (unacknowledged) entries first, then tails new
// ones, until ctx is cancelled or a non-recoverable error occurs.
func (s *Source) Run(ctx context.Context) error {
	fetchingBacklog := true
	fromID := beginOfStream

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		res, err := s.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    s.stream.GroupName,
			Consumer: s.stream.ConsumerName,
			Streams:  []string{s.stream.StreamName, fromID},
			Count:    s.stream.BatchMaxSize,
			Block:    maxBlockTime,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			return fmt.Errorf("read from stream %q: %w", s.stream.StreamName, err)
		}
		if len(res) == 0 {
			continue
		}
		if len(res) != 1 || res[0].Stream != s.stream.StreamName {
			return fmt.Errorf("redis misbehaves: expected 1 key %q, got %v", s.stream.StreamName, res)
		}
		entries := res[0].Messages

		if fetchingBacklog && len(entries) == 0 {
			s.logger.Debug("finished replaying pending messages, switching to live tail")
			fetchingBacklog = false
			fromID = newMessages
			continue
		}

		for _, entry := range entries {
			raw, err := entryPayload(entry)
			if err != nil {
				return err
			}

			if err := s.handle(ctx, raw); err != nil {
				return err
			}

			if err := s.rdb.XAck(ctx, s.stream.StreamName, s.stream.GroupName, entry.ID).Err(); err != nil {
				return fmt.Errorf("ack entry %s: %w", entry.ID, err)
			}
			if err := s.rdb.XDel(ctx, s.stream.StreamName, entry.ID).Err(); err != nil {
				return fmt.Errorf("delete entry %s: %w", entry.ID, err)
			}

			if fetchingBacklog {
				fromID = entry.ID
			}
		}
	}
}

// entryPayload extracts the single "event" field every order-update stream
// entry carries.
func entryPayload(entry redis.XMessage) ([]byte, error) {
	if len(entry.Values) != 1 {
		return nil, fmt.Errorf("entry %s has %d fields, expected exactly 1", entry.ID, len(entry.Values))
	}
	raw, ok := entry.Values["event"]
	if !ok {
		return nil, fmt.Errorf("entry %s has no \"event\" field", entry.ID)
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("entry %s has non-string \"event\" field", entry.ID)
	}
	return []byte(s), nil
}

func (s *Source) handle(ctx context.Context, raw []byte) error {
	orderUpdates, ts, err := parseEnvelope(raw)
	if err != nil {
		return err
	}
	s.logger.Debug("got order updates", "count", len(orderUpdates), "timestamp", ts)

	for _, order := range orderUpdates {
		event, ok, err := eventFromOrderUpdate(order)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := s.processor.ProcessEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
