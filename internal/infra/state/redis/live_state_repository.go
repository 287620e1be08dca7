package redisstate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// activeRoomsRetention bounds how long a room lingers in the activity set
// before the next trim drops it.
const activeRoomsRetention = 24 * time.Hour

// RedisLiveStateRepository is the Redis implementation of
// LiveStateRepository. It keeps a sorted set of recently-active rooms
// (scored by last-activity unix time) and publishes room events for the
// WebSocket fan-out.
type RedisLiveStateRepository struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisLiveStateRepository(client *redis.Client, keyPrefix string) *RedisLiveStateRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisLiveStateRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "cc:"
	}
	return &RedisLiveStateRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// ChannelForRoom returns the pub/sub channel name for a room. The hub
// subscribes with the same prefix it hands to this repository.
func ChannelForRoom(keyPrefix, roomID string) string {
	return fmt.Sprintf("%sroom:%s:events", keyPrefix, roomID)
}

func (r *RedisLiveStateRepository) activeRoomsKey() string {
	return r.keyPrefix + "rooms:active"
}

func (r *RedisLiveStateRepository) MarkRoomActive(ctx context.Context, roomID string) error {
	now := time.Now()
	key := r.activeRoomsKey()
	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, key, &redis.Z{Score: float64(now.Unix()), Member: roomID})
	// Trim entries nobody will ever ask for again.
	cutoff := strconv.FormatInt(now.Add(-activeRoomsRetention).Unix(), 10)
	pipe.ZRemRangeByScore(ctx, key, "-inf", cutoff)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: mark room %s active on key %s: %w", roomID, key, err)
	}
	return nil
}

func (r *RedisLiveStateRepository) ActiveRoomIDs(ctx context.Context, within time.Duration) ([]string, error) {
	key := r.activeRoomsKey()
	min := strconv.FormatInt(time.Now().Add(-within).Unix(), 10)
	ids, err := r.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: min, Max: "+inf"}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list active rooms from %s: %w", key, err)
	}
	return ids, nil
}

func (r *RedisLiveStateRepository) PublishEvent(ctx context.Context, event domain.Event) error {
	channel := ChannelForRoom(r.keyPrefix, event.RoomID)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis: marshal %s event for room %s: %w", event.Type, event.RoomID, err)
	}
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish %s event to channel %s: %w", event.Type, channel, err)
	}
	return nil
}
