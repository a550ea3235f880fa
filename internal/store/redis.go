package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"predictive-guardian/internal/config"
	"predictive-guardian/internal/domain"
)

const (
	TelemetryChannel = "guardian:telemetry"
	AlertsChannel    = "guardian:alerts"

	stateTTL = 30 * time.Second
	dedupTTL = 5 * time.Minute
)

var ErrNotFound = errors.New("not found")

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     20,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// StatePayload is the flattened reading stored in the state hash and published to dashboards.
func StatePayload(rd *domain.EquipmentReading) map[string]interface{} {
	return map[string]interface{}{
		"equipment_id":   rd.EquipmentID,
		"equipment_name": rd.Name,
		"vibration":      rd.VibrationMMS,
		"temperature":    rd.TemperatureC,
		"health":         rd.Health,
		"status":         string(rd.Status),
		"threshold":      rd.Threshold,
		"timestamp":      rd.Timestamp.Unix(),
	}
}

func (r *RedisStore) PipelineStateUpdate(ctx context.Context, rd *domain.EquipmentReading) error {
	stateData := StatePayload(rd)

	pubPayload, err := json.Marshal(stateData)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	stateKey := fmt.Sprintf("equipment:%s:state", rd.EquipmentID)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, stateKey, stateData)
	pipe.Expire(ctx, stateKey, stateTTL)
	pipe.Publish(ctx, TelemetryChannel, pubPayload)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

func (r *RedisStore) GetAPIKey(ctx context.Context, apiKey string) (string, error) {
	key := fmt.Sprintf("guardian:auth:%s", apiKey)
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get api key failed: %w", err)
	}
	return val, nil
}

func dedupKey(equipmentID string, alertType domain.AlertType) string {
	return fmt.Sprintf("alert:%s:%s", equipmentID, string(alertType))
}

func (r *RedisStore) CheckAlertDedup(ctx context.Context, equipmentID string, alertType domain.AlertType) (bool, error) {
	count, err := r.client.Exists(ctx, dedupKey(equipmentID, alertType)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check failed: %w", err)
	}
	return count > 0, nil
}

func (r *RedisStore) SetAlertDedup(ctx context.Context, equipmentID string, alertType domain.AlertType) error {
	return r.client.Set(ctx, dedupKey(equipmentID, alertType), "1", dedupTTL).Err()
}

func (r *RedisStore) PublishAlert(ctx context.Context, payload []byte) error {
	return r.client.Publish(ctx, AlertsChannel, payload).Err()
}

func inspectionKey(id string) string {
	return fmt.Sprintf("guardian:inspection:%s", id)
}

func (r *RedisStore) SaveInspection(ctx context.Context, insp *domain.Inspection, ttl time.Duration) error {
	data, err := json.Marshal(insp)
	if err != nil {
		return fmt.Errorf("failed to marshal inspection: %w", err)
	}
	if err := r.client.Set(ctx, inspectionKey(insp.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set inspection %s failed: %w", insp.ID, err)
	}
	return nil
}

func (r *RedisStore) GetInspection(ctx context.Context, id string) (*domain.Inspection, error) {
	data, err := r.client.Get(ctx, inspectionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get inspection %s failed: %w", id, err)
	}
	var insp domain.Inspection
	if err := json.Unmarshal(data, &insp); err != nil {
		return nil, fmt.Errorf("failed to decode inspection %s: %w", id, err)
	}
	return &insp, nil
}

// Subscribe returns a pub/sub handle on the given channels. Callers close it.
func (r *RedisStore) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return r.client.Subscribe(ctx, channels...)
}

type Message struct {
	Channel string
	Payload []byte
}

// Messages subscribes to channels and relays their messages until ctx ends.
// The returned channel is closed once the subscription is gone.
func (r *RedisStore) Messages(ctx context.Context, channels ...string) (<-chan Message, error) {
	sub := r.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %v: %w", channels, err)
	}

	out := make(chan Message, 64)
	go func() {
		defer close(out)
		defer sub.Close()

		in := sub.Channel()
		for {
			select {
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
