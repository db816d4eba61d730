package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"actuarial-data-service/internal/config"
)

const (
	runKeyPrefix = "actuarial:run:"
	latestRunKey = "actuarial:run:latest"
)

// RunRecord is the catalog entry written after each generation run so that
// downstream query tooling can find the newest batch.
type RunRecord struct {
	RunID        string    `json:"run_id"`
	Seed         uint64    `json:"seed"`
	PolicyCount  int       `json:"policy_count"`
	ClaimCount   int       `json:"claim_count"`
	CohortCount  int       `json:"cohort_count"`
	OutputDir    string    `json:"output_dir"`
	DurationSecs float64   `json:"duration_secs"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Client wraps the Redis connection with run-catalog operations.
type Client struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: client}, nil
}

// RecordRun stores the run record under its run id and moves the latest
// pointer to it.
func (c *Client) RecordRun(ctx context.Context, record RunRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode run record: %w", err)
	}

	if err := c.client.Set(ctx, runKeyPrefix+record.RunID, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store run record: %w", err)
	}
	if err := c.client.Set(ctx, latestRunKey, record.RunID, 0).Err(); err != nil {
		return fmt.Errorf("failed to update latest run pointer: %w", err)
	}
	return nil
}

// LatestRun returns the most recently recorded run, or nil when no run has
// been recorded yet.
func (c *Client) LatestRun(ctx context.Context) (*RunRecord, error) {
	runID, err := c.client.Get(ctx, latestRunKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest run pointer: %w", err)
	}

	payload, err := c.client.Get(ctx, runKeyPrefix+runID).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read run record %s: %w", runID, err)
	}

	var record RunRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode run record %s: %w", runID, err)
	}
	return &record, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
