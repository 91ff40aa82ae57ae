// Package redis provides a Redis-backed liked-submission store.
//
// The collection lives under two keys: a hash mapping submission ID to its JSON
// record, and a list holding the IDs in insertion order.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cristianoliveira/form-intray/internal/submission"
	goredis "github.com/redis/go-redis/v9"
)

// ErrInvalidSubmissionID indicates an empty submission ID.
var ErrInvalidSubmissionID = errors.New("invalid submission ID")

// Store persists liked submissions in Redis.
type Store struct {
	rdb      goredis.UniversalClient
	hashKey  string
	orderKey string
}

// New creates a store using keys derived from prefix.
func New(rdb goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "form-intray:liked"
	}
	return &Store{rdb: rdb, hashKey: prefix + ":items", orderKey: prefix + ":order"}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr, prefix string) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis storage: ping %s: %w", addr, err)
	}
	return New(rdb, prefix), nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// FetchAll returns the stored submissions in insertion order.
func (s *Store) FetchAll(ctx context.Context) ([]submission.Submission, error) {
	ids, err := s.rdb.LRange(ctx, s.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis storage: read order: %w", err)
	}
	records, err := s.rdb.HGetAll(ctx, s.hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis storage: read items: %w", err)
	}
	return decodeOrdered(ids, records)
}

// Save stores one submission, appending its ID when it is new.
func (s *Store) Save(ctx context.Context, sub submission.Submission) error {
	if sub.ID == "" {
		return fmt.Errorf("redis storage: %w", ErrInvalidSubmissionID)
	}
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("redis storage: encode %s: %w", sub.ID, err)
	}
	created, err := s.rdb.HSet(ctx, s.hashKey, sub.ID, raw).Result()
	if err != nil {
		return fmt.Errorf("redis storage: save %s: %w", sub.ID, err)
	}
	if created > 0 {
		if err := s.rdb.RPush(ctx, s.orderKey, sub.ID).Err(); err != nil {
			return fmt.Errorf("redis storage: append %s: %w", sub.ID, err)
		}
	}
	return nil
}

// ReplaceAll rewrites both keys in a MULTI/EXEC transaction.
func (s *Store) ReplaceAll(ctx context.Context, items []submission.Submission) error {
	ids, values, err := encodeAll(items)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, s.hashKey, s.orderKey)
		if len(ids) == 0 {
			return nil
		}
		pipe.HSet(ctx, s.hashKey, values...)
		pipe.RPush(ctx, s.orderKey, ids...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis storage: replace: %w", err)
	}
	return nil
}

// encodeAll returns the ordered IDs and the flattened field/value pairs for HSET.
// Duplicate IDs keep the first position and the last record.
func encodeAll(items []submission.Submission) ([]any, []any, error) {
	seen := make(map[string]int, len(items))
	ids := make([]any, 0, len(items))
	records := make([]string, 0, len(items))
	for _, sub := range items {
		if sub.ID == "" {
			return nil, nil, fmt.Errorf("redis storage: %w", ErrInvalidSubmissionID)
		}
		raw, err := json.Marshal(sub)
		if err != nil {
			return nil, nil, fmt.Errorf("redis storage: encode %s: %w", sub.ID, err)
		}
		if i, ok := seen[sub.ID]; ok {
			records[i] = string(raw)
			continue
		}
		seen[sub.ID] = len(records)
		ids = append(ids, sub.ID)
		records = append(records, string(raw))
	}
	values := make([]any, 0, len(records)*2)
	for i, raw := range records {
		values = append(values, ids[i], raw)
	}
	return ids, values, nil
}

// decodeOrdered rebuilds the collection from the order list and hash. IDs missing
// from the hash are skipped; hash entries missing from the list are appended.
func decodeOrdered(ids []string, records map[string]string) ([]submission.Submission, error) {
	items := make([]submission.Submission, 0, len(records))
	used := make(map[string]bool, len(records))
	decode := func(id string) error {
		raw, ok := records[id]
		if !ok || used[id] {
			return nil
		}
		var sub submission.Submission
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			return fmt.Errorf("redis storage: decode %s: %w", id, err)
		}
		used[id] = true
		items = append(items, sub)
		return nil
	}
	for _, id := range ids {
		if err := decode(id); err != nil {
			return nil, err
		}
	}
	if len(used) < len(records) {
		var orphans []string
		for id := range records {
			if !used[id] {
				orphans = append(orphans, id)
			}
		}
		sort.Strings(orphans)
		for _, id := range orphans {
			if err := decode(id); err != nil {
				return nil, err
			}
		}
	}
	return items, nil
}
