// Package sales keeps per-day sales counters in redis.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"vend_kiosk/internal/domain/entity"
)

const dayLayout = time.DateOnly

type Day struct {
	Date    string          `json:"date"`
	Revenue int64           `json:"revenue"`
	Items   map[int64]int64 `json:"items"`
}

type Tally struct {
	client    redis.UniversalClient
	retention time.Duration
}

func NewTally(client redis.UniversalClient, retention time.Duration) *Tally {
	return &Tally{
		client:    client,
		retention: retention,
	}
}

func salesKey(date string) string   { return "kiosk:sales:" + date }
func revenueKey(date string) string { return "kiosk:revenue:" + date }

// Add counts one sold item and its price for the receipt's purchase day (UTC).
func (t *Tally) Add(ctx context.Context, receipt entity.Receipt) error {
	date := receipt.PurchasedAt.UTC().Format(dayLayout)

	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, salesKey(date), strconv.FormatInt(receipt.ItemID, 10), 1)
		pipe.IncrBy(ctx, revenueKey(date), receipt.Price)

		if t.retention > 0 {
			pipe.Expire(ctx, salesKey(date), t.retention)
			pipe.Expire(ctx, revenueKey(date), t.retention)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("client.TxPipelined: %w", err)
	}

	return nil
}

// Day reads the counters for date (YYYY-MM-DD). A day without sales is empty.
func (t *Tally) Day(ctx context.Context, date string) (Day, error) {
	if _, err := time.Parse(dayLayout, date); err != nil {
		return Day{}, fmt.Errorf("time.Parse: %w", err)
	}

	counts, err := t.client.HGetAll(ctx, salesKey(date)).Result()
	if err != nil {
		return Day{}, fmt.Errorf("client.HGetAll: %w", err)
	}

	revenue, err := t.client.Get(ctx, revenueKey(date)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Day{}, fmt.Errorf("client.Get: %w", err)
	}

	day := Day{
		Date:    date,
		Revenue: revenue,
		Items:   make(map[int64]int64, len(counts)),
	}

	for field, value := range counts {
		itemID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Day{}, fmt.Errorf("strconv.ParseInt(%q): %w", field, err)
		}

		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Day{}, fmt.Errorf("strconv.ParseInt(%q): %w", value, err)
		}

		day.Items[itemID] = count
	}

	return day, nil
}
