package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"frauddetect/internal/domain"
)

// AssessmentCache keeps recent risk assessments keyed by a transaction
// fingerprint so identical transactions do not trigger repeated model calls.
type AssessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAssessmentCache(client *redis.Client, ttl time.Duration) *AssessmentCache {
	return &AssessmentCache{client: client, ttl: ttl}
}

// Key derives a stable cache key from the transaction fields that matter
// for analysis. Two transactions with the same fields get the same key.
func Key(tx domain.Transaction) string {
	return fmt.Sprintf("assessment:%s:%d:%s:%s:%.2f:%.2f:%.2f:%.2f:%.2f",
		tx.Type, tx.Step, tx.NameOrig, tx.NameDest,
		tx.Amount, tx.OldBalanceOrig, tx.NewBalanceOrig,
		tx.OldBalanceDest, tx.NewBalanceDest)
}

func (c *AssessmentCache) Get(ctx context.Context, tx domain.Transaction) (domain.RiskAssessment, bool) {
	if c == nil || c.client == nil {
		return domain.RiskAssessment{}, false
	}
	raw, err := c.client.Get(ctx, Key(tx)).Bytes()
	if err != nil {
		return domain.RiskAssessment{}, false
	}
	var a domain.RiskAssessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.RiskAssessment{}, false
	}
	return a, true
}

func (c *AssessmentCache) Set(ctx context.Context, tx domain.Transaction, a domain.RiskAssessment) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(tx), raw, c.ttl).Err()
}
