package stats

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"frauddetect/internal/domain"
)

const (
	statsCacheKey = "stats:by-type"
	statsCacheTTL = 10 * time.Minute
)

// datasetStats mirrors the PaySim synthetic dataset the dashboard charts are
// built from. The dataset is static, so the numbers are baked in rather than
// recomputed on every request.
var datasetStats = []domain.TypeStat{
	{Type: domain.TypePayment, Fraud: 0, Legitimate: 21514},
	{Type: domain.TypeTransfer, Fraud: 4097, Legitimate: 528812},
	{Type: domain.TypeCashOut, Fraud: 4116, Legitimate: 2233384},
	{Type: domain.TypeDebit, Fraud: 0, Legitimate: 41432},
	{Type: domain.TypeCashIn, Fraud: 0, Legitimate: 1399284},
}

type StatsService struct {
	tracer trace.Tracer
	cache  *redis.Client
}

func NewStatsService(tracer trace.Tracer, cache *redis.Client) *StatsService {
	return &StatsService{tracer: tracer, cache: cache}
}

// ByType returns fraud and legitimate transaction counts per transaction
// type, cached in Redis when a client is configured.
func (s *StatsService) ByType(ctx context.Context) ([]domain.TypeStat, error) {
	ctx, span := s.tracer.Start(ctx, "stats-service.by-type")
	defer span.End()

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached []domain.TypeStat
			if err := json.Unmarshal(raw, &cached); err == nil && len(cached) > 0 {
				return cached, nil
			}
		}
	}

	out := make([]domain.TypeStat, len(datasetStats))
	copy(out, datasetStats)

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
				log.Printf("failed to cache stats: %v", err)
			}
		}
	}
	return out, nil
}

// ForType returns the stats row for a single transaction type.
func (s *StatsService) ForType(ctx context.Context, txType domain.TransactionType) (domain.TypeStat, bool, error) {
	all, err := s.ByType(ctx)
	if err != nil {
		return domain.TypeStat{}, false, err
	}
	for _, row := range all {
		if row.Type == txType {
			return row, true, nil
		}
	}
	return domain.TypeStat{}, false, nil
}
