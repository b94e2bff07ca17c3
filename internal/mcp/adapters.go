package mcp

import (
	"context"

	"frauddetect/internal/domain"
)

// TransactionAnalyzer exposes fraud analysis and stored assessment history.
type TransactionAnalyzer interface {
	Analyze(ctx context.Context, tx domain.Transaction) (domain.RiskAssessment, error)
	History(ctx context.Context, limit int) ([]domain.RiskAssessment, error)
}

// StatsReader exposes read operations for the dataset fraud statistics.
type StatsReader interface {
	ByType(ctx context.Context) ([]domain.TypeStat, error)
	ForType(ctx context.Context, txType domain.TransactionType) (domain.TypeStat, bool, error)
}
