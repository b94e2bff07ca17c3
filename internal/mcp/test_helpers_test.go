package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"frauddetect/internal/domain"
)

type stubAnalyzer struct {
	assessment domain.RiskAssessment
	history    []domain.RiskAssessment
	analyzeErr error

	lastTransaction domain.Transaction
	lastLimit       int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, tx domain.Transaction) (domain.RiskAssessment, error) {
	s.lastTransaction = tx
	if s.analyzeErr != nil {
		return domain.RiskAssessment{}, s.analyzeErr
	}
	a := s.assessment
	a.Transaction = tx
	return a, nil
}

func (s *stubAnalyzer) History(ctx context.Context, limit int) ([]domain.RiskAssessment, error) {
	s.lastLimit = limit
	return append([]domain.RiskAssessment(nil), s.history...), nil
}

type stubStats struct {
	rows []domain.TypeStat
}

func (s *stubStats) ByType(ctx context.Context) ([]domain.TypeStat, error) {
	return append([]domain.TypeStat(nil), s.rows...), nil
}

func (s *stubStats) ForType(ctx context.Context, txType domain.TransactionType) (domain.TypeStat, bool, error) {
	for _, row := range s.rows {
		if row.Type == txType {
			return row, true, nil
		}
	}
	return domain.TypeStat{}, false, nil
}

func testServer() (*sdkmcp.Server, *stubAnalyzer, *stubStats) {
	analyzer := &stubAnalyzer{
		assessment: domain.RiskAssessment{
			Verdict:           "Вероятно мошенничество",
			RiskScore:         0.92,
			RiskLevel:         domain.RiskHigh,
			Explanation:       []string{},
			RecommendedAction: "Временно заблокировать операцию",
		},
		history: []domain.RiskAssessment{{
			ID: 1, Verdict: "Обычный платеж", RiskScore: 0.05, RiskLevel: domain.RiskLow,
			Explanation: []string{}, CreatedAt: time.Unix(0, 0).UTC(),
		}},
	}
	stats := &stubStats{
		rows: []domain.TypeStat{
			{Type: domain.TypeTransfer, Fraud: 4097, Legitimate: 528812},
			{Type: domain.TypeCashOut, Fraud: 4116, Legitimate: 2233384},
		},
	}

	srv := NewServer(nil, analyzer, stats, ServerConfig{RequestTimeout: time.Second})
	return srv, analyzer, stats
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return fmt.Errorf("empty resource contents")
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}
