package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"frauddetect/internal/domain"
)

func registerTools(server *mcp.Server, analyzer TransactionAnalyzer, stats StatsReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transactions_analyze",
		Description: "Run a transaction through the fraud model and get a structured risk assessment",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in transactionsAnalyzeInput) (*mcp.CallToolResult, transactionsAnalyzeOutput, error) {
		if analyzer == nil {
			return nil, transactionsAnalyzeOutput{}, fmt.Errorf("analysis service unavailable")
		}
		tx, err := transactionFromInput(in)
		if err != nil {
			return nil, transactionsAnalyzeOutput{}, err
		}
		assessment, err := analyzer.Analyze(ctx, tx)
		if err != nil {
			return nil, transactionsAnalyzeOutput{}, err
		}
		return nil, transactionsAnalyzeOutput{Assessment: assessment}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "assessments_list",
		Description: "Get recently stored risk assessments, newest first",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in assessmentsListInput) (*mcp.CallToolResult, assessmentsListOutput, error) {
		if analyzer == nil {
			return nil, assessmentsListOutput{}, fmt.Errorf("analysis service unavailable")
		}
		result, err := analyzer.History(ctx, normalizeAssessmentLimit(in.Limit))
		if err != nil {
			return nil, assessmentsListOutput{}, err
		}
		return nil, assessmentsListOutput{Assessments: result}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats_by_type",
		Description: "Get fraud and legitimate transaction counts per transaction type",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in statsByTypeInput) (*mcp.CallToolResult, statsByTypeOutput, error) {
		if stats == nil {
			return nil, statsByTypeOutput{}, fmt.Errorf("stats service unavailable")
		}
		if in.Type != "" {
			txType, err := normalizeTransactionType(in.Type)
			if err != nil {
				return nil, statsByTypeOutput{}, err
			}
			row, found, err := stats.ForType(ctx, txType)
			if err != nil {
				return nil, statsByTypeOutput{}, err
			}
			if !found {
				return nil, statsByTypeOutput{}, fmt.Errorf("no stats for type: %s", txType)
			}
			return nil, statsByTypeOutput{Stats: []domain.TypeStat{row}}, nil
		}
		rows, err := stats.ByType(ctx)
		if err != nil {
			return nil, statsByTypeOutput{}, err
		}
		return nil, statsByTypeOutput{Stats: rows}, nil
	})
}
