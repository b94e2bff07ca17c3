package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"frauddetect/internal/domain"
	"frauddetect/internal/prompt"
)

func registerResources(server *mcp.Server, analyzer TransactionAnalyzer, stats StatsReader) {
	server.AddResource(&mcp.Resource{
		URI:         "dataset://transaction-types",
		Name:        "transaction-types",
		Description: "Transaction types present in the PaySim dataset",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, domain.SupportedTransactionTypes)
	})

	server.AddResource(&mcp.Resource{
		URI:         "dataset://stats",
		Name:        "dataset-stats",
		Description: "Fraud and legitimate transaction counts per transaction type",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if stats == nil {
			return nil, fmt.Errorf("stats service unavailable")
		}
		rows, err := stats.ByType(ctx)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, statsByTypeOutput{Stats: rows})
	})

	server.AddResource(&mcp.Resource{
		URI:         "advisor://system-instruction",
		Name:        "system-instruction",
		Description: "System instruction the fraud analysis model is primed with",
		MIMEType:    "text/plain",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     prompt.SystemInstruction,
			}},
		}, nil
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "dataset://stats/{type}",
		Name:        "stats-by-type",
		Description: "Fraud counts for a single transaction type",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if stats == nil {
			return nil, fmt.Errorf("stats service unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "dataset" || parsed.Host != "stats" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		txType, err := normalizeTransactionType(strings.Trim(strings.TrimSpace(parsed.Path), "/"))
		if err != nil {
			return nil, err
		}
		row, found, err := stats.ForType(ctx, txType)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return jsonResource(req.Params.URI, statsByTypeOutput{Stats: []domain.TypeStat{row}})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "assessments://latest{?limit}",
		Name:        "assessments-latest",
		Description: "Recently stored risk assessments with an optional limit query param",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if analyzer == nil {
			return nil, fmt.Errorf("analysis service unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "assessments" || parsed.Host != "latest" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		limit := defaultAssessmentLimit
		if rawLimit := strings.TrimSpace(parsed.Query().Get("limit")); rawLimit != "" {
			n, err := strconv.Atoi(rawLimit)
			if err != nil {
				return nil, fmt.Errorf("invalid limit: %s", rawLimit)
			}
			limit = normalizeAssessmentLimit(n)
		}

		list, err := analyzer.History(ctx, limit)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, assessmentsListOutput{Assessments: list})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
