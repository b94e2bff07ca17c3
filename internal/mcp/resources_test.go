package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"frauddetect/internal/domain"
)

func TestResourcesStaticAndTemplated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, analyzer, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	list, err := session.ListResources(ctx, &sdkmcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("list resources failed: %v", err)
	}
	if len(list.Resources) < 3 {
		t.Fatalf("expected at least 3 static resources, got %d", len(list.Resources))
	}

	templates, err := session.ListResourceTemplates(ctx, &sdkmcp.ListResourceTemplatesParams{})
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if len(templates.ResourceTemplates) < 2 {
		t.Fatalf("expected at least 2 resource templates, got %d", len(templates.ResourceTemplates))
	}

	readRes, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "dataset://transaction-types"})
	if err != nil {
		t.Fatalf("read static resource failed: %v", err)
	}
	var types []domain.TransactionType
	if err := decodeResourceJSON(readRes, &types); err != nil {
		t.Fatalf("decode types failed: %v", err)
	}
	if len(types) != len(domain.SupportedTransactionTypes) {
		t.Fatalf("expected %d transaction types, got %d", len(domain.SupportedTransactionTypes), len(types))
	}

	readRes, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "dataset://stats/TRANSFER"})
	if err != nil {
		t.Fatalf("read templated resource failed: %v", err)
	}
	var out statsByTypeOutput
	if err := decodeResourceJSON(readRes, &out); err != nil {
		t.Fatalf("decode stats output failed: %v", err)
	}
	if len(out.Stats) != 1 || out.Stats[0].Type != domain.TypeTransfer {
		t.Fatalf("unexpected stats payload: %+v", out.Stats)
	}

	readRes, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "assessments://latest?limit=10"})
	if err != nil {
		t.Fatalf("read assessments resource failed: %v", err)
	}
	var assessments assessmentsListOutput
	if err := decodeResourceJSON(readRes, &assessments); err != nil {
		t.Fatalf("decode assessments failed: %v", err)
	}
	if len(assessments.Assessments) == 0 {
		t.Fatal("expected assessments payload")
	}
	if analyzer.lastLimit != 10 {
		t.Fatalf("expected limit 10, got %d", analyzer.lastLimit)
	}
}

func TestSystemInstructionResource(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	readRes, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "advisor://system-instruction"})
	if err != nil {
		t.Fatalf("read instruction resource failed: %v", err)
	}
	if len(readRes.Contents) == 0 {
		t.Fatal("expected instruction contents")
	}
	if !strings.Contains(readRes.Contents[0].Text, "FraudDetect 2.0") {
		t.Fatal("instruction resource must carry the model persona")
	}
}

func TestUnknownResourceURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	if _, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "dataset://stats/LOAN"}); err == nil {
		t.Fatal("expected error for unknown transaction type")
	}
}
