package mcp

import (
	"fmt"
	"strings"

	"frauddetect/internal/domain"
)

const (
	defaultAssessmentLimit = 50
	maxAssessmentLimit     = 200
)

type transactionsAnalyzeInput struct {
	Step           int64   `json:"step,omitempty" jsonschema:"simulation hour of the transaction"`
	Type           string  `json:"type" jsonschema:"transaction type: PAYMENT, TRANSFER, CASH_OUT, DEBIT, CASH_IN"`
	Amount         float64 `json:"amount" jsonschema:"transaction amount"`
	NameOrig       string  `json:"nameOrig,omitempty" jsonschema:"originator account"`
	OldBalanceOrig float64 `json:"oldbalanceOrg,omitempty" jsonschema:"originator balance before"`
	NewBalanceOrig float64 `json:"newbalanceOrig,omitempty" jsonschema:"originator balance after"`
	NameDest       string  `json:"nameDest,omitempty" jsonschema:"beneficiary account"`
	OldBalanceDest float64 `json:"oldbalanceDest,omitempty" jsonschema:"beneficiary balance before"`
	NewBalanceDest float64 `json:"newbalanceDest,omitempty" jsonschema:"beneficiary balance after"`
}

type transactionsAnalyzeOutput struct {
	Assessment domain.RiskAssessment `json:"assessment"`
}

type assessmentsListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of assessments to return, max 200"`
}

type assessmentsListOutput struct {
	Assessments []domain.RiskAssessment `json:"assessments"`
}

type statsByTypeInput struct {
	Type string `json:"type,omitempty" jsonschema:"optional transaction type to filter by"`
}

type statsByTypeOutput struct {
	Stats []domain.TypeStat `json:"stats"`
}

func normalizeTransactionType(raw string) (domain.TransactionType, error) {
	normalized := domain.TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
	if normalized == "" {
		return "", fmt.Errorf("type is required")
	}
	if !normalized.IsValid() {
		return "", fmt.Errorf("unsupported transaction type: %s", raw)
	}
	return normalized, nil
}

func normalizeAssessmentLimit(limit int) int {
	if limit <= 0 {
		return defaultAssessmentLimit
	}
	if limit > maxAssessmentLimit {
		return maxAssessmentLimit
	}
	return limit
}

func transactionFromInput(in transactionsAnalyzeInput) (domain.Transaction, error) {
	txType, err := normalizeTransactionType(in.Type)
	if err != nil {
		return domain.Transaction{}, err
	}
	if in.Amount < 0 {
		return domain.Transaction{}, fmt.Errorf("amount must not be negative")
	}
	return domain.Transaction{
		Step:           in.Step,
		Type:           txType,
		Amount:         in.Amount,
		NameOrig:       strings.TrimSpace(in.NameOrig),
		OldBalanceOrig:  in.OldBalanceOrig,
		NewBalanceOrig: in.NewBalanceOrig,
		NameDest:       strings.TrimSpace(in.NameDest),
		OldBalanceDest: in.OldBalanceDest,
		NewBalanceDest: in.NewBalanceDest,
	}, nil
}
