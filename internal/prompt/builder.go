// Package prompt renders the textual inputs the remote model consumes: the
// process-wide system instruction and the per-request transaction summary.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"frauddetect/internal/domain"
)

// BuildAnalysisPrompt enumerates every field of the transaction in a stable
// label:value layout so the model sees complete context. Pure function: the
// same transaction always yields the same prompt.
func BuildAnalysisPrompt(tx domain.Transaction) string {
	var sb strings.Builder
	sb.WriteString("Проанализируй следующую транзакцию на предмет мошенничества:\n\n")
	sb.WriteString(fmt.Sprintf("- type: %s\n", tx.Type))
	sb.WriteString(fmt.Sprintf("- amount: %s\n", formatNumber(tx.Amount)))
	sb.WriteString(fmt.Sprintf("- nameOrig: %s\n", tx.NameOrig))
	sb.WriteString(fmt.Sprintf("- oldbalanceOrg: %s\n", formatNumber(tx.OldBalanceOrig)))
	sb.WriteString(fmt.Sprintf("- newbalanceOrig: %s\n", formatNumber(tx.NewBalanceOrig)))
	sb.WriteString(fmt.Sprintf("- nameDest: %s\n", tx.NameDest))
	sb.WriteString(fmt.Sprintf("- oldbalanceDest: %s\n", formatNumber(tx.OldBalanceDest)))
	sb.WriteString(fmt.Sprintf("- newbalanceDest: %s\n", formatNumber(tx.NewBalanceDest)))
	sb.WriteString(fmt.Sprintf("- step: %d\n", tx.Step))
	sb.WriteString("\nИспользуй формат ответа, описанный в системной инструкции. Обязательно оцени бизнес-эффект (денежный риск).")
	return sb.String()
}

// formatNumber prints amounts without a forced decimal tail, so 9000000
// stays "9000000" and 120.5 stays "120.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
