package domain

import "time"

type TransactionType string

const (
	TypePayment  TransactionType = "PAYMENT"
	TypeTransfer TransactionType = "TRANSFER"
	TypeCashOut  TransactionType = "CASH_OUT"
	TypeDebit    TransactionType = "DEBIT"
	TypeCashIn   TransactionType = "CASH_IN"
)

var SupportedTransactionTypes = []TransactionType{
	TypePayment,
	TypeTransfer,
	TypeCashOut,
	TypeDebit,
	TypeCashIn,
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TypePayment, TypeTransfer, TypeCashOut, TypeDebit, TypeCashIn:
		return true
	default:
		return false
	}
}

// Transaction mirrors one row of the Synthetic_Financial_datasets_log.csv
// schema the analyst submits from the dashboard form. Out-of-range values are
// passed to the model as-is; validation is not this layer's job.
type Transaction struct {
	Step           int64           `json:"step"`
	Type           TransactionType `json:"type"`
	Amount         float64         `json:"amount"`
	NameOrig       string          `json:"nameOrig"`
	OldBalanceOrig float64         `json:"oldbalanceOrg"`
	NewBalanceOrig float64         `json:"newbalanceOrig"`
	NameDest       string          `json:"nameDest"`
	OldBalanceDest float64         `json:"oldbalanceDest"`
	NewBalanceDest float64         `json:"newbalanceDest"`
}

// RiskLevel carries the model's coarse risk bucket. Values are the Russian
// labels the model is instructed to answer with, so they render directly.
type RiskLevel string

const (
	RiskLow    RiskLevel = "НИЗКИЙ"
	RiskMedium RiskLevel = "СРЕДНИЙ"
	RiskHigh   RiskLevel = "ВЫСОКИЙ"
)

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Extraction fallbacks. The extractor never fails; fields it cannot find in
// the model's reply get these sentinels instead.
const (
	VerdictUnknown   = "Неизвестно"
	ActionSeeDetails = "См. детальное описание"
)

// RiskAssessment is the structured result scraped from one model reply.
// RawResponse is the canonical carrier of the explanation; Explanation stays
// empty and is reserved for a future structured-output mode.
type RiskAssessment struct {
	ID                int64       `json:"id,omitempty"`
	Verdict           string      `json:"verdict"`
	RiskScore         float64     `json:"riskScore"`
	RiskLevel         RiskLevel   `json:"riskLevel"`
	Explanation       []string    `json:"explanation"`
	RecommendedAction string      `json:"recommendedAction"`
	RawResponse       string      `json:"rawResponse"`
	Transaction       Transaction `json:"transaction"`
	CreatedAt         time.Time   `json:"createdAt"`
}

type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TypeStat is one bar of the dashboard's fraud-by-type chart.
type TypeStat struct {
	Type       TransactionType `json:"type"`
	Fraud      int64           `json:"fraud"`
	Legitimate int64           `json:"legitimate"`
}
