package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"frauddetect/internal/domain"
	"frauddetect/internal/llm"
)

// analysisFailedMessage is shown to the dashboard when the model cannot be
// reached. It deliberately points at the most common misconfiguration.
const analysisFailedMessage = "Не удалось проанализировать транзакцию. Проверьте API ключ."

// AnalyzeTransaction godoc
// @Summary      Analyze a transaction for fraud
// @Description  Sends the transaction to the model and returns a structured risk assessment
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        transaction  body  domain.Transaction  true  "Transaction to analyze"
// @Success      200  {object}  domain.RiskAssessment
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/analyze [post]
func (h *Handler) AnalyzeTransaction(c *gin.Context) {
	if h.analysisService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-transaction")
	defer span.End()

	var tx domain.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction payload: " + err.Error()})
		return
	}
	if !tx.Type.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "unsupported transaction type: " + string(tx.Type),
			"supported_types": domain.SupportedTransactionTypes,
		})
		return
	}
	span.SetAttributes(attribute.String("transaction.type", string(tx.Type)))

	assessment, err := h.analysisService.Analyze(ctx, tx)
	if err != nil {
		if llm.IsTransportError(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": analysisFailedMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// GetAssessments godoc
// @Summary      List stored risk assessments
// @Description  Returns recently stored assessments, newest first
// @Tags         analysis
// @Produce      json
// @Param        limit  query  int  false  "Number of assessments (default 50, max 200)"  default(50)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/assessments [get]
func (h *Handler) GetAssessments(c *gin.Context) {
	if h.analysisService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-assessments")
	defer span.End()

	limit := 50
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
			return
		}
		limit = n
	}

	assessments, err := h.analysisService.History(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments, "count": len(assessments)})
}
