package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"frauddetect/internal/service"
	"frauddetect/internal/stats"
)

type Handler struct {
	tracer          trace.Tracer
	analysisService *service.AnalysisService
	advisorService  *service.AdvisorService
	statsService    *stats.StatsService
}

func New(
	tracer trace.Tracer,
	analysisService *service.AnalysisService,
	advisorService *service.AdvisorService,
	statsService *stats.StatsService,
) *Handler {
	return &Handler{
		tracer:          tracer,
		analysisService: analysisService,
		advisorService:  advisorService,
		statsService:    statsService,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/stats", h.GetStats)
	r.POST("/api/analyze", h.AnalyzeTransaction)
	r.GET("/api/assessments", h.GetAssessments)
	r.POST("/api/chat/:chat_id/messages", h.PostChatMessage)
	r.GET("/api/chat/:chat_id/messages", h.GetChatMessages)
	r.POST("/api/chat/:chat_id/reset", h.ResetChat)
}

// Health godoc
// @Summary      Service health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetStats godoc
// @Summary      Fraud counts per transaction type
// @Description  Returns fraud and legitimate transaction counts for each PaySim transaction type
// @Tags         stats
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	if h.statsService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stats")
	defer span.End()

	rows, err := h.statsService.ByType(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": rows, "count": len(rows)})
}
