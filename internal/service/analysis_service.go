package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"

	"frauddetect/internal/domain"
	"frauddetect/internal/extract"
	"frauddetect/internal/prompt"
)

type ModelCompleter interface {
	Complete(ctx context.Context, userPrompt string) (string, error)
}

type AssessmentStore interface {
	InsertAssessment(ctx context.Context, a domain.RiskAssessment) (domain.RiskAssessment, error)
	ListAssessments(ctx context.Context, limit int) ([]domain.RiskAssessment, error)
}

type AssessmentCache interface {
	Get(ctx context.Context, tx domain.Transaction) (domain.RiskAssessment, bool)
	Set(ctx context.Context, tx domain.Transaction, a domain.RiskAssessment) error
}

type RiskAlertNotifier interface {
	NotifyAssessment(ctx context.Context, a domain.RiskAssessment) error
}

// AnalysisService runs a transaction through the model and turns the
// free-text reply into a structured risk assessment.
type AnalysisService struct {
	tracer   trace.Tracer
	model    ModelCompleter
	scraper  *extract.Scraper
	store    AssessmentStore
	cache    AssessmentCache
	notifier RiskAlertNotifier
}

func NewAnalysisService(
	tracer trace.Tracer,
	model ModelCompleter,
	store AssessmentStore,
	cache AssessmentCache,
) *AnalysisService {
	return &AnalysisService{
		tracer:  tracer,
		model:   model,
		scraper: extract.NewScraper(),
		store:   store,
		cache:   cache,
	}
}

// SetNotifier attaches an alert sink for high-risk assessments. The bot is
// started after the service is constructed, so this is wired late.
func (s *AnalysisService) SetNotifier(n RiskAlertNotifier) {
	s.notifier = n
}

func (s *AnalysisService) Analyze(ctx context.Context, tx domain.Transaction) (domain.RiskAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	if s.model == nil {
		return domain.RiskAssessment{}, fmt.Errorf("analysis service is not fully initialized")
	}
	if !tx.Type.IsValid() {
		return domain.RiskAssessment{}, fmt.Errorf("unsupported transaction type: %s", tx.Type)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, tx); ok {
			return cached, nil
		}
	}

	raw, err := s.model.Complete(ctx, prompt.BuildAnalysisPrompt(tx))
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	assessment := s.scraper.Parse(raw)
	assessment.Transaction = tx
	assessment.CreatedAt = time.Now().UTC()

	if s.store != nil {
		stored, err := s.store.InsertAssessment(ctx, assessment)
		if err != nil {
			log.Printf("failed to persist assessment: %v", err)
		} else {
			assessment = stored
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tx, assessment); err != nil {
			log.Printf("failed to cache assessment: %v", err)
		}
	}

	if s.notifier != nil && assessment.RiskLevel == domain.RiskHigh {
		if err := s.notifier.NotifyAssessment(ctx, assessment); err != nil {
			log.Printf("failed to dispatch high-risk alert: %v", err)
		}
	}

	return assessment, nil
}

// History returns recently stored assessments, newest first.
func (s *AnalysisService) History(ctx context.Context, limit int) ([]domain.RiskAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.history")
	defer span.End()

	if s.store == nil {
		return []domain.RiskAssessment{}, nil
	}
	return s.store.ListAssessments(ctx, limit)
}
