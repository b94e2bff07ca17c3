package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"frauddetect/internal/domain"
)

type AssessmentRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewAssessmentRepository(pool PgxPool, tracer trace.Tracer) *AssessmentRepository {
	return &AssessmentRepository{pool: pool, tracer: tracer}
}

func (r *AssessmentRepository) RunMigrations(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS assessments (
			id BIGSERIAL PRIMARY KEY,
			verdict TEXT NOT NULL,
			risk_score DOUBLE PRECISION NOT NULL,
			risk_level TEXT NOT NULL,
			recommended_action TEXT NOT NULL,
			raw_response TEXT NOT NULL,
			tx_step BIGINT NOT NULL,
			tx_type TEXT NOT NULL,
			tx_amount DOUBLE PRECISION NOT NULL,
			tx_name_orig TEXT NOT NULL,
			tx_oldbalance_org DOUBLE PRECISION NOT NULL,
			tx_newbalance_orig DOUBLE PRECISION NOT NULL,
			tx_name_dest TEXT NOT NULL,
			tx_oldbalance_dest DOUBLE PRECISION NOT NULL,
			tx_newbalance_dest DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_created
			ON assessments (created_at DESC);
	`)
	return err
}

func (r *AssessmentRepository) InsertAssessment(ctx context.Context, a domain.RiskAssessment) (domain.RiskAssessment, error) {
	_, span := r.tracer.Start(ctx, "assessment-repo.insert-assessment")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO assessments (
			verdict, risk_score, risk_level, recommended_action, raw_response,
			tx_step, tx_type, tx_amount, tx_name_orig, tx_oldbalance_org,
			tx_newbalance_orig, tx_name_dest, tx_oldbalance_dest, tx_newbalance_dest,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		a.Verdict,
		a.RiskScore,
		string(a.RiskLevel),
		a.RecommendedAction,
		a.RawResponse,
		a.Transaction.Step,
		string(a.Transaction.Type),
		a.Transaction.Amount,
		a.Transaction.NameOrig,
		a.Transaction.OldBalanceOrig,
		a.Transaction.NewBalanceOrig,
		a.Transaction.NameDest,
		a.Transaction.OldBalanceDest,
		a.Transaction.NewBalanceDest,
		a.CreatedAt.UTC(),
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return domain.RiskAssessment{}, err
	}
	a.ID = id
	return a, nil
}

func (r *AssessmentRepository) ListAssessments(ctx context.Context, limit int) ([]domain.RiskAssessment, error) {
	_, span := r.tracer.Start(ctx, "assessment-repo.list-assessments")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, verdict, risk_score, risk_level, recommended_action, raw_response,
		        tx_step, tx_type, tx_amount, tx_name_orig, tx_oldbalance_org,
		        tx_newbalance_orig, tx_name_dest, tx_oldbalance_dest, tx_newbalance_dest,
		        created_at
		 FROM assessments
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := make([]domain.RiskAssessment, 0, limit)
	for rows.Next() {
		var a domain.RiskAssessment
		var level string
		var txType string
		var ts time.Time
		if err := rows.Scan(
			&a.ID,
			&a.Verdict,
			&a.RiskScore,
			&level,
			&a.RecommendedAction,
			&a.RawResponse,
			&a.Transaction.Step,
			&txType,
			&a.Transaction.Amount,
			&a.Transaction.NameOrig,
			&a.Transaction.OldBalanceOrig,
			&a.Transaction.NewBalanceOrig,
			&a.Transaction.NameDest,
			&a.Transaction.OldBalanceDest,
			&a.Transaction.NewBalanceDest,
			&ts,
		); err != nil {
			return nil, err
		}
		a.RiskLevel = domain.RiskLevel(level)
		a.Transaction.Type = domain.TransactionType(txType)
		a.Explanation = []string{}
		a.CreatedAt = ts.UTC()
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
