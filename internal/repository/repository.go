package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nmwangi/contract-risk-api/internal/models"
)

type Repository interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id string) (*models.Contract, error)
	UpdateAIReport(ctx context.Context, id, report string, analyzedAt time.Time) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, contract *models.Contract) error {
	findingsJSON, err := json.Marshal(contract.RiskFindings)
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}

	query := `
		INSERT INTO contracts (id, filename, file_size, format, s3_key, extracted_text, risk_level, risk_findings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(ctx, query,
		contract.ID,
		contract.Filename,
		contract.FileSize,
		contract.Format,
		contract.S3Key,
		contract.ExtractedText,
		contract.RiskLevel,
		string(findingsJSON),
		contract.CreatedAt,
		contract.UpdatedAt,
	)

	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Contract, error) {
	var contract models.Contract
	var findingsJSON string

	query := `
		SELECT id, filename, file_size, format, s3_key, extracted_text,
		       risk_level, risk_findings, ai_report, created_at, updated_at, analyzed_at
		FROM contracts
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&contract.ID,
		&contract.Filename,
		&contract.FileSize,
		&contract.Format,
		&contract.S3Key,
		&contract.ExtractedText,
		&contract.RiskLevel,
		&findingsJSON,
		&contract.AIReport,
		&contract.CreatedAt,
		&contract.UpdatedAt,
		&contract.AnalyzedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if findingsJSON != "" {
		if err := json.Unmarshal([]byte(findingsJSON), &contract.RiskFindings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal findings: %w", err)
		}
	}

	return &contract, nil
}

func (r *repository) UpdateAIReport(ctx context.Context, id, report string, analyzedAt time.Time) error {
	query := `
		UPDATE contracts
		SET ai_report = $2, analyzed_at = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, report, analyzedAt, time.Now())

	return err
}
