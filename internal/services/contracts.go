package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nmwangi/contract-risk-api/internal/analyzer"
	"github.com/nmwangi/contract-risk-api/internal/extractor"
	"github.com/nmwangi/contract-risk-api/internal/models"
	"github.com/nmwangi/contract-risk-api/internal/repository"
	"github.com/nmwangi/contract-risk-api/internal/risk"
	"github.com/nmwangi/contract-risk-api/internal/storage"
	"github.com/nmwangi/contract-risk-api/internal/utils"
)

// Fallback narratives used when the AI analyzer is unconfigured or fails.
// Per the degradation policy these are presented as results, not errors.
const (
	AnalysisUnavailableMessage = "AI analysis unavailable. Showing rule-based detection only."
	AnalysisFailedMessage      = "AI analysis temporarily unavailable."
)

type ContractService interface {
	UploadContract(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	AnalyzeContract(ctx context.Context, id string) (*models.AnalysisResponse, error)
	GetContract(ctx context.Context, id string) (*models.Contract, error)
	BuildReport(ctx context.Context, id string) (string, error)
}

type contractService struct {
	repo     repository.Repository
	storage  storage.Storage
	analyzer analyzer.Analyzer
	logger   *utils.Logger
}

// NewService wires the contract pipeline. analyzer may be nil, in which case
// AI analysis degrades to the rule-based fallback message.
func NewService(repo repository.Repository, store storage.Storage, llmAnalyzer analyzer.Analyzer, logger *utils.Logger) ContractService {
	return &contractService{
		repo:     repo,
		storage:  store,
		analyzer: llmAnalyzer,
		logger:   logger,
	}
}

func (s *contractService) UploadContract(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	contractID := utils.GenerateID()
	format := extractor.Format(req.Format)

	extractedText, err := extractor.Extract(req.File, format)
	if err != nil {
		s.logger.Error("Failed to extract text", "error", err, "format", req.Format, "filename", req.Filename)
		if errors.Is(err, extractor.ErrDecode) {
			return nil, utils.NewBadRequestError("File could not be decoded as text")
		}
		return nil, utils.NewBadRequestError(fmt.Sprintf("Failed to extract text from document: %v", err))
	}

	if strings.TrimSpace(extractedText) == "" {
		s.logger.Warn("No text extracted from contract", "filename", req.Filename)
		return nil, utils.NewBadRequestError("No text could be extracted from the document. The file may be empty or corrupted")
	}

	assessment := risk.Score(extractedText)

	s3Key := fmt.Sprintf("contracts/%s/%s", contractID, req.Filename)
	if err := s.storage.Upload(ctx, s3Key, req.File, contentTypeForFormat(format)); err != nil {
		s.logger.Error("Failed to upload to S3", "error", err, "s3_key", s3Key)
		return nil, utils.NewInternalError("Failed to store contract")
	}

	now := time.Now()
	contract := &models.Contract{
		ID:            contractID,
		Filename:      req.Filename,
		FileSize:      int64(len(req.File)),
		Format:        string(format),
		S3Key:         s3Key,
		ExtractedText: extractedText,
		RiskLevel:     string(assessment.Level),
		RiskFindings:  assessment.Findings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, contract); err != nil {
		s.logger.Error("Failed to save contract to database", "error", err, "contract_id", contractID)
		_ = s.storage.Delete(ctx, s3Key)
		return nil, utils.NewInternalError("Failed to save contract metadata")
	}

	s.logger.Info("Contract uploaded",
		"id", contractID,
		"filename", req.Filename,
		"format", format,
		"risk_level", assessment.Level,
		"findings", len(assessment.Findings),
		"text_length", len(extractedText))

	return &models.UploadResponse{
		ID:           contractID,
		Filename:     req.Filename,
		FileSize:     contract.FileSize,
		Format:       contract.Format,
		RiskLevel:    contract.RiskLevel,
		RiskFindings: contract.RiskFindings,
		CreatedAt:    now,
		Message:      "Contract uploaded. Use /contracts/{id}/analyze for an AI risk assessment.",
	}, nil
}

func (s *contractService) AnalyzeContract(ctx context.Context, id string) (*models.AnalysisResponse, error) {
	contract, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get contract", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve contract")
	}
	if contract == nil {
		return nil, utils.NewNotFoundError("Contract not found")
	}

	if contract.AnalyzedAt != nil && contract.AIReport != nil {
		s.logger.Info("Contract already analyzed, returning cached report", "id", id)
		return &models.AnalysisResponse{
			ID:           contract.ID,
			RiskLevel:    contract.RiskLevel,
			RiskFindings: contract.RiskFindings,
			AIReport:     *contract.AIReport,
			AnalyzedAt:   *contract.AnalyzedAt,
		}, nil
	}

	if s.analyzer == nil {
		s.logger.Warn("Analyzer not configured, returning rule-based results only", "id", id)
		return s.fallbackResponse(contract, AnalysisUnavailableMessage), nil
	}

	s.logger.Info("Starting contract analysis", "id", id, "text_length", len(contract.ExtractedText))
	report, err := s.analyzer.Analyze(ctx, contract.ExtractedText)
	if err != nil {
		// Analyzer failures are collapsed into a fallback narrative and not
		// cached, so a later call can retry.
		s.logger.Error("AI analysis failed", "error", err, "id", id)
		return s.fallbackResponse(contract, AnalysisFailedMessage), nil
	}

	analyzedAt := time.Now()
	if err := s.repo.UpdateAIReport(ctx, id, report, analyzedAt); err != nil {
		s.logger.Error("Failed to save analysis", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to save analysis results")
	}

	s.logger.Info("Contract analyzed", "id", id, "report_length", len(report))

	return &models.AnalysisResponse{
		ID:           contract.ID,
		RiskLevel:    contract.RiskLevel,
		RiskFindings: contract.RiskFindings,
		AIReport:     report,
		AnalyzedAt:   analyzedAt,
	}, nil
}

func (s *contractService) GetContract(ctx context.Context, id string) (*models.Contract, error) {
	contract, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get contract", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve contract")
	}
	if contract == nil {
		return nil, utils.NewNotFoundError("Contract not found")
	}

	return contract, nil
}

// BuildReport renders the downloadable plain-text analysis report.
func (s *contractService) BuildReport(ctx context.Context, id string) (string, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Contract Risk Analysis Report\n")
	b.WriteString("=============================\n\n")
	fmt.Fprintf(&b, "File: %s\n", contract.Filename)
	b.WriteString("Contract Type: Commercial / Service Agreement\n")
	fmt.Fprintf(&b, "Overall Risk Level: %s\n\n", contract.RiskLevel)

	b.WriteString("Detected Risky Clauses:\n")
	if len(contract.RiskFindings) == 0 {
		b.WriteString("No major risky clauses detected.\n")
	} else {
		for _, finding := range contract.RiskFindings {
			fmt.Fprintf(&b, "- %s\n", finding)
		}
	}

	b.WriteString("\nAI Explanation:\n")
	if contract.AIReport != nil {
		b.WriteString(*contract.AIReport)
	} else {
		b.WriteString(AnalysisUnavailableMessage)
	}
	b.WriteString("\n")

	return b.String(), nil
}

func (s *contractService) fallbackResponse(contract *models.Contract, message string) *models.AnalysisResponse {
	return &models.AnalysisResponse{
		ID:           contract.ID,
		RiskLevel:    contract.RiskLevel,
		RiskFindings: contract.RiskFindings,
		AIReport:     message,
		AnalyzedAt:   time.Now(),
	}
}

func contentTypeForFormat(format extractor.Format) string {
	switch format {
	case extractor.FormatPDF:
		return "application/pdf"
	case extractor.FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}
