package models

import (
	"time"
)

// Contract is a stored contract document together with the results of text
// extraction and rule-based risk scoring. The AI narrative is filled in
// lazily by the analyze endpoint.
type Contract struct {
	ID            string     `json:"id" db:"id"`
	Filename      string     `json:"filename" db:"filename"`
	FileSize      int64      `json:"file_size" db:"file_size"`
	Format        string     `json:"format" db:"format"`
	S3Key         string     `json:"s3_key" db:"s3_key"`
	ExtractedText string     `json:"extracted_text,omitempty" db:"extracted_text"`
	RiskLevel     string     `json:"risk_level" db:"risk_level"`
	RiskFindings  []string   `json:"risk_findings" db:"risk_findings"`
	AIReport      *string    `json:"ai_report,omitempty" db:"ai_report"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	AnalyzedAt    *time.Time `json:"analyzed_at,omitempty" db:"analyzed_at"`
}

type UploadRequest struct {
	File     []byte
	Filename string
	Format   string
}

type UploadResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	Format       string    `json:"format"`
	RiskLevel    string    `json:"risk_level"`
	RiskFindings []string  `json:"risk_findings"`
	CreatedAt    time.Time `json:"created_at"`
	Message      string    `json:"message"`
}

type AnalysisResponse struct {
	ID           string    `json:"id"`
	RiskLevel    string    `json:"risk_level"`
	RiskFindings []string  `json:"risk_findings"`
	AIReport     string    `json:"ai_report"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}
