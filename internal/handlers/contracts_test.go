package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nmwangi/contract-risk-api/internal/models"
	"github.com/nmwangi/contract-risk-api/internal/router"
	"github.com/nmwangi/contract-risk-api/internal/utils"
)

type stubService struct {
	uploadReq *models.UploadRequest
}

func (s *stubService) UploadContract(_ context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	s.uploadReq = req
	return &models.UploadResponse{
		ID:           "contract-1",
		Filename:     req.Filename,
		FileSize:     int64(len(req.File)),
		Format:       req.Format,
		RiskLevel:    "Medium",
		RiskFindings: []string{"Unilateral termination clause"},
		CreatedAt:    time.Now(),
		Message:      "ok",
	}, nil
}

func (s *stubService) AnalyzeContract(_ context.Context, id string) (*models.AnalysisResponse, error) {
	if id != "contract-1" {
		return nil, utils.NewNotFoundError("Contract not found")
	}
	return &models.AnalysisResponse{
		ID:         id,
		RiskLevel:  "Medium",
		AIReport:   "narrative",
		AnalyzedAt: time.Now(),
	}, nil
}

func (s *stubService) GetContract(_ context.Context, id string) (*models.Contract, error) {
	if id != "contract-1" {
		return nil, utils.NewNotFoundError("Contract not found")
	}
	return &models.Contract{ID: id, Filename: "contract.txt", RiskLevel: "Medium"}, nil
}

func (s *stubService) BuildReport(_ context.Context, id string) (string, error) {
	if id != "contract-1" {
		return "", utils.NewNotFoundError("Contract not found")
	}
	return "Contract Risk Analysis Report\n", nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubService) {
	t.Helper()
	svc := &stubService{}
	handler := router.NewRouter(svc, utils.NewLogger("error"))
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, svc
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadContractEndpoint(t *testing.T) {
	server, svc := newTestServer(t)

	body, contentType := multipartBody(t, "agreement.txt", []byte("Either party may terminate."))
	resp, err := http.Post(server.URL+"/api/v1/contracts/upload", contentType, body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var uploadResp models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if uploadResp.RiskLevel != "Medium" {
		t.Errorf("RiskLevel = %s, want Medium", uploadResp.RiskLevel)
	}
	if svc.uploadReq == nil || svc.uploadReq.Format != "plain-text" {
		t.Errorf("expected plain-text format tag, got %+v", svc.uploadReq)
	}
}

func TestUploadContractDerivesFormatFromSuffix(t *testing.T) {
	server, svc := newTestServer(t)

	body, contentType := multipartBody(t, "agreement.pdf", []byte("%PDF-fake"))
	resp, err := http.Post(server.URL+"/api/v1/contracts/upload", contentType, body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	resp.Body.Close()

	if svc.uploadReq == nil || svc.uploadReq.Format != "pdf" {
		t.Errorf("expected pdf format tag, got %+v", svc.uploadReq)
	}
}

func TestUploadContractWithoutFile(t *testing.T) {
	server, _ := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()

	resp, err := http.Post(server.URL+"/api/v1/contracts/upload", writer.FormDataContentType(), body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeContractEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/contracts/contract-1/analyze", "application/json", nil)
	if err != nil {
		t.Fatalf("POST analyze: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var analysisResp models.AnalysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&analysisResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if analysisResp.AIReport != "narrative" {
		t.Errorf("AIReport = %q, want %q", analysisResp.AIReport, "narrative")
	}
}

func TestGetContractNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/contracts/missing")
	if err != nil {
		t.Fatalf("GET contract: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDownloadReportEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/contracts/contract-1/report")
	if err != nil {
		t.Fatalf("GET report: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "contract_risk_report.txt") {
		t.Errorf("Content-Disposition = %q, want report filename", cd)
	}
}
