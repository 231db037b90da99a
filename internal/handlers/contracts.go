package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/nmwangi/contract-risk-api/internal/extractor"
	"github.com/nmwangi/contract-risk-api/internal/models"
	"github.com/nmwangi/contract-risk-api/internal/services"
	"github.com/nmwangi/contract-risk-api/internal/utils"
)

const (
	MaxFileSize = 5 << 20 // 5MB
)

type ContractHandler struct {
	service services.ContractService
	logger  *utils.Logger
}

func NewContractHandler(service services.ContractService, logger *utils.Logger) *ContractHandler {
	return &ContractHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ContractHandler) UploadContract(w http.ResponseWriter, r *http.Request) {
	// Reject oversized requests early on Content-Length
	if r.ContentLength > MaxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds 5MB limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxFileSize)

	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, utils.NewBadRequestError("File size exceeds 5MB limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	// The format tag comes from the filename suffix; anything that is not
	// .pdf or .docx is treated as plain text.
	format := extractor.FormatFromFilename(header.Filename)

	h.logger.Info("Contract upload attempt",
		"filename", header.Filename,
		"format", format)

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	if len(data) > MaxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds 5MB limit"))
		return
	}

	if len(data) == 0 {
		h.respondError(w, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	req := &models.UploadRequest{
		File:     data,
		Filename: header.Filename,
		Format:   string(format),
	}

	resp, err := h.service.UploadContract(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *ContractHandler) AnalyzeContract(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Contract ID is required"))
		return
	}

	resp, err := h.service.AnalyzeContract(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Contract ID is required"))
		return
	}

	contract, err := h.service.GetContract(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, contract)
}

// DownloadReport serves the plain-text risk report as an attachment.
func (h *ContractHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Contract ID is required"))
		return
	}

	report, err := h.service.BuildReport(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contract_risk_report.txt"`)
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, report); err != nil {
		h.logger.Error("Failed to write report", "error", err)
	}
}

func (h *ContractHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *ContractHandler) respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	switch e := err.(type) {
	case *utils.AppError:
		status = e.StatusCode
		message = e.Message
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	h.logger.Error("Request error", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
