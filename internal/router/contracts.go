package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nmwangi/contract-risk-api/internal/handlers"
	"github.com/nmwangi/contract-risk-api/internal/middleware"
	"github.com/nmwangi/contract-risk-api/internal/services"
	"github.com/nmwangi/contract-risk-api/internal/utils"
)

func NewRouter(contractService services.ContractService, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	contractHandler := handlers.NewContractHandler(contractService, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Contract endpoints
	api.HandleFunc("/contracts/upload", contractHandler.UploadContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}/analyze", contractHandler.AnalyzeContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}", contractHandler.GetContract).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{id}/report", contractHandler.DownloadReport).Methods(http.MethodGet)

	return r
}
