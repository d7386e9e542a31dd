package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/sixsigma-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/sixsigma-analytics-api/pkg/log"
)

// defaultRunsLimit limita a listagem de execuções quando o cliente não informa limit
const defaultRunsLimit = 50

// RunAnalysisRequest carrega os parâmetros opcionais de uma execução. Campos
// vazios são preenchidos com os valores configurados do GA4
type RunAnalysisRequest struct {
	PropertyID string  `json:"property_id,omitempty"`
	StartDate  string  `json:"start_date,omitempty"`
	EndDate    string  `json:"end_date,omitempty"`
	Alpha      float64 `json:"alpha,omitempty"`
}

// AnalysisKindsResponse descreve os estudos disponíveis e os limites de
// especificação usados pelo estudo de capacidade
type AnalysisKindsResponse struct {
	Kinds          []domain.AnalysisKind                 `json:"kinds"`
	Specifications map[string]domain.MetricSpecification `json:"specifications"`
}

// RunAnalysis dispara a execução síncrona de um estudo e retorna o registro
// da execução com o caminho do relatório gerado
func RunAnalysis(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		kindParam := httprouter.ParamsFromContext(r.Context()).ByName("kind")
		kind, err := domain.ParseAnalysisKind(kindParam)
		if err != nil {
			logger.WithField("kind", kindParam).Warn("analysis: unknown analysis kind requested")
			apiErrors.WriteError(w, apiErrors.ErrUnknownAnalysis, err.Error(), map[string]any{
				"kinds": domain.AnalysisKinds(),
			})
			return
		}

		// O corpo é opcional: sem body, a execução usa os valores configurados
		var req RunAnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.WithField("error", err.Error()).Warn("analysis: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		params := domain.ReportParams{
			PropertyID: req.PropertyID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Alpha:      req.Alpha,
		}

		logger.WithFields(log.Fields{
			"kind":        kind,
			"property_id": params.PropertyID,
			"start_date":  params.StartDate,
			"end_date":    params.EndDate,
		}).Info("analysis: starting analysis run")

		run, err := service.Run(r.Context(), kind, params)
		if err != nil {
			writeAnalysisError(w, logger, kind, run, err)
			return
		}

		logger.WithFields(log.Fields{
			"kind":        kind,
			"run_id":      run.ID,
			"report_path": run.ReportPath,
		}).Info("analysis: analysis run completed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(run); err != nil {
			logger.WithField("error", err.Error()).Error("analysis: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// ListAnalysisRuns lista as execuções registradas, opcionalmente filtradas por
// tipo de estudo via query string
func ListAnalysisRuns(repo repository.AnalysisRunRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		kind := r.URL.Query().Get("kind")
		if kind != "" {
			if _, err := domain.ParseAnalysisKind(kind); err != nil {
				logger.WithField("kind", kind).Warn("analysis: unknown analysis kind in filter")
				apiErrors.WriteError(w, apiErrors.ErrUnknownAnalysis, err.Error(), nil)
				return
			}
		}

		limit := uint64(defaultRunsLimit)
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.ParseUint(limitParam, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		runs, err := repo.ListRuns(kind, limit)
		if err != nil {
			logger.WithField("error", err.Error()).Error("analysis: failed to list analysis runs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar execuções", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(runs); err != nil {
			logger.WithField("error", err.Error()).Error("analysis: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// GetAnalysisRun retorna uma execução registrada pelo seu ID
func GetAnalysisRun(repo repository.AnalysisRunRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da execução não fornecido", nil)
			return
		}

		run, err := repo.GetRun(id)
		if err != nil {
			logger.WithFields(log.Fields{
				"run_id": id,
				"error":  err.Error(),
			}).Error("analysis: failed to fetch analysis run")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar execução", nil)
			return
		}

		if run == nil {
			apiErrors.WriteError(w, apiErrors.ErrRunNotFound, "Execução não encontrada", map[string]any{
				"run_id": id,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(run); err != nil {
			logger.WithField("error", err.Error()).Error("analysis: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// ListAnalysisKinds retorna os estudos disponíveis e os limites de
// especificação de cada métrica
func ListAnalysisKinds() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		response := AnalysisKindsResponse{
			Kinds:          domain.AnalysisKinds(),
			Specifications: domain.MetricSpecifications(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithField("error", err.Error()).Error("analysis: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// writeAnalysisError traduz as falhas das execuções para o envelope de erros
// da API
func writeAnalysisError(w http.ResponseWriter, logger log.Logger, kind domain.AnalysisKind, run *domain.AnalysisRun, err error) {
	var details map[string]any
	if run != nil {
		details = map[string]any{
			"run_id": run.ID,
			"status": run.Status,
		}
	}

	logger.WithFields(log.Fields{
		"kind":  kind,
		"error": err.Error(),
	}).Error("analysis: analysis run failed")

	switch {
	case errors.Is(err, analyzing.ErrNoAnalyticsData):
		apiErrors.WriteError(w, apiErrors.ErrNoAnalyticsData, err.Error(), details)

	case errors.Is(err, analyzing.ErrInvalidAlpha):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), details)

	default:
		apiErrors.WriteError(w, apiErrors.ErrAnalysisFailed, "Erro ao executar a análise", details)
	}
}
