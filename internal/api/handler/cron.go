package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/scheduler"
	"github.com/vfg2006/sixsigma-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/sixsigma-analytics-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSnapshots = "snapshots"
	CronJobTypeReports   = "reports"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SnapshotSyncService  *scheduler.AnalyticsSnapshotSyncService
	ReportRefreshService *scheduler.ReportRefreshService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("jobType")
		if jobType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch jobType {
		case CronJobTypeSnapshots:
			// Executar sincronização de snapshots do GA4
			if services.SnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de snapshots não disponível", nil)
				return
			}
			services.SnapshotSyncService.TriggerManualSync()

		case CronJobTypeReports:
			// Executar atualização dos relatórios estatísticos
			if services.ReportRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização de relatórios não disponível", nil)
				return
			}
			services.ReportRefreshService.TriggerManualSync()

		case CronJobTypeAll:
			// Executar ambas as sincronizações
			if services.SnapshotSyncService != nil {
				services.SnapshotSyncService.TriggerManualSync()
			}
			if services.ReportRefreshService != nil {
				services.ReportRefreshService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: snapshots, reports, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    jobType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status de uma cron job específica
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		jobType := httprouter.ParamsFromContext(r.Context()).ByName("jobType")

		var status map[string]any
		switch jobType {
		case CronJobTypeSnapshots:
			if services.SnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de snapshots não disponível", nil)
				return
			}
			status = services.SnapshotSyncService.GetStatus()

		case CronJobTypeReports:
			if services.ReportRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização de relatórios não disponível", nil)
				return
			}
			status = services.ReportRefreshService.GetStatus()

		case CronJobTypeAll:
			status = map[string]any{}
			if services.SnapshotSyncService != nil {
				status[CronJobTypeSnapshots] = services.SnapshotSyncService.GetStatus()
			}
			if services.ReportRefreshService != nil {
				status[CronJobTypeReports] = services.ReportRefreshService.GetStatus()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: snapshots, reports, all", nil)
			return
		}

		json.NewEncoder(w).Encode(status)
	}
}
