package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

// AnalyticsSnapshotSyncConfig representa a configuração do agendador de snapshots do GA4
type AnalyticsSnapshotSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// AnalyticsSnapshotSyncService gerencia o agendamento e execução da
// sincronização das métricas diárias do GA4 para o banco
type AnalyticsSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              AnalyticsSnapshotSyncConfig
	appConfig           *config.Config
	analyticsService    ga4.AnalyticsIntegrator
	snapshotRepo        repository.MetricSnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAnalyticsSnapshotSyncService cria uma nova instância do serviço de sincronização de snapshots
func NewAnalyticsSnapshotSyncService(
	analyticsService ga4.AnalyticsIntegrator,
	snapshotRepo repository.MetricSnapshotRepository,
	appConfig *config.Config,
) *AnalyticsSnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := AnalyticsSnapshotSyncConfig{
		CronSchedule:        appConfig.SnapshotSync.CronSchedule,
		LookbackDays:        appConfig.SnapshotSync.LookbackDays,
		RequestDelaySeconds: appConfig.SnapshotSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.SnapshotSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots do GA4 carregada")

	return &AnalyticsSnapshotSyncService{
		scheduler:        scheduler,
		config:           syncConfig,
		appConfig:        appConfig,
		analyticsService: analyticsService,
		snapshotRepo:     snapshotRepo,
		syncRunning:      false,
	}
}

// Start inicia o agendador
func (s *AnalyticsSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots do GA4 desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de snapshots do GA4")

	// Agendar a sincronização dos snapshots
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSnapshots()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots do GA4: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de snapshots do GA4")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshots busca as métricas diárias do período de retroação e grava os
// snapshots no banco
func (s *AnalyticsSnapshotSyncService) syncSnapshots() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots do GA4 já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	dates := s.getDatesToProcess()
	logrus.WithFields(logrus.Fields{
		"property_id": s.appConfig.GA4.PropertyID,
		"days":        s.config.LookbackDays,
		"start_date":  dates[len(dates)-1].Format(time.DateOnly),
		"end_date":    dates[0].Format(time.DateOnly),
	}).Info("Iniciando sincronização de snapshots do GA4")

	saved := s.processSnapshotsForDates(dates)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":    duration.String(),
		"days":        len(dates),
		"days_salvos": saved,
	}).Info("Sincronização de snapshots do GA4 concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *AnalyticsSnapshotSyncService) getDatesToProcess() []time.Time {
	dates := make([]time.Time, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i-1) // Começar de ontem e ir para trás
	}
	return dates
}

// processSnapshotsForDates consulta e grava o snapshot de cada data em
// sequência, respeitando o intervalo entre requisições à API
func (s *AnalyticsSnapshotSyncService) processSnapshotsForDates(dates []time.Time) int {
	var saved int
	for i, date := range dates {
		if s.processSnapshotForDate(date) {
			saved++
		}

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		if i < len(dates)-1 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}
	return saved
}

// processSnapshotForDate consulta as métricas de um dia e grava o snapshot
func (s *AnalyticsSnapshotSyncService) processSnapshotForDate(date time.Time) bool {
	day := date.Format(time.DateOnly)
	params := domain.ReportParams{
		PropertyID: s.appConfig.GA4.PropertyID,
		StartDate:  day,
		EndDate:    day,
	}

	table, err := s.analyticsService.FetchDailyEventMetrics(context.Background(), params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"property_id": params.PropertyID,
			"date":        day,
			"error":       err.Error(),
		}).Error("Erro ao obter métricas do GA4 para a data")
		return false
	}

	if table.IsEmpty() {
		logrus.WithFields(logrus.Fields{
			"property_id": params.PropertyID,
			"date":        day,
		}).Warn("Nenhuma métrica do GA4 obtida para a data")
		return false
	}

	if err := s.snapshotRepo.SaveTable(table); err != nil {
		logrus.WithFields(logrus.Fields{
			"property_id": params.PropertyID,
			"date":        day,
			"error":       err.Error(),
		}).Error("Erro ao salvar snapshot do GA4 no banco de dados")
		return false
	}

	logrus.WithFields(logrus.Fields{
		"property_id": params.PropertyID,
		"date":        day,
		"rows":        len(table.Rows),
	}).Info("Snapshot do GA4 salvo com sucesso para a data")

	return true
}

// TriggerManualSync inicia manualmente uma sincronização de snapshots
func (s *AnalyticsSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots do GA4 já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots do GA4")
	go s.syncSnapshots()
}

// GetStatus retorna o status atual do agendador
func (s *AnalyticsSnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"property_id":            s.appConfig.GA4.PropertyID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
