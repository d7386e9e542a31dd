package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/usecases/analyzing"
)

// ReportRefreshConfig representa a configuração do agendador de atualização
// dos relatórios
type ReportRefreshConfig struct {
	CronSchedule   string
	RefreshEnabled bool
}

// ReportRefreshService agenda a reexecução periódica dos sete estudos para
// manter os relatórios atualizados com os dados mais recentes
type ReportRefreshService struct {
	scheduler              *gocron.Scheduler
	config                 ReportRefreshConfig
	analyzer               analyzing.Analyzer
	refreshRunning         bool
	refreshMutex           sync.Mutex
	lastRefreshStartedAt   time.Time
	lastRefreshCompletedAt time.Time
}

// NewReportRefreshService cria uma nova instância do serviço de atualização de relatórios
func NewReportRefreshService(analyzer analyzing.Analyzer, appConfig *config.Config) *ReportRefreshService {
	refreshConfig := ReportRefreshConfig{
		CronSchedule:   appConfig.ReportRefresh.CronSchedule,
		RefreshEnabled: appConfig.ReportRefresh.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   refreshConfig.CronSchedule,
		"refresh_enabled": refreshConfig.RefreshEnabled,
	}).Info("Configuração do agendador de atualização de relatórios carregada")

	return &ReportRefreshService{
		scheduler:      scheduler,
		config:         refreshConfig,
		analyzer:       analyzer,
		refreshRunning: false,
	}
}

// Start inicia o agendador
func (s *ReportRefreshService) Start(ctx context.Context) error {
	if !s.config.RefreshEnabled {
		logrus.Info("Atualização agendada de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização de relatórios: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshReports executa os sete estudos com os parâmetros padrão da
// configuração. As falhas individuais ficam registradas nas execuções
func (s *ReportRefreshService) refreshReports() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Atualização de relatórios já em andamento, ignorando")
		return
	}
	s.refreshRunning = true
	s.refreshMutex.Unlock()

	startTime := time.Now()
	s.lastRefreshStartedAt = startTime

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.refreshMutex.Unlock()
	}()

	logrus.Info("Iniciando atualização agendada de relatórios")

	runs, err := s.analyzer.RunAll(context.Background(), domain.ReportParams{})
	if err != nil {
		logrus.WithError(err).Error("Atualização de relatórios concluída com falhas")
	}

	var completed int
	for _, run := range runs {
		if run.Status == domain.RunStatusCompleted {
			completed++
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"runs":      len(runs),
		"completed": completed,
	}).Info("Atualização agendada de relatórios concluída")

	s.lastRefreshCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma atualização dos relatórios
func (s *ReportRefreshService) TriggerManualSync() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Atualização de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.refreshMutex.Unlock()

	logrus.Info("Iniciando atualização manual de relatórios")
	go s.refreshReports()
}

// GetStatus retorna o status atual do agendador
func (s *ReportRefreshService) GetStatus() map[string]any {
	return map[string]any{
		"refresh_enabled":           s.config.RefreshEnabled,
		"refresh_cron":              s.config.CronSchedule,
		"last_refresh_started_at":   s.lastRefreshStartedAt,
		"last_refresh_completed_at": s.lastRefreshCompletedAt,
	}
}
