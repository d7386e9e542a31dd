package analyzing

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/pkg/utils"
)

// Service implementa a interface Analyzer executando os estudos estatísticos
// e gravando os artefatos de relatório
type Service struct {
	cfg           *config.Config
	source        Source
	writer        report.Writer
	runRepository repository.AnalysisRunRepository
}

// NewService cria o executor dos estudos Six Sigma
func NewService(cfg *config.Config, source Source, writer report.Writer) Analyzer {
	return &Service{
		cfg:    cfg,
		source: source,
		writer: writer,
	}
}

// WithRunRegistry habilita o registro das execuções no banco. Sem o registro
// (modo CLI) os estudos apenas gravam os artefatos
func (s *Service) WithRunRegistry(runRepository repository.AnalysisRunRepository) *Service {
	s.runRepository = runRepository
	return s
}

// studyFunc executa um estudo com os parâmetros já resolvidos e devolve o
// diretório do relatório gerado
type studyFunc func(ctx context.Context, params domain.ReportParams) (string, error)

func (s *Service) RunCapability(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisCapability, params, s.capabilityStudy)
}

func (s *Service) RunGageRnR(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisGageRnR, params, s.gageStudy)
}

func (s *Service) RunPareto(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisPareto, params, s.paretoStudy)
}

func (s *Service) RunANOVA(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisAnova, params, s.anovaStudy)
}

func (s *Service) RunHypothesis(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisHypothesis, params, s.hypothesisStudy)
}

func (s *Service) RunDOE(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisDOE, params, s.doeStudy)
}

func (s *Service) RunRegression(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error) {
	return s.execute(ctx, domain.AnalysisRegression, params, s.regressionStudy)
}

// Run despacha o estudo identificado por kind
func (s *Service) Run(ctx context.Context, kind domain.AnalysisKind, params domain.ReportParams) (*domain.AnalysisRun, error) {
	switch kind {
	case domain.AnalysisCapability:
		return s.RunCapability(ctx, params)
	case domain.AnalysisGageRnR:
		return s.RunGageRnR(ctx, params)
	case domain.AnalysisPareto:
		return s.RunPareto(ctx, params)
	case domain.AnalysisAnova:
		return s.RunANOVA(ctx, params)
	case domain.AnalysisHypothesis:
		return s.RunHypothesis(ctx, params)
	case domain.AnalysisDOE:
		return s.RunDOE(ctx, params)
	case domain.AnalysisRegression:
		return s.RunRegression(ctx, params)
	default:
		return nil, fmt.Errorf("análise desconhecida: %q", kind)
	}
}

// RunAll executa os sete estudos em ordem fixa. Uma falha não interrompe os
// demais: as execuções registradas são devolvidas junto com o resumo do erro
func (s *Service) RunAll(ctx context.Context, params domain.ReportParams) ([]*domain.AnalysisRun, error) {
	kinds := domain.AnalysisKinds()
	runs := make([]*domain.AnalysisRun, 0, len(kinds))

	var failed int
	for _, kind := range kinds {
		run, err := s.Run(ctx, kind, params)
		if err != nil {
			failed++
		}
		if run != nil {
			runs = append(runs, run)
		}
	}

	if failed > 0 {
		return runs, fmt.Errorf("%d de %d análises falharam", failed, len(kinds))
	}

	return runs, nil
}

// execute envolve um estudo com o registro de execução: cria o registro como
// running, roda o estudo e encerra como completed ou failed
func (s *Service) execute(ctx context.Context, kind domain.AnalysisKind, params domain.ReportParams, study studyFunc) (*domain.AnalysisRun, error) {
	params = s.resolveParams(params)

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o ID da execução: %w", err)
	}

	run := &domain.AnalysisRun{
		ID:         id,
		Kind:       kind,
		PropertyID: params.PropertyID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now(),
	}

	if s.runRepository != nil {
		if err := s.runRepository.SaveRun(run); err != nil {
			return nil, fmt.Errorf("erro ao registrar a execução: %w", err)
		}
	}

	logrus.Infof("analysis: iniciando %s (execução %s, período %s a %s)", kind, run.ID, params.StartDate, params.EndDate)

	reportDir, err := study(ctx, params)
	if err != nil {
		logrus.Errorf("analysis: %s falhou: %v", kind, err)
		s.finishRun(run, domain.RunStatusFailed, reportDir, err)
		return run, err
	}

	s.finishRun(run, domain.RunStatusCompleted, reportDir, nil)
	logrus.Infof("analysis: %s concluída, relatório em %s", kind, reportDir)

	return run, nil
}

// finishRun encerra o registro em memória e, quando o registro em banco está
// habilitado, persiste o desfecho. Falha na persistência não derruba o estudo
func (s *Service) finishRun(run *domain.AnalysisRun, status domain.RunStatus, reportPath string, runErr error) {
	now := time.Now()
	run.Status = status
	run.ReportPath = reportPath
	run.FinishedAt = &now

	var errMessage *string
	if runErr != nil {
		msg := runErr.Error()
		errMessage = &msg
		run.Error = errMessage
	}

	if s.runRepository == nil {
		return
	}

	if err := s.runRepository.UpdateRunStatus(run.ID, status, reportPath, errMessage); err != nil {
		logrus.Errorf("analysis: erro ao atualizar a execução %s: %v", run.ID, err)
	}
}

// resolveParams completa os parâmetros ausentes com os valores configurados.
// Alpha zero significa não informado; valores fora de (0,1) são mantidos para
// que o estudo os rejeite
func (s *Service) resolveParams(params domain.ReportParams) domain.ReportParams {
	if params.PropertyID == "" {
		params.PropertyID = s.cfg.GA4.PropertyID
	}
	if params.StartDate == "" {
		params.StartDate = s.cfg.GA4.StartDate
	}
	if params.EndDate == "" {
		params.EndDate = s.cfg.GA4.EndDate
	}
	if params.Alpha == 0 {
		params.Alpha = s.cfg.Analysis.Alpha
	}
	return params
}

func (s *Service) fetchTable(ctx context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error) {
	table, err := s.source.FetchEventMetrics(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter as métricas: %w", err)
	}
	if table.IsEmpty() {
		return nil, ErrNoAnalyticsData
	}
	return table, nil
}

// topEvents classifica os eventos pelo total de eventCount e devolve até
// limit nomes, preservando a ordem de aparição nos empates
func topEvents(table *domain.AnalyticsTable, limit int) []string {
	events := table.Events()

	totals := make(map[string]float64, len(events))
	for _, row := range table.Rows {
		v, ok := row.Values[domain.MetricEventCount]
		if !ok || math.IsNaN(v) {
			continue
		}
		totals[row.EventName] += v
	}

	sort.SliceStable(events, func(i, j int) bool {
		return totals[events[i]] > totals[events[j]]
	})

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events
}

// eventGroups monta os grupos de uma métrica na ordem dos eventos dados,
// descartando os grupos com menos de minSize observações
func eventGroups(table *domain.AnalyticsTable, metric string, events []string, minSize int) ([]string, [][]float64) {
	byEvent := table.GroupByEvent(metric)

	names := make([]string, 0, len(events))
	groups := make([][]float64, 0, len(events))
	for _, event := range events {
		values := byEvent[event]
		if len(values) < minSize {
			continue
		}
		names = append(names, event)
		groups = append(groups, values)
	}

	return names, groups
}
