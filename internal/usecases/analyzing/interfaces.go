package analyzing

import (
	"context"

	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

// Source fornece a tabela de métricas consumida pelos estudos. É satisfeita
// tanto pelo integrador do GA4 quanto pelo leitor de snapshots CSV
type Source interface {
	// FetchEventMetrics obtém as métricas agregadas por evento para o período
	FetchEventMetrics(ctx context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error)
}

// Analyzer executa os estudos Six Sigma e grava os artefatos de relatório
type Analyzer interface {
	// RunCapability executa o estudo de capacidade do processo
	RunCapability(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunGageRnR executa o estudo de repetitividade e reprodutibilidade
	RunGageRnR(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunPareto executa a análise de Pareto das categorias de métricas
	RunPareto(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunANOVA executa a análise de variância das métricas de engajamento
	RunANOVA(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunHypothesis executa os testes de hipótese das métricas por evento
	RunHypothesis(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunDOE executa o planejamento fatorial de experimentos
	RunDOE(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunRegression executa a regressão multivariada do engajamento
	RunRegression(ctx context.Context, params domain.ReportParams) (*domain.AnalysisRun, error)

	// Run despacha o estudo identificado por kind
	Run(ctx context.Context, kind domain.AnalysisKind, params domain.ReportParams) (*domain.AnalysisRun, error)

	// RunAll executa os sete estudos em ordem fixa, coletando as falhas sem
	// interromper os demais
	RunAll(ctx context.Context, params domain.ReportParams) ([]*domain.AnalysisRun, error)
}
