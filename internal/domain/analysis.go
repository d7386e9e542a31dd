package domain

import (
	"fmt"
	"time"
)

// AnalysisKind identifica cada estudo estatístico disponível
type AnalysisKind string

const (
	AnalysisCapability AnalysisKind = "capability"
	AnalysisGageRnR    AnalysisKind = "gage_rnr"
	AnalysisPareto     AnalysisKind = "pareto"
	AnalysisAnova      AnalysisKind = "anova"
	AnalysisHypothesis AnalysisKind = "hypothesis"
	AnalysisDOE        AnalysisKind = "doe"
	AnalysisRegression AnalysisKind = "regression"
)

// AnalysisKinds retorna os estudos na ordem de execução do RunAll
func AnalysisKinds() []AnalysisKind {
	return []AnalysisKind{
		AnalysisCapability,
		AnalysisGageRnR,
		AnalysisPareto,
		AnalysisAnova,
		AnalysisHypothesis,
		AnalysisDOE,
		AnalysisRegression,
	}
}

// ParseAnalysisKind valida o identificador de um estudo vindo da API ou da CLI
func ParseAnalysisKind(s string) (AnalysisKind, error) {
	kind := AnalysisKind(s)
	for _, known := range AnalysisKinds() {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("análise desconhecida: %q", s)
}

// RunStatus é o estado de uma execução registrada
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AnalysisRun registra uma execução de estudo e o caminho do relatório gerado
type AnalysisRun struct {
	ID         string       `json:"id"`
	Kind       AnalysisKind `json:"kind"`
	PropertyID string       `json:"property_id"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	Status     RunStatus    `json:"status"`
	ReportPath string       `json:"report_path"`
	Error      *string      `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
}

// ReportParams são os parâmetros de uma execução de estudo
type ReportParams struct {
	PropertyID string  `json:"property_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Alpha      float64 `json:"alpha"`
}
