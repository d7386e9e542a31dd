package domain

import (
	"math"
	"time"
)

// MetricRow é uma linha da tabela de métricas do GA4: um evento (e
// opcionalmente uma data) com o valor de cada métrica consultada
type MetricRow struct {
	EventName string             `json:"event_name"`
	Date      string             `json:"date,omitempty"`
	Values    map[string]float64 `json:"values"`
}

// AnalyticsTable é a tabela de métricas retornada pelo GA4 (ou carregada de
// um snapshot CSV). Lida uma vez, analisada uma vez, relatada uma vez.
type AnalyticsTable struct {
	PropertyID string      `json:"property_id"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	Metrics    []string    `json:"metrics"`
	Rows       []MetricRow `json:"rows"`
	FetchedAt  time.Time   `json:"fetched_at"`
}

// IsEmpty indica se a tabela não possui linhas
func (t *AnalyticsTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Column retorna os valores de uma métrica na ordem das linhas, ignorando
// células ausentes ou NaN
func (t *AnalyticsTable) Column(metric string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, ok := row.Values[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Events retorna os nomes de evento na ordem da primeira aparição
func (t *AnalyticsTable) Events() []string {
	seen := make(map[string]bool, len(t.Rows))
	events := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if seen[row.EventName] {
			continue
		}
		seen[row.EventName] = true
		events = append(events, row.EventName)
	}
	return events
}

// GroupByEvent agrupa os valores de uma métrica por nome de evento,
// ignorando células ausentes ou NaN
func (t *AnalyticsTable) GroupByEvent(metric string) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, row := range t.Rows {
		v, ok := row.Values[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		groups[row.EventName] = append(groups[row.EventName], v)
	}
	return groups
}

// HasDates indica se a tabela foi consultada com a dimensão de data
func (t *AnalyticsTable) HasDates() bool {
	for _, row := range t.Rows {
		if row.Date != "" {
			return true
		}
	}
	return false
}

// PairedColumns retorna as colunas de várias métricas alinhadas por linha,
// descartando linhas em que qualquer métrica esteja ausente ou NaN. É a
// limpeza usada pela regressão e pela ANOVA, que precisam de linhas completas.
func (t *AnalyticsTable) PairedColumns(metrics ...string) [][]float64 {
	columns := make([][]float64, len(metrics))
	for i := range columns {
		columns[i] = make([]float64, 0, len(t.Rows))
	}

rows:
	for _, row := range t.Rows {
		values := make([]float64, len(metrics))
		for i, metric := range metrics {
			v, ok := row.Values[metric]
			if !ok || math.IsNaN(v) {
				continue rows
			}
			values[i] = v
		}
		for i, v := range values {
			columns[i] = append(columns[i], v)
		}
	}
	return columns
}
