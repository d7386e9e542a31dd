// Package snapshot carrega tabelas de métricas de arquivos CSV exportados,
// a alternativa offline à consulta direta na API do GA4.
package snapshot

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

// FileSource lê a tabela de métricas de um snapshot CSV no mesmo formato do
// analytics_data.csv gerado pelos relatórios
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchEventMetrics carrega o snapshot do disco. Os parâmetros preenchem os
// metadados da tabela, já que o CSV não os carrega
func (s *FileSource) FetchEventMetrics(_ context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir snapshot %s: %w", s.path, err)
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler snapshot %s: %w", s.path, err)
	}

	table.PropertyID = params.PropertyID
	table.StartDate = params.StartDate
	table.EndDate = params.EndDate

	logrus.WithFields(logrus.Fields{
		"path":    s.path,
		"rows":    len(table.Rows),
		"metrics": len(table.Metrics),
	}).Debug("snapshot: successfully loaded analytics table from file")

	return table, nil
}

// Parse lê uma tabela de métricas de um CSV com cabeçalho
// eventName[,date],<métricas...>. Linhas com valores não numéricos são
// descartadas com warning
func Parse(r io.Reader) (*domain.AnalyticsTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("snapshot vazio: arquivo sem cabeçalho")
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho: %w", err)
	}

	if len(header) < 2 || header[0] != domain.DimensionEventName {
		return nil, fmt.Errorf("cabeçalho inválido: esperado eventName[,date],<métricas...>, recebido %v", header)
	}

	metricsStart := 1
	hasDate := header[1] == domain.DimensionDate
	if hasDate {
		metricsStart = 2
	}

	metrics := header[metricsStart:]
	if len(metrics) == 0 {
		return nil, errors.New("cabeçalho inválido: nenhuma coluna de métrica")
	}

	rows := make([]domain.MetricRow, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++

		if err != nil {
			logrus.WithFields(logrus.Fields{
				"line":  line,
				"error": err.Error(),
			}).Warn("snapshot: dropping malformed CSV record")
			continue
		}

		row, ok := parseRecord(record, metrics, hasDate, line)
		if !ok {
			continue
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("snapshot vazio: nenhuma linha válida")
	}

	return &domain.AnalyticsTable{
		Metrics:   metrics,
		Rows:      rows,
		FetchedAt: time.Now(),
	}, nil
}

// parseRecord converte um registro do CSV em uma linha de métricas. Células
// vazias são omitidas; valores não numéricos descartam a linha inteira
func parseRecord(record, metrics []string, hasDate bool, line int) (domain.MetricRow, bool) {
	row := domain.MetricRow{
		EventName: record[0],
		Values:    make(map[string]float64, len(metrics)),
	}

	metricsStart := 1
	if hasDate {
		row.Date = record[1]
		metricsStart = 2
	}

	for i, metric := range metrics {
		idx := metricsStart + i
		if idx >= len(record) || record[idx] == "" {
			continue
		}

		value, err := strconv.ParseFloat(record[idx], 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"line":       line,
				"event_name": row.EventName,
				"metric":     metric,
				"value":      record[idx],
			}).Warn("snapshot: dropping row with non-numeric metric value")
			return domain.MetricRow{}, false
		}

		row.Values[metric] = value
	}

	return row, true
}

// TableRecords converte a tabela para o formato gravado em analytics_data.csv,
// o inverso de Parse. Células ausentes viram campos vazios
func TableRecords(table *domain.AnalyticsTable) ([]string, [][]string) {
	hasDates := table.HasDates()

	header := []string{domain.DimensionEventName}
	if hasDates {
		header = append(header, domain.DimensionDate)
	}
	header = append(header, table.Metrics...)

	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := []string{row.EventName}
		if hasDates {
			record = append(record, row.Date)
		}

		for _, metric := range table.Metrics {
			value, ok := row.Values[metric]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(value, 'g', -1, 64))
		}

		records = append(records, record)
	}

	return header, records
}
