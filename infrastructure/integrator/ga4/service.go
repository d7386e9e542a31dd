package ga4

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	ga4domain "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/ga4client"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

// reportRowLimit evita paginação nas consultas; as tabelas de eventos dos
// estudos ficam muito abaixo desse limite
const reportRowLimit = "100000"

type AnalyticsIntegrator interface {
	FetchEventMetrics(ctx context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error)
	FetchDailyEventMetrics(ctx context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error)
}

type GA4Service struct {
	cfg    *config.Config
	Client ga4client.Client
}

func New(cfg *config.Config, client ga4client.Client) AnalyticsIntegrator {
	return &GA4Service{
		cfg:    cfg,
		Client: client,
	}
}

// FetchEventMetrics consulta as métricas agregadas por nome de evento no
// intervalo informado
func (s *GA4Service) FetchEventMetrics(ctx context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error) {
	return s.fetch(ctx, params, false)
}

// FetchDailyEventMetrics consulta as métricas por nome de evento e por dia,
// para os snapshots persistidos
func (s *GA4Service) FetchDailyEventMetrics(ctx context.Context, params domain.ReportParams) (*domain.AnalyticsTable, error) {
	return s.fetch(ctx, params, true)
}

func (s *GA4Service) fetch(ctx context.Context, params domain.ReportParams, withDate bool) (*domain.AnalyticsTable, error) {
	propertyID, startDate, endDate, err := s.resolveParams(params)
	if err != nil {
		return nil, err
	}

	dimensions := []ga4domain.Dimension{{Name: domain.DimensionEventName}}
	if withDate {
		dimensions = append(dimensions, ga4domain.Dimension{Name: domain.DimensionDate})
	}

	metrics := make([]ga4domain.Metric, 0, len(domain.DefaultMetrics()))
	for _, name := range domain.DefaultMetrics() {
		metrics = append(metrics, ga4domain.Metric{Name: name})
	}

	request := &ga4domain.RunReportRequest{
		DateRanges: []ga4domain.DateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: dimensions,
		Metrics:    metrics,
		Limit:      reportRowLimit,
	}

	resp, err := s.Client.RunReport(ctx, propertyID, request)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"property_id": propertyID,
			"start_date":  startDate,
			"end_date":    endDate,
			"error":       err.Error(),
		}).Error("analytics: failed to run report on GA4 API")
		return nil, err
	}

	table := FactoryAnalyticsTable(propertyID, startDate, endDate, resp)
	if table == nil {
		logrus.WithField("property_id", propertyID).Error("analytics: failed to convert report rows")
		return nil, fmt.Errorf("Error factory analytics table")
	}

	logrus.WithFields(logrus.Fields{
		"property_id": propertyID,
		"rows":        len(table.Rows),
		"metrics":     len(table.Metrics),
	}).Debug("analytics: successfully retrieved event metrics")

	return table, nil
}

// resolveParams aplica os defaults da configuração aos parâmetros da consulta
func (s *GA4Service) resolveParams(params domain.ReportParams) (string, string, string, error) {
	propertyID := params.PropertyID
	if propertyID == "" {
		propertyID = s.cfg.GA4.PropertyID
	}
	if propertyID == "" {
		return "", "", "", fmt.Errorf("GA4_PROPERTY_ID não configurado")
	}

	startDate := params.StartDate
	if startDate == "" {
		startDate = s.cfg.GA4.StartDate
	}

	endDate := params.EndDate
	if endDate == "" {
		endDate = s.cfg.GA4.EndDate
	}

	return propertyID, startDate, endDate, nil
}

// FactoryAnalyticsTable converte as linhas da resposta runReport na tabela de
// métricas dos estudos. Células não numéricas são descartadas com warning
func FactoryAnalyticsTable(propertyID, startDate, endDate string, resp *ga4domain.RunReportResponse) *domain.AnalyticsTable {
	eventIdx := resp.DimensionIndex(domain.DimensionEventName)
	if eventIdx < 0 {
		return nil
	}
	dateIdx := resp.DimensionIndex(domain.DimensionDate)

	metrics := make([]string, 0, len(resp.MetricHeaders))
	for _, header := range resp.MetricHeaders {
		metrics = append(metrics, header.Name)
	}

	rows := make([]domain.MetricRow, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if eventIdx >= len(row.DimensionValues) {
			continue
		}

		metricRow := domain.MetricRow{
			EventName: row.DimensionValues[eventIdx].Value,
			Values:    make(map[string]float64, len(metrics)),
		}

		if dateIdx >= 0 && dateIdx < len(row.DimensionValues) {
			metricRow.Date = formatReportDate(row.DimensionValues[dateIdx].Value)
		}

		for i, cell := range row.MetricValues {
			if i >= len(metrics) {
				break
			}

			value, err := strconv.ParseFloat(cell.Value, 64)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"event_name":   metricRow.EventName,
					"metric":       metrics[i],
					"metric_value": cell.Value,
					"error":        err.Error(),
				}).Warn("analytics: error converting metric value to float")
				continue
			}

			metricRow.Values[metrics[i]] = value
		}

		rows = append(rows, metricRow)
	}

	return &domain.AnalyticsTable{
		PropertyID: propertyID,
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    metrics,
		Rows:       rows,
		FetchedAt:  time.Now(),
	}
}

// formatReportDate normaliza a dimensão date do GA4 (YYYYMMDD) para YYYY-MM-DD
func formatReportDate(value string) string {
	if len(value) != 8 {
		return value
	}
	return value[:4] + "-" + value[4:6] + "-" + value[6:]
}
