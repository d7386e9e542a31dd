package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

const metricSnapshotsTable = "metric_snapshots"

// snapshotBatchSize limita os parâmetros por statement nos upserts em lote
const snapshotBatchSize = 500

type MetricSnapshotRepository interface {
	SaveTable(table *domain.AnalyticsTable) error
	GetTable(propertyID, startDate, endDate string) (*domain.AnalyticsTable, error)
	GetLatestFetch(propertyID string) (*time.Time, error)
}

type metricSnapshotRepository struct {
	conn *postgres.Connection
}

func NewMetricSnapshotRepository(conn *postgres.Connection) MetricSnapshotRepository {
	return &metricSnapshotRepository{
		conn: conn,
	}
}

// snapshotCell é uma célula da tabela: o valor de uma métrica para um evento
// (e opcionalmente uma data)
type snapshotCell struct {
	eventName string
	eventDate string
	metric    string
	value     float64
}

func (r *metricSnapshotRepository) SaveTable(table *domain.AnalyticsTable) error {
	if table.IsEmpty() {
		return nil
	}

	cells := make([]snapshotCell, 0, len(table.Rows)*len(table.Metrics))
	for _, row := range table.Rows {
		for _, metric := range table.Metrics {
			value, ok := row.Values[metric]
			if !ok {
				continue
			}
			cells = append(cells, snapshotCell{
				eventName: row.EventName,
				eventDate: row.Date,
				metric:    metric,
				value:     value,
			})
		}
	}

	for start := 0; start < len(cells); start += snapshotBatchSize {
		end := start + snapshotBatchSize
		if end > len(cells) {
			end = len(cells)
		}

		if err := r.upsertCells(table, cells[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (r *metricSnapshotRepository) upsertCells(table *domain.AnalyticsTable, cells []snapshotCell) error {
	query := squirrel.StatementBuilder.
		Insert(metricSnapshotsTable).
		Columns("property_id", "start_date", "end_date", "event_name", "event_date", "metric", "value", "fetched_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, cell := range cells {
		query = query.Values(
			table.PropertyID,
			table.StartDate,
			table.EndDate,
			cell.eventName,
			cell.eventDate,
			cell.metric,
			cell.value,
			table.FetchedAt,
		)
	}

	// Em caso de conflito, o valor mais recente vence
	query = query.Suffix(`
			ON CONFLICT (property_id, start_date, end_date, event_name, event_date, metric) DO UPDATE SET
				value = EXCLUDED.value,
				fetched_at = EXCLUDED.fetched_at
		`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return err
	}

	return nil
}

func (r *metricSnapshotRepository) GetTable(propertyID, startDate, endDate string) (*domain.AnalyticsTable, error) {
	queryBuilder := squirrel.
		Select("event_name", "event_date", "metric", "value", "fetched_at").
		From(metricSnapshotsTable).
		Where(squirrel.Eq{
			"property_id": propertyID,
			"start_date":  startDate,
			"end_date":    endDate,
		}).
		OrderBy("event_date ASC", "event_name ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	snapshotSQL, snapshotArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(snapshotSQL, snapshotArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar snapshots: %w", err)
	}
	defer rows.Close()

	table := &domain.AnalyticsTable{
		PropertyID: propertyID,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	rowIndex := make(map[string]int)
	metricsSeen := make(map[string]bool)

	for rows.Next() {
		var (
			eventName string
			eventDate string
			metric    string
			value     float64
			fetchedAt time.Time
		)

		if err := rows.Scan(&eventName, &eventDate, &metric, &value, &fetchedAt); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}

		key := eventDate + "\x00" + eventName
		idx, exists := rowIndex[key]
		if !exists {
			table.Rows = append(table.Rows, domain.MetricRow{
				EventName: eventName,
				Date:      eventDate,
				Values:    make(map[string]float64),
			})
			idx = len(table.Rows) - 1
			rowIndex[key] = idx
		}

		table.Rows[idx].Values[metric] = value
		metricsSeen[metric] = true

		if fetchedAt.After(table.FetchedAt) {
			table.FetchedAt = fetchedAt
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	if len(table.Rows) == 0 {
		return nil, nil
	}

	table.Metrics = orderMetrics(metricsSeen)

	return table, nil
}

func (r *metricSnapshotRepository) GetLatestFetch(propertyID string) (*time.Time, error) {
	queryBuilder := squirrel.
		Select("MAX(fetched_at)").
		From(metricSnapshotsTable).
		Where(squirrel.Eq{"property_id": propertyID}).
		PlaceholderFormat(squirrel.Dollar)

	snapshotSQL, snapshotArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var latest sql.NullTime
	if err := r.conn.QueryRow(snapshotSQL, snapshotArgs...).Scan(&latest); err != nil {
		return nil, fmt.Errorf("erro ao consultar última sincronização: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}

	return &latest.Time, nil
}

// orderMetrics devolve as métricas presentes na ordem padrão dos relatórios;
// métricas fora do conjunto padrão vão para o final
func orderMetrics(seen map[string]bool) []string {
	metrics := make([]string, 0, len(seen))
	for _, metric := range domain.DefaultMetrics() {
		if seen[metric] {
			metrics = append(metrics, metric)
			delete(seen, metric)
		}
	}

	extras := make([]string, 0, len(seen))
	for metric := range seen {
		extras = append(extras, metric)
	}
	sort.Strings(extras)

	return append(metrics, extras...)
}
