package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

const analysisRunsTable = "analysis_runs"

type AnalysisRunRepository interface {
	SaveRun(run *domain.AnalysisRun) error
	UpdateRunStatus(id string, status domain.RunStatus, reportPath string, runError *string) error
	GetRun(id string) (*domain.AnalysisRun, error)
	ListRuns(kind string, limit uint64) ([]*domain.AnalysisRun, error)
}

type analysisRunRepository struct {
	conn *postgres.Connection
}

func NewAnalysisRunRepository(conn *postgres.Connection) AnalysisRunRepository {
	return &analysisRunRepository{
		conn: conn,
	}
}

func (r *analysisRunRepository) SaveRun(run *domain.AnalysisRun) error {
	queryBuilder := squirrel.
		Insert(analysisRunsTable).
		Columns("id", "kind", "property_id", "start_date", "end_date", "status", "report_path", "error", "started_at").
		Values(run.ID, run.Kind, run.PropertyID, run.StartDate, run.EndDate, run.Status, run.ReportPath, run.Error, run.StartedAt).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(runsSQL, runsArgs...)
	if err != nil {
		return fmt.Errorf("erro ao registrar execução: %w", err)
	}

	return nil
}

func (r *analysisRunRepository) UpdateRunStatus(id string, status domain.RunStatus, reportPath string, runError *string) error {
	queryBuilder := squirrel.
		Update(analysisRunsTable).
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if reportPath != "" {
		queryBuilder = queryBuilder.Set("report_path", reportPath)
	}

	if runError != nil {
		queryBuilder = queryBuilder.Set("error", runError)
	}

	// Execuções encerradas recebem o horário de término
	if status != domain.RunStatusRunning {
		queryBuilder = queryBuilder.Set("finished_at", time.Now())
	}

	runsSQL, runsArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(runsSQL, runsArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar execução: %w", err)
	}

	return nil
}

func (r *analysisRunRepository) GetRun(id string) (*domain.AnalysisRun, error) {
	queryBuilder := squirrel.
		Select("id", "kind", "property_id", "start_date", "end_date", "status", "report_path", "error", "started_at", "finished_at").
		From(analysisRunsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var run domain.AnalysisRun
	err = r.conn.QueryRow(runsSQL, runsArgs...).Scan(
		&run.ID,
		&run.Kind,
		&run.PropertyID,
		&run.StartDate,
		&run.EndDate,
		&run.Status,
		&run.ReportPath,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar execução: %w", err)
	}

	return &run, nil
}

func (r *analysisRunRepository) ListRuns(kind string, limit uint64) ([]*domain.AnalysisRun, error) {
	queryBuilder := squirrel.
		Select("id", "kind", "property_id", "start_date", "end_date", "status", "report_path", "error", "started_at", "finished_at").
		From(analysisRunsTable).
		OrderBy("started_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if kind != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"kind": kind})
	}

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(runsSQL, runsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar execuções: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.AnalysisRun, 0)
	for rows.Next() {
		var run domain.AnalysisRun
		if err := rows.Scan(
			&run.ID,
			&run.Kind,
			&run.PropertyID,
			&run.StartDate,
			&run.EndDate,
			&run.Status,
			&run.ReportPath,
			&run.Error,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return runs, nil
}
