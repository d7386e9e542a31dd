package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantErr  string
		validate func(t *testing.T, table *domain.AnalyticsTable)
	}{
		{
			name: "Deve ler tabela com cabeçalho de eventos e métricas",
			csv: "eventName,totalUsers,sessions\n" +
				"page_view,120,80\n" +
				"session_start,95,95\n",
			validate: func(t *testing.T, table *domain.AnalyticsTable) {
				assert.Equal(t, []string{"totalUsers", "sessions"}, table.Metrics)
				require.Len(t, table.Rows, 2)
				assert.Equal(t, "page_view", table.Rows[0].EventName)
				assert.Equal(t, 120.0, table.Rows[0].Values["totalUsers"])
				assert.Equal(t, 95.0, table.Rows[1].Values["sessions"])
				assert.False(t, table.HasDates())
			},
		},
		{
			name: "Deve reconhecer a coluna opcional de data",
			csv: "eventName,date,eventCount\n" +
				"page_view,2025-08-12,310\n",
			validate: func(t *testing.T, table *domain.AnalyticsTable) {
				assert.Equal(t, []string{"eventCount"}, table.Metrics)
				require.Len(t, table.Rows, 1)
				assert.Equal(t, "2025-08-12", table.Rows[0].Date)
				assert.True(t, table.HasDates())
			},
		},
		{
			name: "Deve descartar linhas com valores não numéricos",
			csv: "eventName,totalUsers\n" +
				"page_view,n/a\n" +
				"session_start,42\n",
			validate: func(t *testing.T, table *domain.AnalyticsTable) {
				require.Len(t, table.Rows, 1)
				assert.Equal(t, "session_start", table.Rows[0].EventName)
			},
		},
		{
			name: "Deve omitir células vazias sem descartar a linha",
			csv: "eventName,totalUsers,sessions\n" +
				"page_view,,80\n",
			validate: func(t *testing.T, table *domain.AnalyticsTable) {
				require.Len(t, table.Rows, 1)
				_, hasTotalUsers := table.Rows[0].Values["totalUsers"]
				assert.False(t, hasTotalUsers)
				assert.Equal(t, 80.0, table.Rows[0].Values["sessions"])
			},
		},
		{
			name: "Deve descartar registros com número errado de campos",
			csv: "eventName,totalUsers,sessions\n" +
				"page_view,120\n" +
				"session_start,95,95\n",
			validate: func(t *testing.T, table *domain.AnalyticsTable) {
				require.Len(t, table.Rows, 1)
				assert.Equal(t, "session_start", table.Rows[0].EventName)
			},
		},
		{
			name:    "Deve falhar quando o cabeçalho não começa com eventName",
			csv:     "metric,totalUsers\npage_view,120\n",
			wantErr: "cabeçalho inválido",
		},
		{
			name:    "Deve falhar quando não há colunas de métrica",
			csv:     "eventName,date\npage_view,2025-08-12\n",
			wantErr: "nenhuma coluna de métrica",
		},
		{
			name:    "Deve falhar com arquivo vazio",
			csv:     "",
			wantErr: "arquivo sem cabeçalho",
		},
		{
			name:    "Deve falhar quando nenhuma linha é válida",
			csv:     "eventName,totalUsers\npage_view,n/a\n",
			wantErr: "nenhuma linha válida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.csv))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, table)
			tt.validate(t, table)
		})
	}
}

func TestFileSource_FetchEventMetrics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analytics_data.csv")

	content := "eventName,totalUsers\npage_view,120\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source := NewFileSource(path)

	params := domain.ReportParams{
		PropertyID: "123456",
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-31",
	}

	table, err := source.FetchEventMetrics(context.Background(), params)
	require.NoError(t, err)

	// Os metadados vêm dos parâmetros, não do arquivo
	assert.Equal(t, "123456", table.PropertyID)
	assert.Equal(t, "2025-07-01", table.StartDate)
	assert.Equal(t, "2025-07-31", table.EndDate)
	require.Len(t, table.Rows, 1)
}

func TestFileSource_FetchEventMetrics_FileNotFound(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.csv"))

	table, err := source.FetchEventMetrics(context.Background(), domain.ReportParams{})
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Contains(t, err.Error(), "erro ao abrir snapshot")
}

func TestTableRecords(t *testing.T) {
	table := &domain.AnalyticsTable{
		Metrics: []string{"totalUsers", "sessions"},
		Rows: []domain.MetricRow{
			{EventName: "page_view", Values: map[string]float64{"totalUsers": 120, "sessions": 80.5}},
			{EventName: "session_start", Values: map[string]float64{"sessions": 95}},
		},
	}

	header, records := TableRecords(table)

	assert.Equal(t, []string{"eventName", "totalUsers", "sessions"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"page_view", "120", "80.5"}, records[0])

	// Célula ausente vira campo vazio
	assert.Equal(t, []string{"session_start", "", "95"}, records[1])
}

func TestTableRecords_ComData(t *testing.T) {
	table := &domain.AnalyticsTable{
		Metrics: []string{"eventCount"},
		Rows: []domain.MetricRow{
			{EventName: "page_view", Date: "2025-08-12", Values: map[string]float64{"eventCount": 310}},
		},
	}

	header, records := TableRecords(table)

	assert.Equal(t, []string{"eventName", "date", "eventCount"}, header)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"page_view", "2025-08-12", "310"}, records[0])
}
