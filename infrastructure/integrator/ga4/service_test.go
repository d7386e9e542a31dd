package ga4

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ga4domain "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/domain"
	clientmocks "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/ga4client/mocks"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestConfig() *config.Config {
	return &config.Config{
		GA4: config.GA4{
			PropertyID: "123456",
			BaseURL:    "https://analyticsdata.googleapis.com",
			Version:    "v1beta",
			StartDate:  "30daysAgo",
			EndDate:    "today",
		},
	}
}

func TestGA4Service_FetchEventMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	service := New(newTestConfig(), mockClient)

	response := &ga4domain.RunReportResponse{
		DimensionHeaders: []ga4domain.DimensionHeader{{Name: "eventName"}},
		MetricHeaders: []ga4domain.MetricHeader{
			{Name: "totalUsers", Type: "TYPE_INTEGER"},
			{Name: "sessions", Type: "TYPE_INTEGER"},
		},
		Rows: []ga4domain.Row{
			{
				DimensionValues: []ga4domain.DimensionValue{{Value: "page_view"}},
				MetricValues:    []ga4domain.MetricValue{{Value: "120"}, {Value: "80"}},
			},
			{
				DimensionValues: []ga4domain.DimensionValue{{Value: "session_start"}},
				MetricValues:    []ga4domain.MetricValue{{Value: "(other)"}, {Value: "42.5"}},
			},
		},
		RowCount: 2,
	}

	var captured *ga4domain.RunReportRequest
	mockClient.EXPECT().
		RunReport(gomock.Any(), "123456", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, request *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error) {
			captured = request
			return response, nil
		})

	table, err := service.FetchEventMetrics(context.Background(), domain.ReportParams{})
	require.NoError(t, err)
	require.NotNil(t, table)

	// A requisição usa a dimensão eventName e as oito métricas padrão
	require.NotNil(t, captured)
	require.Len(t, captured.Dimensions, 1)
	assert.Equal(t, "eventName", captured.Dimensions[0].Name)
	assert.Len(t, captured.Metrics, len(domain.DefaultMetrics()))
	require.Len(t, captured.DateRanges, 1)
	assert.Equal(t, "30daysAgo", captured.DateRanges[0].StartDate)
	assert.Equal(t, "today", captured.DateRanges[0].EndDate)

	assert.Equal(t, "123456", table.PropertyID)
	assert.Equal(t, []string{"totalUsers", "sessions"}, table.Metrics)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "page_view", table.Rows[0].EventName)
	assert.Equal(t, 120.0, table.Rows[0].Values["totalUsers"])
	assert.Equal(t, 80.0, table.Rows[0].Values["sessions"])

	// Célula não numérica é descartada sem derrubar a linha
	assert.Equal(t, "session_start", table.Rows[1].EventName)
	_, hasTotalUsers := table.Rows[1].Values["totalUsers"]
	assert.False(t, hasTotalUsers)
	assert.Equal(t, 42.5, table.Rows[1].Values["sessions"])
}

func TestGA4Service_FetchDailyEventMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	service := New(newTestConfig(), mockClient)

	response := &ga4domain.RunReportResponse{
		DimensionHeaders: []ga4domain.DimensionHeader{{Name: "eventName"}, {Name: "date"}},
		MetricHeaders:    []ga4domain.MetricHeader{{Name: "eventCount", Type: "TYPE_INTEGER"}},
		Rows: []ga4domain.Row{
			{
				DimensionValues: []ga4domain.DimensionValue{{Value: "page_view"}, {Value: "20250812"}},
				MetricValues:    []ga4domain.MetricValue{{Value: "310"}},
			},
		},
		RowCount: 1,
	}

	var captured *ga4domain.RunReportRequest
	mockClient.EXPECT().
		RunReport(gomock.Any(), "123456", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, request *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error) {
			captured = request
			return response, nil
		})

	table, err := service.FetchDailyEventMetrics(context.Background(), domain.ReportParams{})
	require.NoError(t, err)

	// A consulta diária acrescenta a dimensão date
	require.NotNil(t, captured)
	require.Len(t, captured.Dimensions, 2)
	assert.Equal(t, "date", captured.Dimensions[1].Name)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2025-08-12", table.Rows[0].Date)
	assert.Equal(t, 310.0, table.Rows[0].Values["eventCount"])
}

func TestGA4Service_FetchEventMetrics_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		params  domain.ReportParams
		setup   func(mockClient *clientmocks.MockClient)
		wantErr string
	}{
		{
			name:    "Deve falhar quando a propriedade não está configurada",
			cfg:     &config.Config{},
			params:  domain.ReportParams{},
			setup:   func(mockClient *clientmocks.MockClient) {},
			wantErr: "GA4_PROPERTY_ID não configurado",
		},
		{
			name:   "Deve propagar o erro do cliente",
			cfg:    newTestConfig(),
			params: domain.ReportParams{},
			setup: func(mockClient *clientmocks.MockClient) {
				mockClient.EXPECT().
					RunReport(gomock.Any(), "123456", gomock.Any()).
					Return(nil, errors.New("no data found"))
			},
			wantErr: "no data found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := clientmocks.NewMockClient(ctrl)
			tt.setup(mockClient)

			service := New(tt.cfg, mockClient)

			table, err := service.FetchEventMetrics(context.Background(), tt.params)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGA4Service_FetchEventMetrics_ParamsOverrideConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	service := New(newTestConfig(), mockClient)

	response := &ga4domain.RunReportResponse{
		DimensionHeaders: []ga4domain.DimensionHeader{{Name: "eventName"}},
		MetricHeaders:    []ga4domain.MetricHeader{{Name: "sessions", Type: "TYPE_INTEGER"}},
		Rows: []ga4domain.Row{
			{
				DimensionValues: []ga4domain.DimensionValue{{Value: "login"}},
				MetricValues:    []ga4domain.MetricValue{{Value: "7"}},
			},
		},
		RowCount: 1,
	}

	var captured *ga4domain.RunReportRequest
	mockClient.EXPECT().
		RunReport(gomock.Any(), "999999", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, request *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error) {
			captured = request
			return response, nil
		})

	params := domain.ReportParams{
		PropertyID: "999999",
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-31",
	}

	table, err := service.FetchEventMetrics(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, captured.DateRanges, 1)
	assert.Equal(t, "2025-07-01", captured.DateRanges[0].StartDate)
	assert.Equal(t, "2025-07-31", captured.DateRanges[0].EndDate)
	assert.Equal(t, "999999", table.PropertyID)
	assert.Equal(t, "2025-07-01", table.StartDate)
	assert.Equal(t, "2025-07-31", table.EndDate)
}

func TestFactoryAnalyticsTable(t *testing.T) {
	t.Run("Deve retornar nil quando a dimensão eventName não está presente", func(t *testing.T) {
		response := &ga4domain.RunReportResponse{
			DimensionHeaders: []ga4domain.DimensionHeader{{Name: "date"}},
			MetricHeaders:    []ga4domain.MetricHeader{{Name: "sessions"}},
		}

		table := FactoryAnalyticsTable("123456", "30daysAgo", "today", response)
		assert.Nil(t, table)
	})

	t.Run("Deve manter valores de data fora do formato YYYYMMDD", func(t *testing.T) {
		response := &ga4domain.RunReportResponse{
			DimensionHeaders: []ga4domain.DimensionHeader{{Name: "eventName"}, {Name: "date"}},
			MetricHeaders:    []ga4domain.MetricHeader{{Name: "sessions"}},
			Rows: []ga4domain.Row{
				{
					DimensionValues: []ga4domain.DimensionValue{{Value: "page_view"}, {Value: "(other)"}},
					MetricValues:    []ga4domain.MetricValue{{Value: "10"}},
				},
			},
		}

		table := FactoryAnalyticsTable("123456", "30daysAgo", "today", response)
		require.NotNil(t, table)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "(other)", table.Rows[0].Date)
	})
}
