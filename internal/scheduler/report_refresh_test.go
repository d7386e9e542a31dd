package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	analyzingmocks "github.com/vfg2006/sixsigma-analytics-api/internal/usecases/analyzing/mocks"
	"go.uber.org/mock/gomock"
)

func TestReportRefreshService_refreshReports(t *testing.T) {
	t.Run("Deve executar todos os estudos e registrar o desfecho", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAnalyzer := analyzingmocks.NewMockAnalyzer(ctrl)
		mockAnalyzer.EXPECT().
			RunAll(gomock.Any(), domain.ReportParams{}).
			Return([]*domain.AnalysisRun{
				{Kind: domain.AnalysisCapability, Status: domain.RunStatusCompleted},
				{Kind: domain.AnalysisGageRnR, Status: domain.RunStatusCompleted},
			}, nil)

		service := &ReportRefreshService{analyzer: mockAnalyzer}

		service.refreshReports()

		assert.False(t, service.refreshRunning)
		assert.False(t, service.lastRefreshStartedAt.IsZero())
		assert.False(t, service.lastRefreshCompletedAt.IsZero())
	})

	t.Run("Deve concluir mesmo quando parte dos estudos falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAnalyzer := analyzingmocks.NewMockAnalyzer(ctrl)
		mockAnalyzer.EXPECT().
			RunAll(gomock.Any(), gomock.Any()).
			Return([]*domain.AnalysisRun{
				{Kind: domain.AnalysisCapability, Status: domain.RunStatusFailed},
			}, errors.New("1 de 7 análises falharam"))

		service := &ReportRefreshService{analyzer: mockAnalyzer}

		service.refreshReports()

		assert.False(t, service.refreshRunning)
		assert.False(t, service.lastRefreshCompletedAt.IsZero())
	})

	t.Run("Deve ignorar quando já há uma atualização em andamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := &ReportRefreshService{
			analyzer:       analyzingmocks.NewMockAnalyzer(ctrl),
			refreshRunning: true,
		}

		service.refreshReports()

		assert.True(t, service.lastRefreshStartedAt.IsZero())
	})
}

func TestReportRefreshService_GetStatus(t *testing.T) {
	service := &ReportRefreshService{
		config: ReportRefreshConfig{
			CronSchedule:   "0 5 * * *",
			RefreshEnabled: true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["refresh_enabled"])
	assert.Equal(t, "0 5 * * *", status["refresh_cron"])
}
