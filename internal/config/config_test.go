package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		GA4:      GA4{StartDate: "30daysAgo", EndDate: "today"},
		Analysis: Analysis{Alpha: 0.05, ParetoSource: "categories"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Deve aceitar a configuração padrão",
			mutate: func(c *Config) {},
		},
		{
			name: "Deve aceitar datas absolutas em ordem",
			mutate: func(c *Config) {
				c.GA4.StartDate = "2025-07-01"
				c.GA4.EndDate = "2025-07-31"
			},
		},
		{
			name: "Deve aceitar data relativa combinada com absoluta",
			mutate: func(c *Config) {
				c.GA4.StartDate = "30daysAgo"
				c.GA4.EndDate = "2025-07-31"
			},
		},
		{
			name:   "Deve aceitar origem do Pareto por eventos",
			mutate: func(c *Config) { c.Analysis.ParetoSource = "events" },
		},
		{
			name:    "Deve rejeitar alpha igual a zero",
			mutate:  func(c *Config) { c.Analysis.Alpha = 0 },
			wantErr: "ANALYSIS_ALPHA",
		},
		{
			name:    "Deve rejeitar alpha igual a um",
			mutate:  func(c *Config) { c.Analysis.Alpha = 1 },
			wantErr: "ANALYSIS_ALPHA",
		},
		{
			name:    "Deve rejeitar origem do Pareto desconhecida",
			mutate:  func(c *Config) { c.Analysis.ParetoSource = "products" },
			wantErr: "ANALYSIS_PARETO_SOURCE",
		},
		{
			name:    "Deve rejeitar data em formato inválido",
			mutate:  func(c *Config) { c.GA4.StartDate = "01/07/2025" },
			wantErr: "GA4_START_DATE",
		},
		{
			name: "Deve rejeitar período com início posterior ao fim",
			mutate: func(c *Config) {
				c.GA4.StartDate = "2025-07-31"
				c.GA4.EndDate = "2025-07-01"
			},
			wantErr: "não pode ser posterior",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	assert.Equal(t, "https://analyticsdata.googleapis.com", viper.GetString("GA4_BASE_URL"))
	assert.Equal(t, "v1beta", viper.GetString("GA4_VERSION"))
	assert.Equal(t, "30daysAgo", viper.GetString("GA4_START_DATE"))
	assert.Equal(t, "today", viper.GetString("GA4_END_DATE"))

	assert.Equal(t, 0.05, viper.GetFloat64("ANALYSIS_ALPHA"))
	assert.Equal(t, 1.33, viper.GetFloat64("ANALYSIS_CAPABILITY_TARGET"))
	assert.Equal(t, 10, viper.GetInt("ANALYSIS_MAX_GROUPS"))
	assert.Equal(t, "categories", viper.GetString("ANALYSIS_PARETO_SOURCE"))

	assert.Equal(t, 24, viper.GetInt("AUTH_TOKEN_TTL_HOURS"))

	assert.Equal(t, "0 3 * * *", viper.GetString("SNAPSHOT_SYNC_CRON"))
	assert.Equal(t, 30, viper.GetInt("SNAPSHOT_SYNC_LOOKBACK_DAYS"))
	assert.False(t, viper.GetBool("SNAPSHOT_SYNC_ENABLED"))

	assert.Equal(t, "0 5 * * *", viper.GetString("REPORT_REFRESH_CRON"))
	assert.False(t, viper.GetBool("REPORT_REFRESH_ENABLED"))
}
