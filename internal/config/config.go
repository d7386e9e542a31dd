package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	GA4           GA4           `mapstructure:",squash"`
	Analysis      Analysis      `mapstructure:",squash"`
	Render        Render        `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	SnapshotSync  SnapshotSync  `mapstructure:",squash"`
	ReportRefresh ReportRefresh `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type GA4 struct {
	PropertyID      string `mapstructure:"ga4_property_id"`
	BaseURL         string `mapstructure:"ga4_base_url"`
	Version         string `mapstructure:"ga4_version"`
	CredentialsFile string `mapstructure:"google_application_credentials"`
	CredentialsJSON string `mapstructure:"-"`
	StartDate       string `mapstructure:"ga4_start_date"`
	EndDate         string `mapstructure:"ga4_end_date"`
}

type Analysis struct {
	Alpha             float64 `mapstructure:"analysis_alpha"`
	ReportRoot        string  `mapstructure:"analysis_report_root"`
	CapabilityTarget  float64 `mapstructure:"analysis_capability_target"`
	MaxGroups         int     `mapstructure:"analysis_max_groups"`
	ParetoSource      string  `mapstructure:"analysis_pareto_source"`
	GageStudyFile     string  `mapstructure:"analysis_gage_study_file"`
	DOEExperimentFile string  `mapstructure:"analysis_doe_experiment_file"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
}

type SnapshotSync struct {
	CronSchedule        string `mapstructure:"snapshot_sync_cron"`
	LookbackDays        int    `mapstructure:"snapshot_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"snapshot_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"snapshot_sync_enabled"`
}

type ReportRefresh struct {
	CronSchedule string `mapstructure:"report_refresh_cron"`
	Enabled      bool   `mapstructure:"report_refresh_enabled"`
}

// relativeDatePattern aceita os tokens relativos da API do GA4 (30daysAgo, today, yesterday)
var relativeDatePattern = regexp.MustCompile(`^(\d+daysAgo|today|yesterday)$`)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sixsigma")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GA4_BASE_URL", "https://analyticsdata.googleapis.com")
	viper.SetDefault("GA4_VERSION", "v1beta")
	viper.SetDefault("GA4_PROPERTY_ID", "")
	viper.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	viper.SetDefault("GA4_START_DATE", "30daysAgo")
	viper.SetDefault("GA4_END_DATE", "today")

	// Defaults das análises estatísticas
	viper.SetDefault("ANALYSIS_ALPHA", 0.05)               // Nível de significância
	viper.SetDefault("ANALYSIS_REPORT_ROOT", "reports")    // Diretório raiz dos relatórios
	viper.SetDefault("ANALYSIS_CAPABILITY_TARGET", 1.33)   // Capacidade mínima desejada (Cpk)
	viper.SetDefault("ANALYSIS_MAX_GROUPS", 10)            // Máximo de grupos (eventos) por análise
	viper.SetDefault("ANALYSIS_PARETO_SOURCE", "categories") // Origem do Pareto: categories ou events
	viper.SetDefault("ANALYSIS_GAGE_STUDY_FILE", "")         // CSV operator,part,measurement (vazio usa o estudo padrão)
	viper.SetDefault("ANALYSIS_DOE_EXPERIMENT_FILE", "")     // CSV com níveis -1/+1 e resposta (vazio simula o experimento)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24) // Validade do token JWT

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	// Defaults para sincronização de snapshots do GA4
	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("SNAPSHOT_SYNC_LOOKBACK_DAYS", 30)        // 30 dias para buscar dados
	viper.SetDefault("SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)           // Habilitar sincronização de snapshots

	// Defaults para atualização agendada dos relatórios
	viper.SetDefault("REPORT_REFRESH_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("REPORT_REFRESH_ENABLED", false)    // Habilitar atualização dos relatórios

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Em ambientes hospedados no Render as credenciais do GA4 chegam como secret file
	if config.Render.ServiceID != "" {
		renderClient := NewRenderClient(config)
		secretsByCode, err := renderClient.ListSecrets(config.Render.ServiceID)
		if err != nil {
			logrus.Error("Erro ao obter secrets do Render:", err)
			return nil, err
		}

		if content, ok := secretsByCode["ga4_credentials.json"]; ok && content != "" {
			config.GA4.CredentialsJSON = content
		}
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate aplica as regras de validação das variáveis de análise:
// alpha dentro de (0,1) e datas no formato YYYY-MM-DD ou tokens relativos do GA4.
func (c *Config) Validate() error {
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("ANALYSIS_ALPHA deve estar entre 0 e 1 (exclusivo), recebido: %v", c.Analysis.Alpha)
	}

	if c.Analysis.ParetoSource != "categories" && c.Analysis.ParetoSource != "events" {
		return fmt.Errorf("ANALYSIS_PARETO_SOURCE deve ser 'categories' ou 'events', recebido: %q", c.Analysis.ParetoSource)
	}

	start, err := validateGA4Date("GA4_START_DATE", c.GA4.StartDate)
	if err != nil {
		return err
	}

	end, err := validateGA4Date("GA4_END_DATE", c.GA4.EndDate)
	if err != nil {
		return err
	}

	// A ordem só é verificável quando ambas as datas são absolutas
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("GA4_START_DATE (%s) não pode ser posterior a GA4_END_DATE (%s)", c.GA4.StartDate, c.GA4.EndDate)
	}

	return nil
}

func validateGA4Date(name, value string) (*time.Time, error) {
	if value == "" || relativeDatePattern.MatchString(value) {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%s deve estar no formato YYYY-MM-DD ou ser um token relativo (30daysAgo, today): %w", name, err)
	}

	return &date, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
