package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/ga4client"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sixsigma-analytics-api/internal/api"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/scheduler"
	"github.com/vfg2006/sixsigma-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/sixsigma-analytics-api/internal/usecases/authenticating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	runRepo := repository.NewAnalysisRunRepository(pgConn)
	snapshotRepo := repository.NewMetricSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// O token da service account do GA4 expira a cada hora e é renovado em
	// background
	tokenManager := ga4client.NewTokenManager(cfg)
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	ga4Client := ga4client.NewClient(cfg, tokenManager)
	analyticsService := ga4.New(cfg, ga4Client)

	reportWriter := report.NewWriter(cfg.Analysis.ReportRoot)

	analyzer := analyzing.NewService(cfg, analyticsService, reportWriter).(*analyzing.Service).
		WithRunRegistry(runRepo)

	// Inicializa os agendadores de sincronização separados
	snapshotSyncService := scheduler.NewAnalyticsSnapshotSyncService(
		analyticsService,
		snapshotRepo,
		cfg,
	)

	reportRefreshService := scheduler.NewReportRefreshService(
		analyzer,
		cfg,
	)

	// Inicia os agendadores em background
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de snapshots do GA4")
	} else {
		logrus.Info("Agendador de sincronização de snapshots do GA4 iniciado com sucesso")
	}

	if err := reportRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização dos relatórios")
	} else {
		logrus.Info("Agendador de atualização dos relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		analyzer,
		runRepo,
		authenticator,
		snapshotSyncService,
		reportRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
