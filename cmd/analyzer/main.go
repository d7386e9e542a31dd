package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/ga4client"
	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/snapshot"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/usecases/analyzing"
)

func main() {
	var (
		analysisFlag = flag.String("analysis", "all", "estudo a executar: capability, gage_rnr, pareto, anova, hypothesis, doe, regression ou all")
		propertyFlag = flag.String("property", "", "ID da propriedade do GA4 (padrão: GA4_PROPERTY_ID)")
		startFlag    = flag.String("start", "", "data inicial YYYY-MM-DD ou token relativo do GA4 (padrão: GA4_START_DATE)")
		endFlag      = flag.String("end", "", "data final YYYY-MM-DD ou token relativo do GA4 (padrão: GA4_END_DATE)")
		alphaFlag    = flag.Float64("alpha", 0, "nível de significância dos testes (padrão: ANALYSIS_ALPHA)")
		inputFlag    = flag.String("input", "", "snapshot CSV usado como fonte de dados no lugar da API do GA4")
		outFlag      = flag.String("out", "", "diretório raiz dos relatórios (padrão: ANALYSIS_REPORT_ROOT)")
	)
	flag.Parse()

	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	if *outFlag != "" {
		cfg.Analysis.ReportRoot = *outFlag
	}

	// A fonte de dados é a API do GA4 ou, com -input, um snapshot CSV local
	var source analyzing.Source
	if *inputFlag != "" {
		logrus.Infof("Usando snapshot local como fonte de dados: %s", *inputFlag)
		source = snapshot.NewFileSource(*inputFlag)
	} else {
		tokenManager := ga4client.NewTokenManager(cfg)
		tokenManager.InitToken()
		source = ga4.New(cfg, ga4client.NewClient(cfg, tokenManager))
	}

	writer := report.NewWriter(cfg.Analysis.ReportRoot)

	// Sem registro de execuções: a CLI roda sem banco de dados
	analyzer := analyzing.NewService(cfg, source, writer)

	params := domain.ReportParams{
		PropertyID: *propertyFlag,
		StartDate:  *startFlag,
		EndDate:    *endFlag,
		Alpha:      *alphaFlag,
	}

	ctx := context.Background()

	if *analysisFlag == "all" {
		runs, err := analyzer.RunAll(ctx, params)
		logRuns(runs)
		if err != nil {
			logrus.Fatal(err)
		}
		return
	}

	kind, err := domain.ParseAnalysisKind(*analysisFlag)
	if err != nil {
		logrus.Fatal(err)
	}

	run, err := analyzer.Run(ctx, kind, params)
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.Infof("Análise %s concluída, relatório em %s", run.Kind, run.ReportPath)
}

// logRuns registra o resultado de cada estudo executado pelo RunAll
func logRuns(runs []*domain.AnalysisRun) {
	for _, run := range runs {
		if run.Status == domain.RunStatusCompleted {
			logrus.Infof("Análise %s concluída, relatório em %s", run.Kind, run.ReportPath)
			continue
		}

		if run.Error != nil {
			logrus.Errorf("Análise %s falhou: %s", run.Kind, *run.Error)
		} else {
			logrus.Errorf("Análise %s falhou", run.Kind)
		}
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
