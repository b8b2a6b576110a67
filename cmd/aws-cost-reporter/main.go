package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	awsadapter "github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/export"
	slackadapter "github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/slack"
	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-reporter-go/internal/application/usecase"
	"github.com/diillson/aws-cost-reporter-go/pkg/console"
	"github.com/diillson/aws-cost-reporter-go/pkg/version"
	"github.com/joho/godotenv"
)

func main() {
	// Carrega .env do diretório atual e do diretório do executável.
	_ = godotenv.Load()
	if exe, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exe), ".env"))
	}

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	cfg := config.LoadConfig()

	// Inicializa os repositórios
	costRepo, err := awsadapter.NewCostRepository(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	deliveryRepo := slackadapter.NewDeliveryRepository(cfg.SlackBotToken)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		costRepo,
		deliveryRepo,
		exportRepo,
		configRepo,
		consoleImpl,
		cfg,
	)

	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
