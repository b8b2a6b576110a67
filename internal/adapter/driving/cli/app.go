package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/diillson/aws-cost-reporter-go/internal/application/usecase"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
	"github.com/diillson/aws-cost-reporter-go/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "aws-cost-reporter",
		Short:   "Monthly per-account AWS cost report delivered to Slack",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Reporter version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("names-file", "C", "", "Path to a TOML, YAML, or JSON file mapping account IDs to display names")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Also archive the report locally as: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save local report copies (default: current directory)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print the report to the console instead of uploading it to Slack")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	namesFile, _ := app.rootCmd.Flags().GetString("names-file")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	dryRun, _ := app.rootCmd.Flags().GetBool("dry-run")

	// O arquivo de nomes pode vir da flag ou do ambiente.
	if namesFile == "" {
		namesFile = os.Getenv(types.EnvAccountNamesFile)
	}

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		NamesFile:  namesFile,
		ReportType: reportType,
		Dir:        dir,
		DryRun:     dryRun,
	}, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	result := app.reportUseCase.Run(ctx, cliArgs)
	if result.StatusCode != http.StatusOK {
		return errors.New(result.Body)
	}
	return nil
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
