package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
)

// slackComment é o comentário fixo anexado ao upload do relatório.
const slackComment = "AWS monthly cost"

// perAccountTimeout bounds each role-assumption + Cost Explorer round
// trip; a timeout counts as an account-level failure like any other.
const perAccountTimeout = 2 * time.Minute

// ReportUseCase generates the monthly per-account cost report and hands
// it to the delivery channel.
type ReportUseCase struct {
	costRepo     repository.CostRepository
	deliveryRepo repository.DeliveryRepository
	exportRepo   repository.ExportRepository
	configRepo   repository.ConfigRepository
	console      types.ConsoleInterface
	config       *types.Config
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	costRepo repository.CostRepository,
	deliveryRepo repository.DeliveryRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *ReportUseCase {
	return &ReportUseCase{
		costRepo:     costRepo,
		deliveryRepo: deliveryRepo,
		exportRepo:   exportRepo,
		configRepo:   configRepo,
		console:      console,
		config:       config,
	}
}

// ResolvePreviousMonth returns the previous full calendar month relative
// to now: start is the first day and end the last day of that month.
// Calendar arithmetic keeps this correct across year boundaries and
// months of any length, leap February included.
func ResolvePreviousMonth(now time.Time) entity.ReportingPeriod {
	firstOfCurrentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPreviousMonth := firstOfCurrentMonth.AddDate(0, 0, -1)
	start := time.Date(lastOfPreviousMonth.Year(), lastOfPreviousMonth.Month(), 1, 0, 0, 0, 0, time.UTC)

	return entity.ReportingPeriod{
		Start: start,
		End:   lastOfPreviousMonth,
		Label: start.Format("2006-01"),
	}
}

// Run é o ponto de entrada principal: valida a configuração, monta o
// relatório e faz o upload. Falhas por conta não alteram o status final.
func (uc *ReportUseCase) Run(ctx context.Context, args *types.CLIArgs) types.Result {
	uc.console.LogInfo("Starting AWS monthly cost report generation...")

	if err := uc.config.Validate(); err != nil {
		uc.console.LogError("Configuration error: %v", err)
		return types.Failure(err.Error())
	}

	if args != nil && args.NamesFile != "" {
		names, err := uc.configRepo.LoadAccountNames(args.NamesFile)
		if err != nil {
			uc.console.LogError("Error loading account names: %v", err)
			return types.Failure(fmt.Sprintf("error loading account names: %v", err))
		}
		uc.config.AccountNames = names
	}

	period := ResolvePreviousMonth(time.Now().UTC())
	uc.console.LogInfo("Report period: %s to %s",
		period.Start.Format(time.DateOnly), period.End.Format(time.DateOnly))

	report := uc.BuildReport(ctx, period)

	content, err := uc.exportRepo.RenderCSV(report)
	if err != nil {
		uc.console.LogError("Error serializing report: %v", err)
		return types.Failure(fmt.Sprintf("error serializing report: %v", err))
	}

	uc.archiveLocalCopies(report, args)

	if args != nil && args.DryRun {
		uc.console.Print(string(content))
		uc.console.LogSuccess("Dry run: skipping Slack upload.")
		return types.OK("Report generated (dry run)")
	}

	uc.console.LogInfo("Uploading %s to Slack channel %s...", report.Filename(), uc.config.SlackChannelID)
	if err := uc.deliveryRepo.UploadReport(ctx, uc.config.SlackChannelID, report.Filename(), slackComment, content); err != nil {
		uc.console.LogError("Error uploading file to Slack: %v", err)
		return types.Failure(fmt.Sprintf("%v: %v", types.ErrDeliveryFailed, err))
	}

	uc.console.LogSuccess("File uploaded successfully to Slack.")
	return types.OK("Report generated and sent to Slack successfully")
}

// BuildReport produces exactly one row per configured account, in input
// order, and accumulates the grand totals. A failure on one account is
// isolated to that account's row and never aborts the batch.
func (uc *ReportUseCase) BuildReport(ctx context.Context, period entity.ReportingPeriod) *entity.Report {
	report := &entity.Report{Period: period}

	for _, accountID := range uc.config.MemberAccounts {
		uc.console.LogInfo("Processing account: %s", accountID)

		name, ok := uc.config.AccountNames[accountID]
		if !ok {
			name = entity.NameNotFound
		}

		row := entity.AccountCostRow{
			AccountID:   accountID,
			AccountName: name,
			Month:       period.Label,
		}

		accountCtx, cancel := context.WithTimeout(ctx, perAccountTimeout)
		cost, err := uc.costRepo.GetLinkedAccountCost(accountCtx, accountID, uc.config.MemberAccountRoleName, period)
		cancel()
		switch {
		case err != nil:
			uc.console.LogError("ERROR processing account %s: %v", accountID, err)
			row.NetAmortized = entity.ErrorMarker
			row.Unblended = entity.ErrorMarker
		case cost == nil:
			uc.console.LogWarning("No cost data returned for account %s. Adding row with zero costs.", accountID)
			row.NetAmortized = "0.00"
			row.Unblended = "0.00"
		default:
			row.NetAmortized, row.Unblended = applyCosts(&report.Totals, cost)
			uc.console.LogInfo("  Data for %s (%s): NetAmortized=%s, Unblended=%s",
				accountID, name, row.NetAmortized, row.Unblended)
		}

		report.Rows = append(report.Rows, row)
	}

	return report
}

// applyCosts parses both raw amounts. Both must parse for the totals to
// move; otherwise the raw strings are passed through untouched so the
// report can tell a bad payload apart from zero cost.
func applyCosts(totals *entity.ReportTotals, cost *entity.LinkedAccountCost) (string, string) {
	net, errNet := strconv.ParseFloat(cost.NetAmortized, 64)
	unblended, errUnblended := strconv.ParseFloat(cost.Unblended, 64)
	if errNet != nil || errUnblended != nil {
		return cost.NetAmortized, cost.Unblended
	}

	// Os totais acumulam os valores brutos; o arredondamento acontece
	// apenas na renderização.
	totals.NetAmortized += net
	totals.Unblended += unblended
	return fmt.Sprintf("%.2f", net), fmt.Sprintf("%.2f", unblended)
}

// archiveLocalCopies grava cópias locais opcionais do relatório. Falhas
// aqui viram avisos; só a entrega ao Slack é fatal.
func (uc *ReportUseCase) archiveLocalCopies(report *entity.Report, args *types.CLIArgs) {
	if args == nil || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
			continue
		}
		if err != nil {
			uc.console.LogWarning("Failed to export %s report: %v", reportType, err)
			continue
		}
		uc.console.LogSuccess("Report saved to %s", path)
	}
}
