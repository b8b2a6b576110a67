package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-reporter-go/internal/application/usecase"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCostRepo delega para uma função por teste.
type stubCostRepo struct {
	fn func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error)
}

func (s *stubCostRepo) GetLinkedAccountCost(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
	return s.fn(ctx, accountID, roleName, period)
}

type stubDeliveryRepo struct {
	calls     int
	channelID string
	filename  string
	comment   string
	content   []byte
	err       error
}

func (s *stubDeliveryRepo) UploadReport(ctx context.Context, channelID, filename, comment string, content []byte) error {
	s.calls++
	s.channelID = channelID
	s.filename = filename
	s.comment = comment
	s.content = content
	return s.err
}

type stubConfigRepo struct {
	names map[string]string
	err   error
}

func (s *stubConfigRepo) LoadAccountNames(filePath string) (map[string]string, error) {
	return s.names, s.err
}

// noopConsole descarta toda a saída.
type noopConsole struct{}

func (noopConsole) Print(a ...interface{})                   {}
func (noopConsole) Printf(format string, a ...interface{})   {}
func (noopConsole) Println(a ...interface{})                 {}
func (noopConsole) LogInfo(format string, a ...interface{})  {}
func (noopConsole) LogWarning(format string, a ...interface{}) {}
func (noopConsole) LogError(format string, a ...interface{})   {}
func (noopConsole) LogSuccess(format string, a ...interface{}) {}
func (noopConsole) Status(message string) types.StatusHandle   { return noopStatus{} }

type noopStatus struct{}

func (noopStatus) Update(message string) {}
func (noopStatus) Stop()                 {}

func testConfig(accounts []string, names map[string]string) *types.Config {
	if names == nil {
		names = map[string]string{}
	}
	return &types.Config{
		SlackBotToken:         "xoxb-test",
		SlackChannelID:        "C0123456789",
		MemberAccountRoleName: "CostExplorerReadOnly",
		MemberAccounts:        accounts,
		AccountNames:          names,
	}
}

func newUseCase(cost *stubCostRepo, delivery *stubDeliveryRepo, cfg *types.Config) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(cost, delivery, export.NewExportRepository(), &stubConfigRepo{}, noopConsole{}, cfg)
}

func TestResolvePreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
		wantLabel string
	}{
		{
			name:      "year boundary",
			now:       time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			wantStart: "2023-12-01",
			wantEnd:   "2023-12-31",
			wantLabel: "2023-12",
		},
		{
			name:      "leap February",
			now:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-29",
			wantLabel: "2024-02",
		},
		{
			name:      "non-leap February",
			now:       time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
			wantStart: "2025-02-01",
			wantEnd:   "2025-02-28",
			wantLabel: "2025-02",
		},
		{
			name:      "30-day month",
			now:       time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC),
			wantStart: "2024-06-01",
			wantEnd:   "2024-06-30",
			wantLabel: "2024-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period := usecase.ResolvePreviousMonth(tt.now)
			assert.Equal(t, tt.wantStart, period.Start.Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, period.End.Format(time.DateOnly))
			assert.Equal(t, tt.wantLabel, period.Label)
		})
	}
}

func TestBuildReport_OneRowPerAccountInOrder(t *testing.T) {
	accounts := []string{"111111111111", "222222222222", "333333333333"}
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			switch accountID {
			case "222222222222":
				return nil, errors.New("AccessDenied: not authorized to assume role")
			case "333333333333":
				return nil, nil
			default:
				return &entity.LinkedAccountCost{AccountID: accountID, NetAmortized: "10.50", Unblended: "11.25"}, nil
			}
		},
	}

	uc := newUseCase(cost, &stubDeliveryRepo{}, testConfig(accounts, nil))
	period := usecase.ResolvePreviousMonth(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	report := uc.BuildReport(context.Background(), period)

	require.Len(t, report.Rows, 3)
	for i, row := range report.Rows {
		assert.Equal(t, accounts[i], row.AccountID)
		assert.Equal(t, "2024-04", row.Month)
	}
}

func TestBuildReport_ErrorIsolation(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			if accountID == "222222222222" {
				return nil, errors.New("assume role failed")
			}
			return &entity.LinkedAccountCost{AccountID: accountID, NetAmortized: "1.005", Unblended: "2.00"}, nil
		},
	}

	uc := newUseCase(cost, &stubDeliveryRepo{}, testConfig([]string{"111111111111", "222222222222", "333333333333"}, nil))
	report := uc.BuildReport(context.Background(), usecase.ResolvePreviousMonth(time.Now().UTC()))

	require.Len(t, report.Rows, 3)
	assert.Equal(t, entity.ErrorMarker, report.Rows[1].NetAmortized)
	assert.Equal(t, entity.ErrorMarker, report.Rows[1].Unblended)

	// A conta com erro não contribui para os totais.
	assert.InDelta(t, 2.01, report.Totals.NetAmortized, 1e-9)
	assert.InDelta(t, 4.00, report.Totals.Unblended, 1e-9)
}

func TestBuildReport_NoGroupYieldsZeroRow(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return nil, nil
		},
	}

	uc := newUseCase(cost, &stubDeliveryRepo{}, testConfig([]string{"111111111111"}, nil))
	report := uc.BuildReport(context.Background(), usecase.ResolvePreviousMonth(time.Now().UTC()))

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "0.00", report.Rows[0].NetAmortized)
	assert.Equal(t, "0.00", report.Rows[0].Unblended)
	assert.Zero(t, report.Totals.NetAmortized)
	assert.Zero(t, report.Totals.Unblended)
}

func TestBuildReport_FormatsAndAccumulatesRawValues(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return &entity.LinkedAccountCost{AccountID: accountID, NetAmortized: "12.345", Unblended: "10"}, nil
		},
	}

	uc := newUseCase(cost, &stubDeliveryRepo{}, testConfig([]string{"111111111111"}, nil))
	report := uc.BuildReport(context.Background(), usecase.ResolvePreviousMonth(time.Now().UTC()))

	require.Len(t, report.Rows, 1)
	assert.Equal(t, fmt.Sprintf("%.2f", 12.345), report.Rows[0].NetAmortized)
	assert.Equal(t, "10.00", report.Rows[0].Unblended)

	// Os totais guardam os valores brutos, não os exibidos.
	assert.InDelta(t, 12.345, report.Totals.NetAmortized, 1e-9)
	assert.InDelta(t, 10.0, report.Totals.Unblended, 1e-9)
}

func TestBuildReport_UnparseableAmountsPassThroughVerbatim(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return &entity.LinkedAccountCost{AccountID: accountID, NetAmortized: "12.34.5", Unblended: "10"}, nil
		},
	}

	uc := newUseCase(cost, &stubDeliveryRepo{}, testConfig([]string{"111111111111"}, nil))
	report := uc.BuildReport(context.Background(), usecase.ResolvePreviousMonth(time.Now().UTC()))

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "12.34.5", report.Rows[0].NetAmortized)
	assert.Equal(t, "10", report.Rows[0].Unblended)

	// Nenhum total muda quando qualquer métrica não é numérica.
	assert.Zero(t, report.Totals.NetAmortized)
	assert.Zero(t, report.Totals.Unblended)
}

func TestBuildReport_AccountNameResolution(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return nil, nil
		},
	}

	names := map[string]string{"111111111111": "Platform"}
	uc := newUseCase(cost, &stubDeliveryRepo{}, testConfig([]string{"111111111111", "222222222222"}, names))
	report := uc.BuildReport(context.Background(), usecase.ResolvePreviousMonth(time.Now().UTC()))

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Platform", report.Rows[0].AccountName)
	assert.Equal(t, entity.NameNotFound, report.Rows[1].AccountName)
}

func TestRun_DeliversExactlyOnceDespiteAccountErrors(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return nil, errors.New("throttled")
		},
	}
	delivery := &stubDeliveryRepo{}

	uc := newUseCase(cost, delivery, testConfig([]string{"111111111111", "222222222222"}, nil))
	result := uc.Run(context.Background(), &types.CLIArgs{})

	assert.Equal(t, 200, result.StatusCode)
	require.Equal(t, 1, delivery.calls)

	expectedLabel := usecase.ResolvePreviousMonth(time.Now().UTC()).Label
	assert.Equal(t, "aws_cost_"+expectedLabel+".csv", delivery.filename)
	assert.Equal(t, "C0123456789", delivery.channelID)
	assert.Equal(t, "AWS monthly cost", delivery.comment)
	assert.NotEmpty(t, delivery.content)
}

func TestRun_MissingConfigIsFatal(t *testing.T) {
	delivery := &stubDeliveryRepo{}
	cfg := testConfig(nil, nil) // sem contas configuradas

	uc := newUseCase(&stubCostRepo{}, delivery, cfg)
	result := uc.Run(context.Background(), &types.CLIArgs{})

	assert.Equal(t, 500, result.StatusCode)
	assert.Contains(t, result.Body, types.EnvMemberAccounts)
	assert.Zero(t, delivery.calls)
}

func TestRun_DeliveryFailureIsFatal(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return nil, nil
		},
	}
	delivery := &stubDeliveryRepo{err: errors.New("channel_not_found")}

	uc := newUseCase(cost, delivery, testConfig([]string{"111111111111"}, nil))
	result := uc.Run(context.Background(), &types.CLIArgs{})

	assert.Equal(t, 500, result.StatusCode)
	assert.Contains(t, result.Body, "channel_not_found")
	assert.Equal(t, 1, delivery.calls)
}

func TestRun_DryRunSkipsDelivery(t *testing.T) {
	cost := &stubCostRepo{
		fn: func(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
			return nil, nil
		},
	}
	delivery := &stubDeliveryRepo{}

	uc := newUseCase(cost, delivery, testConfig([]string{"111111111111"}, nil))
	result := uc.Run(context.Background(), &types.CLIArgs{DryRun: true})

	assert.Equal(t, 200, result.StatusCode)
	assert.Zero(t, delivery.calls)
}

func TestRun_NamesFileFailureIsFatal(t *testing.T) {
	delivery := &stubDeliveryRepo{}
	uc := usecase.NewReportUseCase(
		&stubCostRepo{},
		delivery,
		export.NewExportRepository(),
		&stubConfigRepo{err: errors.New("no such file")},
		noopConsole{},
		testConfig([]string{"111111111111"}, nil),
	)

	result := uc.Run(context.Background(), &types.CLIArgs{NamesFile: "/etc/accounts.toml"})

	assert.Equal(t, 500, result.StatusCode)
	assert.Zero(t, delivery.calls)
}
