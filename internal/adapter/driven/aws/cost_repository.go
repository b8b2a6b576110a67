package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
)

const (
	roleSessionName    = "CrossAccountCostExplorerSession"
	costExplorerRegion = "us-east-1"

	metricNetAmortized = "NetAmortizedCost"
	metricUnblended    = "UnblendedCost"
)

// costExplorerAPI é o subconjunto do cliente Cost Explorer usado aqui.
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// CostRepositoryImpl implementa o CostRepository via STS + Cost Explorer.
type CostRepositoryImpl struct {
	cfg       aws.Config
	stsClient stscreds.AssumeRoleAPIClient

	// newClient permite injetar um cliente fake nos testes.
	newClient func(cfg aws.Config) costExplorerAPI
}

// NewCostRepository cria uma nova implementação do CostRepository usando
// a cadeia de credenciais padrão do SDK.
func NewCostRepository(ctx context.Context) (repository.CostRepository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &CostRepositoryImpl{
		cfg:       cfg,
		stsClient: sts.NewFromConfig(cfg),
		newClient: func(cfg aws.Config) costExplorerAPI {
			return costexplorer.NewFromConfig(cfg)
		},
	}, nil
}

// GetLinkedAccountCost assumes the member account's role and queries
// Cost Explorer for the reporting period, grouped by linked account.
// It returns (nil, nil) when no group in the response matches the
// account, so the caller can emit a zero-valued row.
func (r *CostRepositoryImpl) GetLinkedAccountCost(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error) {
	roleArn := fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
	provider := stscreds.NewAssumeRoleProvider(r.stsClient, roleArn, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = roleSessionName
	})

	memberCfg := r.cfg.Copy()
	// Cost Explorer só atende em us-east-1.
	memberCfg.Region = costExplorerRegion
	memberCfg.Credentials = aws.NewCredentialsCache(provider)

	client := r.newClient(memberCfg)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(period.Start.Format("2006-01-02")),
			End:   aws.String(period.End.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{metricNetAmortized, metricUnblended},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("LINKED_ACCOUNT")},
		},
	}

	result, err := client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error getting cost and usage for account %s: %w", accountID, err)
	}

	return scanLinkedAccountGroups(result, accountID), nil
}

// scanLinkedAccountGroups procura, no primeiro período da resposta, o
// grupo cuja chave é o ID da conta.
func scanLinkedAccountGroups(result *costexplorer.GetCostAndUsageOutput, accountID string) *entity.LinkedAccountCost {
	if len(result.ResultsByTime) == 0 {
		return nil
	}

	for _, group := range result.ResultsByTime[0].Groups {
		if len(group.Keys) == 0 || group.Keys[0] != accountID {
			continue
		}
		return &entity.LinkedAccountCost{
			AccountID:    accountID,
			NetAmortized: metricAmount(group.Metrics, metricNetAmortized),
			Unblended:    metricAmount(group.Metrics, metricUnblended),
		}
	}

	return nil
}

// metricAmount devolve "0.0" quando a métrica vem sem valor.
func metricAmount(metrics map[string]ceTypes.MetricValue, name string) string {
	if metric, ok := metrics[name]; ok && metric.Amount != nil {
		return *metric.Amount
	}
	return "0.0"
}
