package repository

import (
	"context"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

// CostRepository defines the interface for cross-account cost queries.
//
// GetLinkedAccountCost assumes the named role in the member account and
// asks Cost Explorer for that account's costs over the reporting period.
// It returns (nil, nil) when the response carried no group for the
// account, so the caller can distinguish "no cost data" from a failure.
type CostRepository interface {
	GetLinkedAccountCost(ctx context.Context, accountID, roleName string, period entity.ReportingPeriod) (*entity.LinkedAccountCost, error)
}
