package repository

import (
	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

// ExportRepository renders the report and optionally archives local copies.
type ExportRepository interface {
	// RenderCSV serializes the report into the CSV payload that gets
	// uploaded: header, one row per account, a blank record, then the
	// Total row.
	RenderCSV(report *entity.Report) ([]byte, error)

	ExportToCSV(report *entity.Report, outputDir string) (string, error)
	ExportToJSON(report *entity.Report, outputDir string) (string, error)
	ExportToPDF(report *entity.Report, outputDir string) (string, error)
}
