package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// reportHeader são as colunas fixas do relatório, nesta ordem.
var reportHeader = []string{"Account ID", "Account Name", "Month", "NetAmortizedCost", "UnblendedCost"}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// RenderCSV serializes the report: header, one record per account in
// input order, one blank record, then the Total row as the final record.
// Cost cells are written exactly as the aggregator produced them; raw
// unparseable amounts pass through verbatim.
func (r *ExportRepositoryImpl) RenderCSV(report *entity.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write(reportHeader)
	for _, row := range report.Rows {
		writer.Write([]string{row.AccountID, row.AccountName, row.Month, row.NetAmortized, row.Unblended})
	}

	// Linha em branco de espaçamento antes do total.
	writer.Write([]string{})
	writer.Write(totalRecord(report.Totals))

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error writing CSV report: %w", err)
	}

	return buf.Bytes(), nil
}

// totalRecord formata a linha final: rótulo, colunas de nome e mês em
// branco, e os totais com duas casas decimais.
func totalRecord(totals entity.ReportTotals) []string {
	return []string{
		"Total",
		"",
		"",
		fmt.Sprintf("%.2f", totals.NetAmortized),
		fmt.Sprintf("%.2f", totals.Unblended),
	}
}

func (r *ExportRepositoryImpl) ExportToCSV(report *entity.Report, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report, outputDir, "csv")
	if err != nil {
		return "", err
	}

	content, err := r.RenderCSV(report)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, content, 0644); err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report *entity.Report, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report *entity.Report, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  AWS Monthly Cost Report - %s", report.Period.Label)), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	colWidths := [5]float64{35, 60, 25, 35, 35}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, column := range reportHeader {
		pdf.CellFormat(colWidths[i], 8, tr(column), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		cells := [5]string{row.AccountID, row.AccountName, row.Month, row.NetAmortized, row.Unblended}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	for i, cell := range totalRecord(report.Totals) {
		pdf.CellFormat(colWidths[i], 8, tr(cell), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error creating PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename monta o caminho de saída, criando o diretório se
// necessário. O nome base já carrega o rótulo do período.
func generateFilename(report *entity.Report, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	filename := fmt.Sprintf("aws_cost_%s.%s", report.Period.Label, ext)
	return filepath.Join(dir, filename), nil
}
