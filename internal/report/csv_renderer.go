package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

const isoDate = "2006-01-02"

// CSVRenderer renders a report document as a CSV artifact suitable for
// download and printing from any spreadsheet tool.
type CSVRenderer struct{}

// NewCSVRenderer creates a new CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render writes the document's header, category breakdown, and detailed
// expense table as CSV.
func (r *CSVRenderer) Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := [][]string{
		{doc.Title},
		{"User", doc.Username},
		{"Period", doc.PeriodStart.Format(isoDate), doc.PeriodEnd.Format(isoDate)},
		{"Total Expenses", "$" + doc.Total.StringFixed(2)},
		{},
	}
	for _, row := range header {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write report header: %w", err)
		}
	}

	if doc.Empty() {
		if err := writer.Write([]string{"No expenses found for this period."}); err != nil {
			return nil, fmt.Errorf("failed to write report body: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, fmt.Errorf("CSV writer error: %w", err)
		}
		return buf.Bytes(), nil
	}

	if err := writer.Write([]string{"Expenses by Category"}); err != nil {
		return nil, fmt.Errorf("failed to write breakdown section: %w", err)
	}
	if err := writer.Write([]string{"Category", "Amount"}); err != nil {
		return nil, fmt.Errorf("failed to write breakdown header: %w", err)
	}
	for _, row := range doc.Breakdown {
		record := []string{string(row.Category), "$" + row.Amount.StringFixed(2)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write breakdown row: %w", err)
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return nil, fmt.Errorf("failed to write section separator: %w", err)
	}

	if err := writer.Write([]string{"Detailed Expenses"}); err != nil {
		return nil, fmt.Errorf("failed to write detail section: %w", err)
	}
	if err := writer.Write([]string{"Date", "Description", "Category", "Amount"}); err != nil {
		return nil, fmt.Errorf("failed to write detail header: %w", err)
	}
	for i := range doc.Expenses {
		e := &doc.Expenses[i]
		record := []string{
			e.Date.Format(isoDate),
			e.Description,
			string(e.Category),
			"$" + e.Amount.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write expense row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
