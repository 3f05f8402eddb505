package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/fdg312/run-coach/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders the runs of a period as a PDF or CSV document.
type Generator struct {
	runsStorage storage.RunsStorage
}

func NewGenerator(runsStorage storage.RunsStorage) *Generator {
	return &Generator{runsStorage: runsStorage}
}

// GenerateReport fetches the period's runs and renders them in the requested
// format. The from/to range is inclusive on both ends.
func (g *Generator) GenerateReport(ctx context.Context, req CreateReportRequest) ([]byte, error) {
	toDate, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, ErrInvalidDate
	}
	queryEnd := toDate.AddDate(0, 0, 1).Format("2006-01-02")

	runs, err := g.runsStorage.ListRuns(ctx, req.From, queryEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	switch req.Format {
	case FormatPDF:
		return g.generatePDF(req, runs)
	case FormatCSV:
		return g.generateCSV(runs)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}

func (g *Generator) generateCSV(runs []storage.Run) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "distance_km", "duration_min", "elevation_m", "avg_hr", "z1", "z2", "z3", "z4", "z5"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, run := range runs {
		avgHR := ""
		if run.AvgHR != nil {
			avgHR = strconv.Itoa(int(*run.AvgHR))
		}
		row := []string{
			run.Date,
			fmt.Sprintf("%.2f", run.DistanceKm),
			fmt.Sprintf("%.1f", run.DurationMin),
			fmt.Sprintf("%.0f", run.ElevationM),
			avgHR,
			fmt.Sprintf("%.1f", run.Z1),
			fmt.Sprintf("%.1f", run.Z2),
			fmt.Sprintf("%.1f", run.Z3),
			fmt.Sprintf("%.1f", run.Z4),
			fmt.Sprintf("%.1f", run.Z5),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF renders a French training report. Core fonts cover the French
// accented characters through the cp1252 translator.
func (g *Generator) generatePDF(req CreateReportRequest, runs []storage.Run) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Rapport d'entraînement"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Période : %s — %s", req.From, req.To)))
	pdf.Ln(12)

	summary := calculateSummary(runs)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Résumé"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Séances : %d", summary.Sessions)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Distance totale : %.1f km", summary.DistanceKm)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Durée totale : %s", formatDuration(summary.DurationMin))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Dénivelé cumulé : %.0f m", summary.ElevationM)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("FC moyenne : %s", formatHR(summary.AvgHR))))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Séances"))
	pdf.Ln(8)

	drawRunsTable(pdf, tr, runs)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

type summaryStats struct {
	Sessions    int
	DistanceKm  float64
	DurationMin float64
	ElevationM  float64
	AvgHR       *float64
}

func calculateSummary(runs []storage.Run) summaryStats {
	var s summaryStats
	var hrWeighted, hrWeight float64

	for _, run := range runs {
		s.Sessions++
		s.DistanceKm += run.DistanceKm
		s.DurationMin += run.DurationMin
		s.ElevationM += run.ElevationM
		if run.AvgHR != nil && run.DurationMin > 0 {
			hrWeighted += *run.AvgHR * run.DurationMin
			hrWeight += run.DurationMin
		}
	}

	if hrWeight > 0 {
		avg := hrWeighted / hrWeight
		s.AvgHR = &avg
	}
	return s
}

func drawRunsTable(pdf *gofpdf.Fpdf, tr func(string) string, runs []storage.Run) {
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(25, 6, tr("Date"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, tr("Distance"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, tr("Durée"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, tr("Dénivelé"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, tr("FC moy."), "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, run := range runs {
		pdf.CellFormat(25, 6, run.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f km", run.DistanceKm), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, formatDuration(run.DurationMin), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.0f m", run.ElevationM), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, formatHR(run.AvgHR), "1", 1, "C", false, 0, "")
	}
}

func formatDuration(minutes float64) string {
	total := int(minutes)
	hours := total / 60
	mins := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%02d", hours, mins)
	}
	return fmt.Sprintf("%d min", mins)
}

func formatHR(hr *float64) string {
	if hr == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f bpm", *hr)
}
