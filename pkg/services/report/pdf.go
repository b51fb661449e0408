package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin       = 20.0
	pdfTopMargin    = 15.0
	pdfContentWidth = 170.0
	pdfFont         = "Helvetica"

	placeholderHeight = 60.0
	sectionSpacing    = 10.0
	rowHeight         = 8.0

	chartImageName = "progress-chart"
	creatorName    = "solar-atlas"
)

var (
	headFill   = [3]int{41, 128, 185}
	stripeFill = [3]int{245, 245, 245}
	chartFill  = [3]int{200, 220, 255}
)

// PDFRenderer lays the report out on A4 pages: a centered header, tables
// for summary and details, and the chart scaled to the content width.
type PDFRenderer struct {
	chartMode  ChartMode
	compress   bool
	rasterizer ChartRasterizer
}

func NewPDFRenderer(mode ChartMode, compress bool, rasterizer ChartRasterizer) *PDFRenderer {
	return &PDFRenderer{
		chartMode:  mode,
		compress:   compress,
		rasterizer: rasterizer,
	}
}

type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (r *PDFRenderer) Render(ctx context.Context, report *domain.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator(creatorName, true)
	pdf.SetMargins(pdfMargin, pdfTopMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfTopMargin)
	pdf.AddPage()

	doc := &pdfDoc{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	for _, section := range report.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch section.Kind {
		case domain.SectionHeader:
			r.header(doc, report)
		case domain.SectionChart:
			if err := r.chart(doc, section); err != nil {
				return nil, err
			}
		default:
			r.tables(doc, section)
		}

		if pdf.Err() {
			return nil, fmt.Errorf("render %s section: %w", section.Kind, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) header(doc *pdfDoc, report *domain.Report) {
	doc.SetFont(pdfFont, "B", 20)
	doc.CellFormat(0, 12, doc.tr(report.Title), "", 1, "C", false, 0, "")
	doc.SetFont(pdfFont, "", 12)
	doc.CellFormat(0, 8, doc.tr("Generated on: "+report.DateLabel), "", 1, "C", false, 0, "")
	doc.Ln(sectionSpacing)
}

func (r *PDFRenderer) sectionTitle(doc *pdfDoc, title string) {
	doc.SetFont(pdfFont, "B", 16)
	doc.CellFormat(0, 10, doc.tr(title), "", 1, "L", false, 0, "")
}

func (r *PDFRenderer) tables(doc *pdfDoc, section domain.ReportSection) {
	r.sectionTitle(doc, section.Title)

	for _, table := range section.Tables {
		if table.Title != "" {
			doc.SetFont(pdfFont, "B", 12)
			doc.CellFormat(0, 8, doc.tr(table.Title), "", 1, "L", false, 0, "")
		}
		if len(table.Columns) == 0 {
			continue
		}

		width := pdfContentWidth / float64(len(table.Columns))
		border := ""
		if table.Style == domain.TableStyleGrid {
			border = "1"
		}

		doc.SetFont(pdfFont, "B", 10)
		doc.SetFillColor(headFill[0], headFill[1], headFill[2])
		doc.SetTextColor(255, 255, 255)
		for _, col := range table.Columns {
			doc.CellFormat(width, rowHeight, fit(doc, col, width), border, 0, "L", true, 0, "")
		}
		doc.Ln(-1)

		doc.SetFont(pdfFont, "", 10)
		doc.SetTextColor(0, 0, 0)
		doc.SetFillColor(stripeFill[0], stripeFill[1], stripeFill[2])
		for i, row := range table.Rows {
			fill := table.Style == domain.TableStyleStriped && i%2 == 1
			for _, cell := range row {
				doc.CellFormat(width, rowHeight, fit(doc, cell, width), border, 0, "L", fill, 0, "")
			}
			doc.Ln(-1)
		}
		doc.Ln(sectionSpacing)
	}
}

func (r *PDFRenderer) chart(doc *pdfDoc, section domain.ReportSection) error {
	r.sectionTitle(doc, section.Title)

	if r.chartMode == ChartModeRaster && section.Chart != nil && len(section.Chart.Values) > 0 {
		return r.rasterChart(doc, section.Chart)
	}

	r.ensureSpace(doc, placeholderHeight)
	y := doc.GetY()
	doc.SetDrawColor(0, 0, 0)
	doc.SetFillColor(chartFill[0], chartFill[1], chartFill[2])
	doc.Rect(pdfMargin, y, pdfContentWidth, placeholderHeight, "F")
	doc.SetY(y + placeholderHeight + sectionSpacing)
	return nil
}

// rasterChart embeds the chart image at the content width, keeping the
// image's aspect ratio.
func (r *PDFRenderer) rasterChart(doc *pdfDoc, series *domain.ChartSeries) error {
	img, err := r.rasterizer.Rasterize(series)
	if err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := doc.RegisterImageOptionsReader(chartImageName, opts, bytes.NewReader(img))
	if doc.Err() {
		return fmt.Errorf("register chart image: %w", doc.Error())
	}
	if info == nil || info.Width() <= 0 {
		return fmt.Errorf("chart image has no size")
	}

	height := pdfContentWidth * info.Height() / info.Width()
	r.ensureSpace(doc, height)

	y := doc.GetY()
	doc.ImageOptions(chartImageName, pdfMargin, y, pdfContentWidth, height, false, opts, 0, "")
	doc.SetY(y + height + sectionSpacing)
	return nil
}

func (r *PDFRenderer) ensureSpace(doc *pdfDoc, height float64) {
	_, pageHeight := doc.GetPageSize()
	_, _, _, bottom := doc.GetMargins()
	if doc.GetY()+height > pageHeight-bottom {
		doc.AddPage()
	}
}

// fit translates s for the core fonts and shortens it to the cell width.
func fit(doc *pdfDoc, s string, width float64) string {
	const ellipsis = "..."
	out := doc.tr(s)
	limit := width - 2*doc.GetCellMargin()
	if doc.GetStringWidth(out) <= limit {
		return out
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = doc.tr(string(runes) + ellipsis)
		if doc.GetStringWidth(out) <= limit {
			return out
		}
	}
	return ""
}
