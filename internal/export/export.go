// Package export serializa a lista achatada de pontos em planilha xlsx ou
// documento pdf para download.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Mayron603/painel-ssp/internal/models"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	// marcador para ponto ainda aberto
	emServico = "Em serviço"
)

const datetimeLayout = "02/01/2006 15:04:05"

func formatDatetime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(datetimeLayout)
}

func durationHours(p models.FlatPonto) (string, bool) {
	if p.Saida == nil {
		return "N/A", false
	}
	return fmt.Sprintf("%.2f", p.Saida.Sub(p.Entrada).Hours()), true
}

// WriteXLSX monta a planilha de relatório com uma linha por ponto.
func WriteXLSX(pontos []models.FlatPonto, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Relatório"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Usuário", "Entrada", "Saída", "Duração (h)"}
	widths := []float64{30, 25, 25, 15}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, err
		}
	}

	for i, p := range pontos {
		saida := emServico
		if p.Saida != nil {
			saida = formatDatetime(*p.Saida, loc)
		}
		duracao, _ := durationHours(p)

		row := i + 2
		values := []any{p.Username, formatDatetime(p.Entrada, loc), saida, duracao}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePDF monta o documento paginado: título, um bloco por ponto e uma
// linha separadora entre blocos.
func WritePDF(pontos []models.FlatPonto, loc *time.Location) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Relatório de Pontos"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range pontos {
		saida := "N/A"
		if p.Saida != nil {
			saida = formatDatetime(*p.Saida, loc)
		}
		duracao := emServico
		if h, ok := durationHours(p); ok {
			duracao = h + "h"
		}

		block := fmt.Sprintf("Usuário: %s\nEntrada: %s\nSaída: %s\nDuração: %s",
			p.Username, formatDatetime(p.Entrada, loc), saida, duracao)
		pdf.MultiCell(0, 5, tr(block), "", "L", false)

		pdf.SetDrawColor(221, 221, 221)
		x, y := pdf.GetX(), pdf.GetY()+2
		pdf.Line(x, y, 198, y)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
