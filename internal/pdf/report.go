package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

// ReportData dados do laudo de uma aplicação do teste de atenção.
type ReportData struct {
	PatientName         string
	PatientAge          string // idade detalhada na data de emissão
	ProfessionalName    string
	ProfessionalCRM     string
	AppliedAt           string // DD/MM/YYYY HH:MM
	TargetType          int
	TotalTiles          int
	TotalTargets        int
	CorrectlySelected   int
	IncorrectlySelected int
	MissedTargets       int
	TotalSelections     int
	AccuracyPercent     float64
	ElapsedSeconds      int
	TimeLimitSeconds    int
	ResultURL           string // link para o resultado no sistema (QR)
}

// BuildResultPDF gera o laudo em A4: cabeçalho com paciente e profissional,
// tabela de métricas e QR apontando para o resultado no sistema.
func BuildResultPDF(d ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Relatorio de Aplicacao - Teste de Atencao", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Paciente: "+d.PatientName, "", 1, "L", false, 0, "")
	if d.PatientAge != "" {
		pdf.CellFormat(0, 6, "Idade: "+d.PatientAge, "", 1, "L", false, 0, "")
	}
	prof := d.ProfessionalName
	if d.ProfessionalCRM != "" {
		prof += " - CRM " + d.ProfessionalCRM
	}
	pdf.CellFormat(0, 6, "Profissional: "+prof, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Data da aplicacao: "+d.AppliedAt, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Resultado", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	row := func(label, value string) {
		pdf.CellFormat(90, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "1", 1, "L", false, 0, "")
	}
	row("Total de figuras", fmt.Sprintf("%d", d.TotalTiles))
	row("Figuras iguais ao modelo", fmt.Sprintf("%d", d.TotalTargets))
	row("Marcadas corretamente", fmt.Sprintf("%d", d.CorrectlySelected))
	row("Marcadas incorretamente", fmt.Sprintf("%d", d.IncorrectlySelected))
	row("Nao marcadas (alvos perdidos)", fmt.Sprintf("%d", d.MissedTargets))
	row("Total de marcacoes", fmt.Sprintf("%d", d.TotalSelections))
	row("Acuracia", fmt.Sprintf("%.1f%%", d.AccuracyPercent))
	row("Tempo utilizado", fmt.Sprintf("%ds de %ds", d.ElapsedSeconds, d.TimeLimitSeconds))
	pdf.Ln(8)

	if d.ResultURL != "" {
		qrPNG, err := qrcode.Encode(d.ResultURL, qrcode.Medium, 128)
		if err == nil {
			tmpFile, err := os.CreateTemp("", "qr-*.png")
			if err == nil {
				_, _ = tmpFile.Write(qrPNG)
				path := tmpFile.Name()
				tmpFile.Close()
				defer os.Remove(path)
				pdf.RegisterImage(path, "PNG")
				pdf.Image(path, 15, pdf.GetY(), 30, 30, false, "", 0, "")
				pdf.SetY(pdf.GetY() + 32)
			}
		}
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, "Resultado online: "+d.ResultURL, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
