package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"paraisopos/internal/model"
	"paraisopos/internal/ticket"
)

// GenerateTicketPDF writes the archival PDF copy of a sale voucher. The
// thermal printer gets the plain-text rendering; this file is the one that
// stays on disk for disputes and reprints from the back office.
// Returns the absolute path of the generated file.
func GenerateTicketPDF(venta *model.Venta, storeName, storageDir string) (string, error) {
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%d.pdf", venta.Folio)
	filePath := filepath.Join(storageDir, fileName)

	// 74mm × 105mm (≈A7), close to the thermal roll proportions.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Folio #%d", venta.Folio), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if venta.Usuario != nil {
		pdf.CellFormat(contentW, 4, "Vendedor: "+venta.Usuario.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := item.Nombre
		if item.EsPromo {
			nombre += " (P)"
		}
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+ticket.Monto(item.Total), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	if !venta.TotalExento.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Exento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+ticket.Monto(venta.TotalExento), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 4, "Afecto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+ticket.Monto(venta.TotalAfecto), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+ticket.Monto(venta.TotalGeneral), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, pago := range venta.Pagos {
		pdf.CellFormat(col1+col2, 4, "Pago ("+pago.Metodo+"):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+ticket.Monto(pago.Monto), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su preferencia!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
