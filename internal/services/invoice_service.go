package services

import (
	"bytes"
	"fmt"

	"adventureworks/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Fixed invoice constants. The business operates in a single
// jurisdiction with a single currency, so these are not configuration.
const (
	taxRate        = 0.13
	currencySymbol = "$"
)

// Issuer identity block printed on every invoice.
const (
	issuerTitle    = "ADVENTURE WORKS EL SALVADOR"
	issuerSubtitle = "FACTURA ELECTRÓNICA"
	issuerLegal    = "Razón Social: Adventure Works El Salvador S.A. de C.V."
	issuerTaxID    = "NIT: 0614-123456-001-2"
	issuerAddress  = "Dirección: Av. Principal, San Salvador, El Salvador"
	issuerPhone    = "Teléfono: +503 2234-5678"
	issuerEmail    = "Email: ventas@adventureworks.sv"

	footerLine1 = "Esta factura cumple con las normativas de facturación electrónica de El Salvador"
	footerLine2 = "Ministerio de Hacienda - República de El Salvador"
)

// InvoiceService renders persisted orders as PDF invoices. It performs
// no I/O besides returning the assembled bytes.
type InvoiceService struct{}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService() *InvoiceService {
	return &InvoiceService{}
}

// Render produces the invoice document for an order: issuer header,
// invoice metadata, customer block, line-item table, totals with the
// fixed-rate tax, and the regulatory footer. The printed total is the
// stored order total; the subtotal is recomputed from the lines so the
// document can be verified against it.
func (s *InvoiceService) Render(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(40, 40, 40)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 24, tr(issuerTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 16, tr(issuerSubtitle), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{issuerLegal, issuerTaxID, issuerAddress, issuerPhone, issuerEmail} {
		pdf.CellFormat(0, 14, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(12)

	// Invoice metadata
	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 16, tr("DETALLES DE LA FACTURA"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, tr(fmt.Sprintf("Número de Factura: %s", order.ID)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 14, tr(fmt.Sprintf("Fecha de Emisión: %s", order.CreatedAt.Format("2/1/2006"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 14, tr(fmt.Sprintf("Hora de Emisión: %s", order.CreatedAt.Format("15:04:05"))), "", 1, "L", false, 0, "")
	pdf.Ln(12)

	// Customer block
	if order.Address != nil {
		pdf.SetFont("Helvetica", "BU", 12)
		pdf.CellFormat(0, 16, tr("INFORMACIÓN DEL CLIENTE"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 14, tr(fmt.Sprintf("Nombre: %s", orNA(order.Address.Name))), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 14, tr(fmt.Sprintf("Email: %s", orNA(order.Address.Email))), "", 1, "L", false, 0, "")
		addressLine := fmt.Sprintf("Dirección: %s, %s, %s",
			orNA(order.Address.Line1), orNA(order.Address.City), orNA(order.Address.Country))
		pdf.CellFormat(0, 14, tr(addressLine), "", 1, "L", false, 0, "")
		pdf.Ln(12)
	}

	// Line-item table
	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 16, tr("DETALLE DE PRODUCTOS"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(255, 14, tr("Descripción"), "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 14, tr("Cantidad"), "", 0, "R", false, 0, "")
	pdf.CellFormat(100, 14, tr("Precio Unit."), "", 0, "R", false, 0, "")
	pdf.CellFormat(100, 14, tr("Total"), "", 1, "R", false, 0, "")
	pdf.Line(40, pdf.GetY(), 555, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		desc := fmt.Sprintf("%s (%s)", item.Name, item.Brand)
		pdf.CellFormat(255, 14, tr(desc), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 14, fmt.Sprintf("%d", item.Qty), "", 0, "R", false, 0, "")
		pdf.CellFormat(100, 14, money(item.Unit), "", 0, "R", false, 0, "")
		pdf.CellFormat(100, 14, money(item.Line), "", 1, "R", false, 0, "")
		if item.Tag == models.TagDeal {
			pdf.SetFont("Helvetica", "", 8)
			pdf.CellFormat(0, 11, tr("(Descuento 25%)"), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		}
	}

	// Totals
	pdf.Ln(12)
	subtotal, discountAmount, tax := invoiceTotals(order)

	pdf.CellFormat(0, 14, fmt.Sprintf("Subtotal: %s", money(subtotal)), "", 1, "R", false, 0, "")
	if order.Discount != nil && order.Discount.Amount > 0 {
		line := fmt.Sprintf("Descuento (%s): -%s", order.Discount.Code, money(discountAmount))
		pdf.CellFormat(0, 14, tr(line), "", 1, "R", false, 0, "")
	}
	if order.Shipping != 0 {
		pdf.CellFormat(0, 14, tr(fmt.Sprintf("Envío: %s", money(order.Shipping))), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(0, 14, fmt.Sprintf("IVA (13%%): %s", money(tax)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 20, fmt.Sprintf("TOTAL: %s", money(order.Total)), "", 1, "R", false, 0, "")

	// Footer
	pdf.Ln(24)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 11, tr(footerLine1), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 11, tr(footerLine2), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// invoiceTotals recomputes the printable totals from the order lines:
// subtotal (independent of the stored total), the discount amount
// actually applied, and the fixed-rate tax over the discounted
// subtotal, each rounded to 2 decimals.
func invoiceTotals(order *models.Order) (subtotal, discountAmount, tax float64) {
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(decimal.NewFromFloat(item.Line))
	}
	sub := sum.Round(2)

	disc := decimal.Zero
	if order.Discount != nil && order.Discount.Amount > 0 {
		disc = decimal.NewFromFloat(order.Discount.Amount)
	}

	t := sub.Sub(disc).Mul(decimal.NewFromFloat(taxRate)).Round(2)
	return sub.InexactFloat64(), disc.InexactFloat64(), t.InexactFloat64()
}

func money(v float64) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, v)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
