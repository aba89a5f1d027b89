package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// DocumentGenerator renders the conversion artifacts of terminal offers:
// a contract PDF for lease offers, a draft invoice PDF for purchase offers.
// It implements both port.ContractCreator and port.InvoiceIssuer.
type DocumentGenerator struct {
	outputDir string
	issuer    string
	logger    *zap.Logger
}

// NewDocumentGenerator creates a new document generator
func NewDocumentGenerator(outputDir, issuer string, logger *zap.Logger) *DocumentGenerator {
	return &DocumentGenerator{
		outputDir: filepath.Clean(outputDir),
		issuer:    issuer,
		logger:    logger,
	}
}

// ContractFilename returns the file name of an offer's contract PDF.
func ContractFilename(offer *entity.Offer) string {
	return fmt.Sprintf("contract_%s.pdf", offer.Reference)
}

// InvoiceFilename returns the file name of an offer's draft invoice PDF.
func InvoiceFilename(offer *entity.Offer) string {
	return fmt.Sprintf("invoice_%s.pdf", offer.Reference)
}

// CreateContract renders the contract document for a lease offer.
func (g *DocumentGenerator) CreateContract(ctx context.Context, offer *entity.Offer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := g.ensureTarget(ContractFilename(offer))
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Contract %s", offer.Reference), false)
	pdf.SetAuthor(g.issuer, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "LEASE CONTRACT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Ref. %s - %s", offer.Reference, offer.CreatedAt.Format("02/01/2006")), "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, "Parties")
	g.kvLine(pdf, "Lessor", g.issuer)
	g.kvLine(pdf, "Client", offer.ClientName)
	g.kvLine(pdf, "Contact", offer.ClientEmail)
	g.hr(pdf)

	g.sectionTitle(pdf, "Financial terms")
	g.kvLine(pdf, "Equipment value", fmt.Sprintf("%.2f %s", offer.Amount, offer.Currency))
	g.kvLine(pdf, "Monthly payment", fmt.Sprintf("%.2f %s", offer.MonthlyPayment, offer.Currency))
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6,
		"The parties agree to the leasing of the equipment described in the appendix, "+
			"under the financial terms stated above. Delivery, maintenance and early "+
			"termination conditions are governed by the general terms attached to this contract.",
		"", "L", false)
	g.hr(pdf)

	g.sectionTitle(pdf, "Signatures")
	pdf.Ln(10)
	lineY := pdf.GetY()
	pdf.SetLineWidth(0.3)
	pdf.Line(20, lineY, 90, lineY)
	pdf.Line(120, lineY, 190, lineY)
	pdf.SetY(lineY + 2)
	pdf.SetX(20)
	pdf.Cell(70, 5, "The Lessor")
	pdf.SetX(120)
	pdf.Cell(70, 5, "The Client")

	if err := pdf.OutputFileAndClose(target); err != nil {
		return fmt.Errorf("write contract pdf: %w", err)
	}

	g.logger.Info("Contract generated",
		zap.String("offer_id", offer.ID),
		zap.String("file", target))
	return nil
}

// CreateDraft renders the draft invoice document for a purchase offer and
// returns the invoice reference.
func (g *DocumentGenerator) CreateDraft(ctx context.Context, offer *entity.Offer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := g.ensureTarget(InvoiceFilename(offer))
	if err != nil {
		return "", err
	}

	invoiceRef := fmt.Sprintf("INV-%s", offer.Reference)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", invoiceRef), false)
	pdf.SetAuthor(g.issuer, false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "DRAFT INVOICE", "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.kvLine(pdf, "Invoice number", invoiceRef)
	g.kvLine(pdf, "Client", offer.ClientName)
	g.kvLine(pdf, "Amount due", fmt.Sprintf("%.2f %s", offer.Amount, offer.Currency))
	g.kvLine(pdf, "Issue date", offer.UpdatedAt.Format("02/01/2006"))

	if err := pdf.OutputFileAndClose(target); err != nil {
		return "", fmt.Errorf("write invoice pdf: %w", err)
	}

	g.logger.Info("Draft invoice generated",
		zap.String("offer_id", offer.ID),
		zap.String("invoice_ref", invoiceRef),
		zap.String("file", target))
	return invoiceRef, nil
}

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create documents dir: %w", err)
	}
	return filepath.Join(g.outputDir, filepath.Base(filename)), nil
}

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

// Verify interface compliance
var (
	_ port.ContractCreator = (*DocumentGenerator)(nil)
	_ port.InvoiceIssuer   = (*DocumentGenerator)(nil)
)
