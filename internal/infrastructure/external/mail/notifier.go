package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/infrastructure/external/docgen"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPNotifier sends acceptance emails to offer clients. It implements
// port.Notifier.
type SMTPNotifier struct {
	dialer       *gomail.Dialer
	from         string
	documentsDir string
	logger       *zap.Logger
}

// NewSMTPNotifier creates a new SMTP notifier. documentsDir is where the
// generated contract and invoice PDFs live; it is only read when a caller
// asks for the attachment.
func NewSMTPNotifier(host string, smtpPort int, user, password, from, documentsDir string, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:       gomail.NewDialer(host, smtpPort, user, password),
		from:         from,
		documentsDir: documentsDir,
		logger:       logger,
	}
}

// SendAcceptance sends the acceptance email for a validated offer. When
// customContent is non-empty it replaces the default body. When
// includeAttachment is set, the offer's generated document is attached.
func (n *SMTPNotifier) SendAcceptance(ctx context.Context, offer *entity.Offer, customContent string, includeAttachment bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if offer.ClientEmail == "" {
		return fmt.Errorf("offer %s has no client email", offer.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", offer.ClientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your offer %s has been accepted", offer.Reference))

	body := customContent
	if body == "" {
		body = fmt.Sprintf(`
			<h2>Good news, %s!</h2>
			<p>Your offer <strong>%s</strong> has been accepted and is now being finalized.</p>
			<p>We will get back to you shortly with the next steps.</p>
		`, offer.ClientName, offer.Reference)
	}
	m.SetBody("text/html", body)

	if includeAttachment {
		path := filepath.Join(n.documentsDir, n.attachmentName(offer))
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("attachment not available: %w", err)
		}
		m.Attach(path)
	}

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send acceptance email: %w", err)
	}

	n.logger.Info("Acceptance email sent",
		zap.String("offer_id", offer.ID),
		zap.String("to", offer.ClientEmail),
		zap.Bool("attachment", includeAttachment))
	return nil
}

func (n *SMTPNotifier) attachmentName(offer *entity.Offer) string {
	if offer.IsPurchase {
		return docgen.InvoiceFilename(offer)
	}
	return docgen.ContractFilename(offer)
}

// Verify interface compliance
var _ port.Notifier = (*SMTPNotifier)(nil)
