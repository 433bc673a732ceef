package services

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strings"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"

	"gopkg.in/gomail.v2"
)

// MailConfig carries the SMTP transport settings. User doubles as the
// sender address. Empty credentials mean the transport is unconfigured.
type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// MailService delivers rendered invoices by email, translating
// transport failures into the delivery error taxonomy.
type MailService struct {
	cfg MailConfig

	// send is swappable so tests can exercise classification without a
	// live SMTP server.
	send func(m *gomail.Message) error
}

// NewMailService creates a new MailService.
func NewMailService(cfg MailConfig) *MailService {
	s := &MailService{cfg: cfg}
	s.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
		return d.DialAndSend(m)
	}
	return s
}

// SendInvoice emails the rendered invoice PDF to the given address.
// The configuration check happens before any dial attempt.
func (s *MailService) SendInvoice(order *models.Order, invoicePDF []byte, to string) error {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return apperrors.ErrMailUnconfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Factura Electrónica - Adventure WorkCycle - Orden %s", order.ID))
	m.SetBody("text/html", invoiceMailBody(order))
	m.Attach(fmt.Sprintf("Factura-%s.pdf", order.ID),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(invoicePDF)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := s.send(m); err != nil {
		return classifyMailError(err)
	}
	return nil
}

// classifyMailError buckets a transport failure so callers can surface
// a distinct message per category: authentication, connectivity,
// recipient, or generic delivery failure.
func classifyMailError(err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return fmt.Errorf("%w: %v", apperrors.ErrMailAuth, err)
		case 501, 513, 550, 553:
			return fmt.Errorf("%w: %v", apperrors.ErrMailRecipient, err)
		}
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", apperrors.ErrMailConnection, err)
	}

	// The SMTP client does not always surface typed errors; fall back
	// to the reply text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "535") || strings.Contains(msg, "authentication"):
		return fmt.Errorf("%w: %v", apperrors.ErrMailAuth, err)
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "dial"):
		return fmt.Errorf("%w: %v", apperrors.ErrMailConnection, err)
	case strings.Contains(msg, "550") || strings.Contains(msg, "recipient"):
		return fmt.Errorf("%w: %v", apperrors.ErrMailRecipient, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
}

func invoiceMailBody(order *models.Order) string {
	name := "Cliente"
	if order.Address != nil && order.Address.Name != "" {
		name = order.Address.Name
	}
	return fmt.Sprintf(`<h2>¡Gracias por su compra!</h2>
<p>Estimado/a %s,</p>
<p>Adjunto encontrará la factura electrónica de su compra en Adventure WorkCycle.</p>
<p><strong>Número de Orden:</strong> %s</p>
<p><strong>Fecha:</strong> %s</p>
<p><strong>Total:</strong> $%.2f</p>
<p>Esta factura cumple con las normativas de facturación electrónica de El Salvador.</p>
<br>
<p>Saludos cordiales,<br>Equipo Adventure WorkCycle</p>`,
		name, order.ID, order.CreatedAt.Format("2/1/2006"), order.Total)
}
