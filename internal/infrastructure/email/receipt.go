package email

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPReceiptSender emails purchase receipts after a payment settles. Sends
// are best effort, a failed receipt never affects the order.
type SMTPReceiptSender struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewSMTPReceiptSender(config SMTPConfig, planRepo catalog.PlanRepository, log logger.Interface) *SMTPReceiptSender {
	return &SMTPReceiptSender{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		planRepo: planRepo,
		logger:   log,
	}
}

// SendOrderReceipt emails the buyer a receipt for a completed order.
func (s *SMTPReceiptSender) SendOrderReceipt(ctx context.Context, ord *order.Order) error {
	if ord == nil {
		return fmt.Errorf("order cannot be nil")
	}
	if ord.PayerEmail() == "" {
		return fmt.Errorf("order %s has no payer email", ord.SID())
	}

	planTitle := "your house plan"
	if plan, err := s.planRepo.GetByID(ctx, ord.PlanID()); err != nil {
		s.logger.Warnw("failed to load plan for receipt", "order_sid", ord.SID(), "plan_id", ord.PlanID(), "error", err)
	} else if plan != nil {
		planTitle = plan.Title()
	}

	paidAt := biztime.NowUTC()
	if ord.PaidAt() != nil {
		paidAt = *ord.PaidAt()
	}

	amount := formatAmount(ord.Amount())
	subject := fmt.Sprintf("Your receipt for order %s", ord.SID())

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Thank you for your purchase!</h2>
			<p>Your payment has been confirmed. Here is your receipt:</p>
			<table>
				<tr><td>Order</td><td>%s</td></tr>
				<tr><td>Plan</td><td>%s</td></tr>
				<tr><td>Tier</td><td>%s</td></tr>
				<tr><td>Amount</td><td>%s</td></tr>
				<tr><td>Paid at</td><td>%s</td></tr>
			</table>
			<p>Your plan documents are now available for download from your orders page.</p>
		</body>
		</html>
	`, ord.SID(), planTitle, ord.Tier().Label(), amount, formatPaidAt(paidAt))

	plainBody := fmt.Sprintf(`
Thank you for your purchase!

Your payment has been confirmed. Here is your receipt:

Order:   %s
Plan:    %s
Tier:    %s
Amount:  %s
Paid at: %s

Your plan documents are now available for download from your orders page.
	`, ord.SID(), planTitle, ord.Tier().Label(), amount, formatPaidAt(paidAt))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", ord.PayerEmail())
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	return nil
}

func formatAmount(m vo.Money) string {
	unit, err := currency.ParseISO(m.Currency())
	if err != nil {
		return fmt.Sprintf("%s %.2f", m.Currency(), m.AmountMajor())
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.NarrowSymbol(unit.Amount(m.AmountMajor())))
}

func formatPaidAt(t time.Time) string {
	return biztime.ToBizTimezone(t).Format("2 Jan 2006, 15:04 MST")
}
