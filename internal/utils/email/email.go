package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/rent-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendOverdueNotice notifies a tenant about rent in arrears
func (s *Sender) SendOverdueNotice(to, name string, monthsPending int, amountDue int64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Overdue Rent Notification"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Our records show %d unpaid billing period(s) on your lease.\n"+
			"The outstanding amount is %d.\n"+
			"Please settle the balance as soon as possible; a late-payment surcharge may apply.\n",
		name, monthsPending, amountDue,
	)
	body += "\nBest regards,\nRent Service"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendUpcomingReminder reminds a tenant about a payment due soon
func (s *Sender) SendUpcomingReminder(to, name string, dueDate time.Time, amount int64, daysRemaining int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Upcoming Rent Payment Reminder"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a reminder that your rent payment of %d is due on %s (%d day(s) from now).\n"+
			"Please ensure the payment is made on time.\n",
		name, amount, dueDate.Format("2006-01-02"), daysRemaining,
	)
	body += "\nBest regards,\nRent Service"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendPaymentReceipt confirms a recorded payment to the tenant
func (s *Sender) SendPaymentReceipt(to, name, receiptNumber string, amount int64, date time.Time) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Rent Payment Receipt"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We received your rent payment of %d on %s.\n"+
			"Receipt number: %s\n",
		name, amount, date.Format("2006-01-02"), receiptNumber,
	)
	body += "\nBest regards,\nRent Service"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
