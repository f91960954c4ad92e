// Package mailer sends plain-text notification mail over SMTP. When no SMTP
// credentials are configured it degrades to a log-only transport, so inquiry
// submission keeps working in development.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"time"
)

type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	adminAddr string
	infoLog   *log.Logger
}

func New(host, port, username, password, adminAddr string, infoLog *log.Logger) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		adminAddr: adminAddr,
		infoLog:   infoLog,
	}
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.configured() {
		m.infoLog.Printf("mock mail to %s: %s", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s\r\n", to, subject, body))
	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendInquiry notifies the shop and confirms receipt to the customer.
func (m *Mailer) SendInquiry(item string, quantity int, unit, email, message string) error {
	if message == "" {
		message = "No additional message"
	}

	adminBody := fmt.Sprintf(
		"New inquiry received:\n\nItem: %s\nQuantity: %d %s\nCustomer email: %s\nMessage: %s\n\nDate: %s\n",
		item, quantity, unit, email, message, time.Now().Format(time.RFC1123))
	if err := m.Send(m.adminAddr, "New Inquiry: "+item, adminBody); err != nil {
		return err
	}

	customerBody := fmt.Sprintf(
		"Thank you for your inquiry!\n\nWe have received your request for: %s\nQuantity: %d %s\n\nOur team will review your inquiry and get back to you within 24 hours.\n",
		item, quantity, unit)
	return m.Send(email, "Inquiry received - we'll get back to you soon", customerBody)
}
