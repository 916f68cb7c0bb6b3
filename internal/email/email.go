// Package email sends transactional notifications over SMTP. Handlers fire
// these from goroutines; a send failure is logged and never fails the request.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/yavrumyan/B2BPortal/config"
	"github.com/yavrumyan/B2BPortal/internal/models"
)

type Service struct {
	cfg     config.SMTPConfig
	baseURL string
	log     *zap.SugaredLogger
}

func NewService(cfg config.SMTPConfig, baseURL string, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, baseURL: baseURL, log: log}
}

func (s *Service) send(to, subject, htmlBody string) {
	if s.cfg.Host == "" {
		s.log.Infow("smtp not configured, skipping email", "to", to, "subject", subject)
		return
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s%s", to, subject, mime, htmlBody))

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		s.log.Errorw("failed to send email", "to", to, "subject", subject, "err", err)
		return
	}
	s.log.Infow("email sent", "to", to, "subject", subject)
}

func (s *Service) render(tmpl string, data any) string {
	t, err := template.New("mail").Parse(tmpl)
	if err != nil {
		s.log.Errorw("bad email template", "err", err)
		return ""
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		s.log.Errorw("failed to render email template", "err", err)
		return ""
	}
	return body.String()
}

// ─── Customer notifications ─────────────────────────────────────────────────

func (s *Service) RegistrationApproved(customer models.Customer) {
	body := s.render(registrationApprovedTmpl, map[string]any{
		"Company": customer.CompanyName,
		"URL":     s.baseURL,
	})
	s.send(customer.Email, "Your registration has been approved", body)
}

func (s *Service) RegistrationRejected(customer models.Customer) {
	body := s.render(registrationRejectedTmpl, map[string]any{
		"Company": customer.CompanyName,
	})
	s.send(customer.Email, "Your registration has been rejected", body)
}

func (s *Service) OrderConfirmation(customer models.Customer, order models.Order) {
	body := s.render(orderConfirmationTmpl, map[string]any{
		"Company":     customer.CompanyName,
		"OrderNumber": order.OrderNumber,
		"Total":       order.Total,
		"Items":       []models.OrderItem(order.Items),
		"URL":         fmt.Sprintf("%s/orders/%s", s.baseURL, order.ID),
	})
	s.send(customer.Email, fmt.Sprintf("Order %s received", order.OrderNumber), body)
}

// OrderStatusChanged notifies the customer when the admin updates the payment
// or delivery status of an order. kind is "payment" or "delivery".
func (s *Service) OrderStatusChanged(customer models.Customer, order models.Order, kind string) {
	status := string(order.PaymentStatus)
	if kind == "delivery" {
		status = string(order.DeliveryStatus)
	}
	body := s.render(orderStatusTmpl, map[string]any{
		"Company":     customer.CompanyName,
		"OrderNumber": order.OrderNumber,
		"Kind":        kind,
		"Status":      status,
		"URL":         fmt.Sprintf("%s/orders/%s", s.baseURL, order.ID),
	})
	s.send(customer.Email, fmt.Sprintf("Order %s %s status updated", order.OrderNumber, kind), body)
}

func (s *Service) NewOffer(customer models.Customer, inquiryID string) {
	body := s.render(newOfferTmpl, map[string]any{
		"Company": customer.CompanyName,
		"URL":     fmt.Sprintf("%s/inquiries/%s", s.baseURL, inquiryID),
	})
	s.send(customer.Email, "You have received a new offer", body)
}

func (s *Service) PasswordReset(toEmail, token string) {
	body := s.render(passwordResetTmpl, map[string]any{
		"URL": fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token),
	})
	s.send(toEmail, "Password recovery", body)
}

// ─── Admin notifications ────────────────────────────────────────────────────

func (s *Service) AdminNewRegistration(customer models.Customer) {
	if s.cfg.AdminTo == "" {
		return
	}
	body := s.render(adminNewRegistrationTmpl, map[string]any{
		"Company": customer.CompanyName,
		"Email":   customer.Email,
		"TaxID":   customer.TaxID,
		"URL":     s.baseURL + "/admin",
	})
	s.send(s.cfg.AdminTo, "New registration pending approval", body)
}

func (s *Service) AdminNewOrder(customer models.Customer, order models.Order) {
	if s.cfg.AdminTo == "" {
		return
	}
	body := s.render(adminNewOrderTmpl, map[string]any{
		"Company":     customer.CompanyName,
		"OrderNumber": order.OrderNumber,
		"Total":       order.Total,
		"URL":         fmt.Sprintf("%s/admin/orders/%s", s.baseURL, order.ID),
	})
	s.send(s.cfg.AdminTo, fmt.Sprintf("New order %s", order.OrderNumber), body)
}

func (s *Service) AdminNewInquiry(customer models.Customer) {
	if s.cfg.AdminTo == "" {
		return
	}
	body := s.render(adminNewInquiryTmpl, map[string]any{
		"Company": customer.CompanyName,
		"URL":     s.baseURL + "/admin",
	})
	s.send(s.cfg.AdminTo, "New product inquiry", body)
}
