package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/i18n"
	"github.com/kitshop/internal/models"
)

// EmailSender 业务邮件发送接口
type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, toEmail, name, locale string, order *models.Order) error
	SendKitRequestLead(ctx context.Context, req *models.KitRequest) error
	SendKitRequestReceipt(ctx context.Context, req *models.KitRequest) error
}

// smtpSendFunc SMTP 投递函数
type smtpSendFunc func(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error

// EmailService 基于 SMTP 的邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send smtpSendFunc
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// emailContent 渲染后的邮件
type emailContent struct {
	subject string
	body    string
}

// SendOrderConfirmation 发送订单确认邮件
func (s *EmailService) SendOrderConfirmation(ctx context.Context, toEmail, name, locale string, order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	return s.deliver(ctx, toEmail, orderConfirmationContent(name, locale, order))
}

// SendKitRequestLead 通知管理员有新的套件咨询
func (s *EmailService) SendKitRequestLead(ctx context.Context, req *models.KitRequest) error {
	if req == nil {
		return ErrKitRequestNotFound
	}
	return s.deliver(ctx, s.leadRecipient(), kitRequestLeadContent(req))
}

// SendKitRequestReceipt 向访客发送咨询回执
func (s *EmailService) SendKitRequestReceipt(ctx context.Context, req *models.KitRequest) error {
	if req == nil {
		return ErrKitRequestNotFound
	}
	return s.deliver(ctx, req.Email, kitRequestReceiptContent(req))
}

func (s *EmailService) leadRecipient() string {
	if s.cfg == nil {
		return ""
	}
	if recipient := strings.TrimSpace(s.cfg.LeadRecipient); recipient != "" {
		return recipient
	}
	return s.cfg.From
}

func (s *EmailService) deliver(ctx context.Context, toEmail string, content emailContent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	msg := composeMessage(fromHeader(s.cfg.From, s.cfg.FromName), toEmail, content)
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	send := s.send
	if send == nil {
		send = smtpTransport(s.cfg.UseSSL, s.cfg.UseTLS)
	}
	return classifySendError(send(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, msg))
}

func orderConfirmationContent(name, locale string, order *models.Order) emailContent {
	lang := i18n.NormalizeLocale(locale)
	var body strings.Builder
	body.WriteString(i18n.Sprintf(lang, "email.order_confirmation.greeting", name))
	body.WriteString("\n\n")
	body.WriteString(i18n.T(lang, "email.order_confirmation.intro"))
	body.WriteString("\n\n")
	for _, item := range order.Items {
		body.WriteString(i18n.Sprintf(lang, "email.order_confirmation.line",
			item.ItemName,
			item.ItemKind,
			item.ItemID,
			item.Quantity,
			item.PriceAtPurchase.String(),
			item.TotalPrice.String(),
		))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(i18n.Sprintf(lang, "email.order_confirmation.total", order.TotalAmount.String()))
	body.WriteString("\n")
	body.WriteString(i18n.Sprintf(lang, "email.order_confirmation.address", order.ShippingAddress))
	body.WriteString("\n\n")
	body.WriteString(i18n.Sprintf(lang, "email.order_confirmation.thanks", name))
	return emailContent{
		subject: i18n.Sprintf(lang, "email.order_confirmation.subject", order.ID),
		body:    body.String(),
	}
}

// kitRequestLeadContent 管理员通知固定使用西语模板
func kitRequestLeadContent(req *models.KitRequest) emailContent {
	lang := i18n.LocaleES
	message := req.Message
	if message == "" {
		message = "-"
	}
	lines := []string{
		i18n.T(lang, "email.kit_request_lead.intro"),
		"",
		i18n.Sprintf(lang, "email.kit_request_lead.kit", req.KitName),
		i18n.Sprintf(lang, "email.kit_request_lead.name", req.Name),
		i18n.Sprintf(lang, "email.kit_request_lead.email", req.Email),
		i18n.Sprintf(lang, "email.kit_request_lead.message", message),
		i18n.Sprintf(lang, "email.kit_request_lead.date", req.CreatedAt.Format(time.RFC1123)),
	}
	return emailContent{
		subject: i18n.Sprintf(lang, "email.kit_request_lead.subject", req.KitName),
		body:    strings.Join(lines, "\n"),
	}
}

func kitRequestReceiptContent(req *models.KitRequest) emailContent {
	lang := i18n.NormalizeLocale(req.Locale)
	lines := []string{
		i18n.Sprintf(lang, "email.kit_request_receipt.greeting", req.Name),
		"",
		i18n.Sprintf(lang, "email.kit_request_receipt.body", req.KitName),
		"",
		i18n.T(lang, "email.kit_request_receipt.signature"),
	}
	return emailContent{
		subject: i18n.T(lang, "email.kit_request_receipt.subject"),
		body:    strings.Join(lines, "\n"),
	}
}

func fromHeader(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	return (&mail.Address{Name: mime.QEncoding.Encode("UTF-8", name), Address: from}).String()
}

func composeMessage(from, to string, content emailContent) []byte {
	var buf bytes.Buffer
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("UTF-8", content.subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")
	buf.WriteString(content.body)
	return buf.Bytes()
}

// smtpTransport 按配置选择隐式 TLS、STARTTLS 或明文连接
func smtpTransport(useSSL, useTLS bool) smtpSendFunc {
	return func(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
		var (
			client *smtp.Client
			err    error
		)
		if useSSL {
			conn, dialErr := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
			if dialErr != nil {
				return dialErr
			}
			client, err = smtp.NewClient(conn, host)
			if err != nil {
				conn.Close()
				return err
			}
		} else {
			client, err = smtp.Dial(addr)
			if err != nil {
				return err
			}
		}
		defer client.Close()

		if useTLS && !useSSL {
			if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
				return err
			}
		}
		if auth != nil {
			if ok, _ := client.Extension("AUTH"); ok {
				if err := client.Auth(auth); err != nil {
					return err
				}
			}
		}
		if err := client.Mail(from); err != nil {
			return err
		}
		for _, rcpt := range to {
			if err := client.Rcpt(rcpt); err != nil {
				return err
			}
		}
		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write(msg); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		return client.Quit()
	}
}

func classifySendError(err error) error {
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

var recipientRejectedPhrases = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"unknown mailbox",
	"mailbox unavailable",
}

var recipientHints = []string{"recipient", "user", "mailbox", "address", "rcpt"}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	for _, phrase := range recipientRejectedPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	if !strings.Contains(message, "550") {
		return false
	}
	for _, hint := range recipientHints {
		if strings.Contains(message, hint) {
			return true
		}
	}
	return false
}
