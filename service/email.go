package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"riskassess/config"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用
var ErrEmailDisabled = errors.New("email service is not enabled")

// Mailer 发送邮件的底层接口，便于测试替换
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService 邮件服务，用于发送评估报告
type EmailService struct {
	cfg    *config.EmailConfig
	mailer Mailer
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		cfg:    cfg,
		mailer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Enabled 是否启用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendReportEmail 发送评估报告
func (s *EmailService) SendReportEmail(toEmail, name, report string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}

	subject := "AI Diabetes Risk Report"
	body := s.generateReportEmailBody(name, report)
	return s.sendEmail(toEmail, subject, body, report)
}

// generateReportEmailBody 生成报告邮件 HTML
func (s *EmailService) generateReportEmailBody(name, report string) string {
	greeting := "Hello,"
	if n := strings.TrimSpace(name); n != "" {
		greeting = fmt.Sprintf("Hello <strong>%s</strong>,", html.EscapeString(n))
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #4CAF50, #2e7d32); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        pre { background: #f0f0f0; border-left: 5px solid #4CAF50; padding: 15px; white-space: pre-wrap; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🩺 AI Diabetes Risk Assessment</h1>
        </div>
        <div class="content">
            <p>%s</p>
            <p>Here is your latest risk assessment report:</p>
            <pre>%s</pre>
            <p>This report is informational and does not replace a medical diagnosis.</p>
        </div>
        <div class="footer">
            <p>This email was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`, greeting, html.EscapeString(report))
}

// sendEmail 发送邮件，附带纯文本版本
func (s *EmailService) sendEmail(to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
