package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/assetflow/assetflow/internal/application/notification"
	"github.com/assetflow/assetflow/internal/shared/config"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

func SMTPConfigFrom(cfg *config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

// sender is the part of gomail.Dialer the service uses.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer sender
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// Send delivers msg with a plain-text body and an HTML alternative. gomail
// has no context support, so cancellation is only honoured before dialing.
func (s *SMTPEmailService) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.PlainBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// LogMailer stands in when SMTP is not configured. It records what would
// have been sent.
type LogMailer struct {
	logger logger.Interface
}

func NewLogMailer(log logger.Interface) *LogMailer {
	return &LogMailer{logger: log}
}

func (l *LogMailer) Send(_ context.Context, msg notification.Message) error {
	l.logger.Infow("email disabled, message dropped", "to", utils.MaskEmail(msg.To), "subject", msg.Subject)
	return nil
}

// NewMailer picks SMTP when a host is configured.
func NewMailer(cfg *config.EmailConfig, log logger.Interface) notification.Mailer {
	if !cfg.Enabled() {
		return NewLogMailer(log)
	}
	return NewSMTPEmailService(SMTPConfigFrom(cfg))
}
