package email

import (
	"fmt"

	"github.com/ShiroiHyun/StudAIApp/internal/ports"
	"github.com/ShiroiHyun/StudAIApp/pkg/config"
)

// NewProvider builds the EmailProvider named by config. SendGrid for
// production, SMTP for development relays.
func NewProvider(cfg config.EmailConfig) (ports.EmailProvider, error) {
	switch cfg.Provider {
	case "sendgrid":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("sendgrid provider requires an api key")
		}
		return NewSendGridProvider(cfg.APIKey, cfg.From, cfg.FromName), nil
	case "smtp":
		return NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, "", "", cfg.From, cfg.FromName), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
