package email

import (
	"strings"
	"testing"

	"github.com/ShiroiHyun/StudAIApp/pkg/config"
)

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider(config.EmailConfig{Provider: "sendgrid", APIKey: "sg-key", From: "noreply@studai.app"}); err != nil {
		t.Errorf("sendgrid provider failed: %v", err)
	}
	if _, err := NewProvider(config.EmailConfig{Provider: "sendgrid"}); err == nil {
		t.Error("sendgrid without api key should fail")
	}
	if _, err := NewProvider(config.EmailConfig{Provider: "smtp", SMTPHost: "localhost", SMTPPort: 1025}); err != nil {
		t.Errorf("smtp provider failed: %v", err)
	}
	if _, err := NewProvider(config.EmailConfig{Provider: "pigeon"}); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestSMTPProvider_BuildMessage(t *testing.T) {
	p := NewSMTPProvider("localhost", 1025, "", "", "noreply@studai.app", "StudAI")

	msg := p.buildMessage("ana@uni.edu", "Cita registrada", "Tu cita quedó registrada.", false)
	if !strings.Contains(msg, "From: StudAI <noreply@studai.app>\r\n") {
		t.Errorf("missing from header:\n%s", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/plain; charset=UTF-8\r\n") {
		t.Errorf("missing content type:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "\r\nTu cita quedó registrada.") {
		t.Errorf("body not last:\n%s", msg)
	}

	msg = p.buildMessage("ana@uni.edu", "Hola", "<b>Hola</b>", true)
	if !strings.Contains(msg, "text/html") {
		t.Errorf("html content type missing:\n%s", msg)
	}
}
