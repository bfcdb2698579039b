package mocks

import "context"

// MockEmail records a single message handed to MockEmailProvider.
type MockEmail struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

// MockEmailProvider is a mock implementation of email.Provider.
type MockEmailProvider struct {
	SendFunc func(ctx context.Context, to, subject, body string, isHTML bool) error
	Sent     []MockEmail
}

func (m *MockEmailProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body, isHTML)
	}
	m.Sent = append(m.Sent, MockEmail{To: to, Subject: subject, Body: body, IsHTML: isHTML})
	return nil
}
