package mocks

// MockMessageQueue records published messages and lets tests drive
// subscribers directly through Emit.
type MockMessageQueue struct {
	Published     map[string][][]byte
	handlers      map[string][]func([]byte) error
	PublishFunc   func(subject string, data []byte) error
	SubscribeFunc func(subject string, handler func([]byte) error) error
	CloseFunc     func() error
}

func NewMockMessageQueue() *MockMessageQueue {
	return &MockMessageQueue{
		Published: make(map[string][][]byte),
		handlers:  make(map[string][]func([]byte) error),
	}
}

func (m *MockMessageQueue) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.Published[subject] = append(m.Published[subject], data)
	return nil
}

func (m *MockMessageQueue) Subscribe(subject string, handler func(data []byte) error) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(subject, handler)
	}
	m.handlers[subject] = append(m.handlers[subject], handler)
	return nil
}

// Emit delivers a payload to every handler subscribed to subject.
func (m *MockMessageQueue) Emit(subject string, data []byte) error {
	for _, handler := range m.handlers[subject] {
		if err := handler(data); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockMessageQueue) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
