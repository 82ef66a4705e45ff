package mocks

import (
	"sync"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// SentSMS records one outbound SMS captured by the mock.
type SentSMS struct {
	To      string
	Message string
}

// MockNotificationService implements domain.NotificationService for testing.
// Deliveries are recorded so tests can assert on them.
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu  sync.Mutex
	SMS []SentSMS
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors.
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records an SMS delivery.
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SMS = append(m.SMS, SentSMS{To: to, Message: message})
	return nil
}

// SendEmail is a no-op by default.
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// LastSMS returns the most recent SMS, or nil when none was sent.
func (m *MockNotificationService) LastSMS() *SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SMS) == 0 {
		return nil
	}
	last := m.SMS[len(m.SMS)-1]
	return &last
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
