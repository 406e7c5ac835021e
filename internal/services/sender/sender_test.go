package sender_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bounchich1/queue-project-backend/internal/lib/smtp"
	"github.com/bounchich1/queue-project-backend/internal/models"
	"github.com/bounchich1/queue-project-backend/internal/services/sender"
)

// Мок для Transport
type TransportMock struct {
	mock.Mock
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *TransportMock) From() string {
	args := m.Called()
	return args.String(0)
}

// Мок для smtp.Client
type ClientMock struct {
	mock.Mock
	written []byte
}

func (m *ClientMock) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *ClientMock) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *ClientMock) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *ClientMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type writeCloserMock struct {
	buf []byte
}

func (w *writeCloserMock) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *writeCloserMock) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.InviteEvent{
		Email:     "owner@example.com",
		FirstName: "Ivan",
		Token:     "a1b2c3d4e5",
		Expires:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func TestSenderService_SendInvitationToken(t *testing.T) {
	t.Run("sends the invitation email", func(t *testing.T) {
		transport := new(TransportMock)
		client := new(ClientMock)
		wc := &writeCloserMock{}
		svc := sender.NewSenderService(transport, discardLogger())

		transport.On("From").Return("noreply@example.com")
		transport.On("Connect").Return(client, nil).Once()
		client.On("Mail", "noreply@example.com").Return(nil).Once()
		client.On("Rcpt", "owner@example.com").Return(nil).Once()
		client.On("Data").Return(wc, nil).Once()
		client.On("Quit").Return(nil).Once()
		client.On("Close").Return(nil).Once()

		err := svc.SendInvitationToken(eventBody(t))
		assert.NoError(t, err)
		assert.Contains(t, string(wc.buf), "a1b2c3d4e5")
		assert.Contains(t, string(wc.buf), "To: owner@example.com")
		transport.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("unparseable event is rejected", func(t *testing.T) {
		transport := new(TransportMock)
		svc := sender.NewSenderService(transport, discardLogger())

		err := svc.SendInvitationToken([]byte("not-json"))
		assert.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("connect failure is returned for requeue", func(t *testing.T) {
		transport := new(TransportMock)
		svc := sender.NewSenderService(transport, discardLogger())

		transport.On("From").Return("noreply@example.com")
		transport.On("Connect").Return(nil, errors.New("dial error")).Once()

		err := svc.SendInvitationToken(eventBody(t))
		assert.Error(t, err)
		transport.AssertExpectations(t)
	})
}
