// Package sender отправляет письма с кодами приглашений.
//
// Сервис потребляет события из RabbitMQ и шлет код владельцу подписки
// по SMTP. Работает отдельным процессом, его недоступность никогда не
// блокирует HTTP-сервис.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/lib/smtp"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Transport описывает контракт SMTP-транспорта.
type Transport interface {
	Connect() (smtp.Client, error)
	From() string
}

// SenderService отправляет письма с кодами приглашений.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendInvitationToken разбирает событие о выпуске кода и отправляет письмо.
func (s *SenderService) SendInvitationToken(body []byte) error {
	var event models.InviteEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Код приглашения в группу"
	bodyText := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаш код приглашения: %s\n\nКод действует до %s. Передайте его участникам вашей группы.",
		event.FirstName, event.Token, event.Expires.Format("02.01.2006"))

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.transport.From()),
		fmt.Sprintf("To: %s", event.Email),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(s.transport.From()); err != nil {
		s.log.Error("failed to set mail sender", sl.Err(err))
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	if err = client.Rcpt(event.Email); err != nil {
		s.log.Error("failed to set recipient", sl.Err(err))
		return fmt.Errorf("failed to set recipient %s: %w", event.Email, err)
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get write closer", sl.Err(err))
		return fmt.Errorf("failed to get write closer: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close write closer", sl.Err(err))
		return fmt.Errorf("failed to close write closer: %w", err)
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("failed to quit SMTP client: %w", err)
	}

	s.log.Info("invitation email sent", slog.String("to", event.Email))
	return nil
}
