package models

import "time"

// InvitationToken многоразовый (с ограничением) код вступления в группу.
//
// RemainingActivations стартует с group_population подписки и монотонно
// убывает до нуля, исчерпанные коды остаются в хранилище и неактивны.
type InvitationToken struct {
	Token                string    // Случайный код приглашения
	GroupUID             string    // Группа, в которую приглашает код
	OwnerUID             string    // Владелец подписки, выпустивший код
	RemainingActivations int       // Оставшееся число активаций
	Expires              time.Time // Срок действия, копия срока подписки
	CreatedAt            time.Time // Дата выпуска
}

// InvitationTokenView проекция кода приглашения для ответов API.
type InvitationTokenView struct {
	Token                string    `json:"token"`
	RemainingActivations int       `json:"remaining_activations"`
	Expires              time.Time `json:"expires"`
}

// InviteEvent сообщение о выпуске кода приглашения для отправки по почте.
type InviteEvent struct {
	Email     string    `json:"email"`      // Почта владельца подписки
	FirstName string    `json:"first_name"` // Имя владельца
	Token     string    `json:"token"`      // Код приглашения
	Expires   time.Time `json:"expires"`    // Срок действия кода
}
