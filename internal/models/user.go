// Package models содержит доменные структуры сервиса очередей:
// пользователей, группы, подписки, коды приглашений, предметы и записи
// в очереди, а также типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                 string     // Уникальный идентификатор пользователя
	FirstName           string     // Имя
	LastName            string     // Фамилия
	Email               string     // Электронная почта (уникальная)
	PasswordHash        string     // Хэш пароля
	Role                string     // Роль: user или moderator
	GroupUID            *string    // Группа пользователя, nil пока не вступил
	SubscriptionExpires *time.Time // Дата истечения подписки группы
	CreatedAt           time.Time  // Дата регистрации
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`       // Имя
	LastName  string `json:"last_name" validate:"required"`        // Фамилия
	Email     string `json:"email" validate:"required,email"`      // Электронная почта
	Password  string `json:"password" validate:"required,min=6"`   // Пароль
}

// MemberView проекция участника группы для списка пользователей.
type MemberView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProfileView проекция собственного профиля пользователя.
// Хэш пароля наружу не отдается.
type ProfileView struct {
	UID                 string     `json:"id"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Email               string     `json:"email"`
	Role                string     `json:"role"`
	GroupUID            *string    `json:"group_id,omitempty"`
	SubscriptionExpires *time.Time `json:"subscription_expires,omitempty"`
}

// NewProfileView собирает проекцию профиля из доменной модели.
func NewProfileView(u *User) ProfileView {
	return ProfileView{
		UID:                 u.UID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Role:                u.Role,
		GroupUID:            u.GroupUID,
		SubscriptionExpires: u.SubscriptionExpires,
	}
}
