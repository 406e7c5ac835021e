package models

import "time"

// Subscription платное право владения группой.
//
// На одного владельца допускается не больше одной подписки,
// это закреплено уникальным индексом в хранилище.
type Subscription struct {
	ID              int       // Идентификатор записи
	OwnerUID        string    // Владелец подписки
	GroupUID        string    // Группа, созданная или принятая при активации
	Tier            int       // Уровень тарифного плана
	GroupPopulation int       // Максимум приглашаемых участников
	Months          int       // Длительность подписки в месяцах
	CreatedAt       time.Time // Дата активации
	Expires         time.Time // Дата истечения: CreatedAt + Months календарных месяцев
}

// ActivateSubscriptionRequest используется для приёма данных активации из JSON-запроса.
type ActivateSubscriptionRequest struct {
	Tier            int    `json:"tier" validate:"required,gt=0"`             // Уровень плана (>0)
	Months          int    `json:"months" validate:"required,gt=0"`           // Количество месяцев (>0)
	GroupPopulation int    `json:"group_population" validate:"required,gt=0"` // Размер группы (>0)
	GroupNumber     string `json:"group_number" validate:"required"`          // Номер создаваемой группы
}

// SubscriptionView проекция подписки для ответа /user/subscription_plan.
type SubscriptionView struct {
	Tier            int       `json:"tier"`
	GroupPopulation int       `json:"group_population"`
	Months          int       `json:"months"`
	CreatedAt       time.Time `json:"created_at"`
	Expires         time.Time `json:"expires"`
}
