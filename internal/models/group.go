package models

// Group граница мультиарендности: пользователи, предметы и очереди
// принадлежат ровно одной группе.
//
// GroupNumber — отображаемая метка, уникальность для неё не гарантируется.
type Group struct {
	GroupUID    string // Опаковый уникальный идентификатор группы
	GroupNumber string // Отображаемый номер группы
}

// SetGroupNameRequest используется для приёма нового номера группы.
type SetGroupNameRequest struct {
	GroupNumber string `json:"group_number" validate:"required"` // Новый номер группы
}
