package models

// Subject предмет, к которому привязана очередь внутри группы.
//
// Тройка (группа, полное имя, короткое имя) уникальна,
// повторное создание отклоняется хранилищем.
type Subject struct {
	ID               int    // Идентификатор предмета
	GroupUID         string // Владеющая группа
	SubjectFullName  string // Полное название предмета
	SubjectShortName string // Короткое название предмета
}

// SubjectRequest используется для приёма данных нового предмета из JSON-запроса.
type SubjectRequest struct {
	SubjectFullName  string `json:"subject_full_name" validate:"required"`  // Полное название
	SubjectShortName string `json:"subject_short_name" validate:"required"` // Короткое название
}

// UpdateSubjectRequest используется для приёма изменений предмета.
type UpdateSubjectRequest struct {
	ID               int    `json:"id" validate:"required,gt=0"`            // Идентификатор предмета
	SubjectFullName  string `json:"subject_full_name" validate:"required"`  // Полное название
	SubjectShortName string `json:"subject_short_name" validate:"required"` // Короткое название
}

// SubjectView проекция предмета для ответов API.
type SubjectView struct {
	ID               int    `json:"id"`
	SubjectFullName  string `json:"subject_full_name"`
	SubjectShortName string `json:"subject_short_name"`
}
