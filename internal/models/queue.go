package models

import "time"

// QueueEntry занятое место в очереди предмета.
//
// Поле Position хранится информационно и всегда равно 1: фактический
// порядок очереди определяется порядком вставки (created_at, затем
// task_number). Подсчётный плотный ранг из ранних ревизий отброшен,
// два одновременных вступления на одном счётчике давали коллизию.
type QueueEntry struct {
	ID         int       // Идентификатор записи
	UserUID    string    // Пользователь, занявший место
	GroupUID   string    // Группа, в которой открыта очередь
	SubjectID  int       // Предмет очереди
	Position   int       // Информационная позиция, всегда 1
	TaskNumber int       // Номер задачи, указанный при вступлении
	CreatedAt  time.Time // Момент вступления, задается хранилищем
	ModifiedAt time.Time // Момент последнего изменения
}

// JoinQueueRequest используется для приёма данных вступления в очередь.
type JoinQueueRequest struct {
	SubjectID  int `json:"subject_id" validate:"required,gt=0"`  // Предмет
	TaskNumber int `json:"task_number" validate:"required,gt=0"` // Номер задачи
}

// QueueEntryView проекция записи очереди: позиция, номер задачи и имя.
// Имя подтягивается из users в момент чтения, рассинхронизации с
// переименованием пользователя нет.
type QueueEntryView struct {
	Position   int    `json:"position"`
	TaskNumber int    `json:"task_number"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}
