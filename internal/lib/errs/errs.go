// Package errs определяет сквозные виды ошибок доменного уровня.
//
// Сервисы и хранилище оборачивают эти ошибки через %w, обработчики
// распознают их через errors.Is и выбирают HTTP-статус.
package errs

import "errors"

var (
	// ErrNotFound запись не найдена (пользователь, подписка, запись в очереди).
	ErrNotFound = errors.New("not found")
	// ErrConflict нарушение уникальности: повторная регистрация email,
	// повторная запись в очередь, вторая активная подписка, исчерпанный токен.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized недействительные или отсутствующие учетные данные.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden действие запрещено для текущего пользователя.
	ErrForbidden = errors.New("forbidden")
)
