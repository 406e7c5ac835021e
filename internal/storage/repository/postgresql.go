// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, групп, подписок, кодов приглашений, предметов
// и записей в очередях.
//
// Инварианты "не больше одной записи" (email пользователя, подписка
// владельца, запись в очереди, тройка предмета) закреплены уникальными
// ограничениями схемы, а не проверками перед вставкой: нарушение
// транслируется в errs.ErrConflict.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'queue_entries'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table queue_entries missing or query error: %w", err)
	}
	return nil
}

// classify переводит ошибки драйвера в доменные виды ошибок:
// нарушение уникальности в ErrConflict, пустую выборку в ErrNotFound.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", errs.ErrConflict, pgErr.ConstraintName)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}
