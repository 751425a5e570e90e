// Package repository реализует хранилище данных на основе PostgreSQL
// для системы регистрации на конференцию. Предоставляет методы работы
// с пользователями, аффилиациями и докладами, включая атомарный
// workflow создания доклада со связями авторства.
//
// Инварианты уровня хранилища: уникальность email пользователя,
// уникальность пары (author, contribution), каскадное удаление авторств
// вместе с докладом, выставление created при вставке и обновление
// last_modified триггером при каждой мутации.
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
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
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
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'contributions'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table contributions missing or query error: %w", err)
	}
	return nil
}

// isPgError сообщает, является ли err ошибкой PostgreSQL с заданным кодом.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return isPgError(err, pgerrcode.UniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return isPgError(err, pgerrcode.ForeignKeyViolation)
}
