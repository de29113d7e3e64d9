// Package storage реализует хранилище клиентов и платежей поверх database/sql.
// Поддерживаются PostgreSQL (драйвер pgx) и встроенный SQLite (modernc.org/sqlite);
// запросы пишутся с плейсхолдерами $N и переписываются под SQLite при выполнении.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	// Регистрация драйверов для database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrPaymentNotFound возвращается, если платёж с таким id не найден.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrClientNotFound возвращается, если клиент не зарегистрирован.
	ErrClientNotFound = errors.New("client not found")
)

var placeholder = regexp.MustCompile(`\$\d+`)

// Storage инкапсулирует соединение с базой данных.
type Storage struct {
	DB     *sql.DB
	Driver string
}

// New открывает соединение с базой и проверяет его.
func New(driver, dsn string) (*Storage, error) {
	const op = "storage.New"

	var sqlDriver string
	switch driver {
	case DriverPostgres:
		sqlDriver = "pgx"
	case DriverSQLite:
		sqlDriver = "sqlite"
	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", op, driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if driver == DriverSQLite {
		// SQLite допускает одного писателя; одно соединение исключает SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB:     db,
		Driver: driver,
	}, nil
}

// Ping проверяет доступность базы данных.
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("storage.Ping: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой.
func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) rebind(query string) string {
	if s.Driver == DriverSQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

func (s *Storage) timeArg(t time.Time) any {
	if s.Driver == DriverSQLite {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// timestamp читает время и из TIMESTAMPTZ, и из текстовой колонки SQLite.
type timestamp struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func (t *timestamp) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("storage: cannot scan %T into timestamp", src)
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("storage: cannot parse timestamp %q", text)
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}
