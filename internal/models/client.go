package models

import "time"

// Client зарегистрированный клиент API. Секрет хранится только в виде bcrypt-хэша.
type Client struct {
	ClientID   string
	SecretHash string
	Name       string
	CreatedAt  time.Time
}
