// Package models содержит доменные структуры платёжной инициации:
// тело запроса клиента, сохранённую запись платежа и событие об инициации.
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Статусы платежа на стороне банка и их укрупнённые группы.
const (
	BankStatusStarted  = "STRD" // платёж создан, ожидает подтверждения плательщиком
	BankStatusAccepted = "ACTC" // плательщик подтвердил платёж

	StatusGroupStarted = "started"
	StatusGroupPending = "pending"
)

// InformationStructured структурированное назначение платежа.
type InformationStructured struct {
	Reference string `json:"reference" validate:"required,max=140"`
}

// CreditorAccount счёт получателя.
type CreditorAccount struct {
	IBAN string `json:"iban" validate:"required,iban"`
}

// BankPaymentMethod описывает банковский перевод получателю.
type BankPaymentMethod struct {
	CreditorName          string                 `json:"creditorName" validate:"required,max=70"`
	EndToEndID            string                 `json:"endToEndId" validate:"required,max=35"`
	InformationStructured *InformationStructured `json:"informationStructured,omitempty"`
	CreditorAccount       CreditorAccount        `json:"creditorAccount"`
}

// PaymentRequest тело запроса POST /pis/payment.
// Amount принимается как есть: тип и точность проверяются отдельно, до валидации остальных полей.
type PaymentRequest struct {
	Amount            json.RawMessage   `json:"amount" swaggertype:"number" example:"0.01"`
	CurrencyCode      string            `json:"currencyCode" validate:"required,currency" example:"EUR"`
	Description       string            `json:"description" validate:"max=500" example:"test"`
	BankPaymentMethod BankPaymentMethod `json:"bankPaymentMethod"`
}

// Initiation проверенные данные для создания платежа.
type Initiation struct {
	Amount            decimal.Decimal
	CurrencyCode      string
	Description       string
	BankPaymentMethod BankPaymentMethod
	RedirectURL       string
	PSUDeviceID       string
}

// Payment сохранённая запись платежа.
type Payment struct {
	ID                string            `json:"id"`
	ClientID          string            `json:"clientId"`
	Amount            decimal.Decimal   `json:"amount"`
	CurrencyCode      string            `json:"currencyCode"`
	Description       string            `json:"description"`
	BankPaymentMethod BankPaymentMethod `json:"bankPaymentMethod"`
	BankStatus        string            `json:"bankStatus"`
	StatusGroup       string            `json:"statusGroup"`
	ConfirmLink       string            `json:"confirmLink"`
	RedirectURL       string            `json:"redirectUrl"`
	PSUDeviceID       string            `json:"psuDeviceId,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// PaymentInitiatedEvent публикуется в брокер после сохранения платежа.
type PaymentInitiatedEvent struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Amount       string    `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	EndToEndID   string    `json:"end_to_end_id"`
	CreatedAt    time.Time `json:"created_at"`
}
