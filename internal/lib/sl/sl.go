// Package sl содержит вспомогательные функции для формирования
// структурированных полей логгера slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil возвращается пустое значение, чтобы вызов был безопасен в defer-цепочках.
//
// Пример:
//
//	log.Error("failed to persist payment", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("")}
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Client возвращает поле с идентификатором клиента API.
func Client(clientID string) slog.Attr {
	return slog.String("client_id", clientID)
}

// Payment возвращает поле с идентификатором платежа.
func Payment(paymentID string) slog.Attr {
	return slog.String("payment_id", paymentID)
}
