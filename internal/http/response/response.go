// Package response содержит форматы JSON-ответов HTTP-обработчиков.
//
// Используются две формы ошибок: сообщение валидации тела запроса в поле data
// ({"status":"Error","data":"..."}) и именованная ошибка в поле error
// ({"status":"Error","error":{"name":"...","description":"..."}}).
// Успешные ответы отдаются без обёртки.
package response

import (
	"fmt"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pis-contract/internal/lib/validate"
)

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Имена ошибок в поле error.name.
const (
	ErrNameUnauthorized        = "Unauthorized"
	ErrNameInvalidRedirect     = "InvalidRedirect"
	ErrNamePaymentNotFound     = "PaymentNotFound"
	ErrNameInvalidConfirmToken = "InvalidConfirmToken"
	ErrNameTooManyRequests     = "TooManyRequests"
	ErrNameInternal            = "InternalError"
)

// Response ответ со статусом и данными. При ошибке валидации Data содержит сообщение.
type Response struct {
	Status string `json:"status" example:"Error"`
	Data   any    `json:"data,omitempty" swaggertype:"string" example:"\"amount\" must be a number"`
}

// ErrorBody именованная ошибка.
type ErrorBody struct {
	Name        string `json:"name" example:"InvalidRedirect"`
	Description string `json:"description,omitempty" example:"Redirect-URL header must be an absolute http(s) URL"`
}

// ErrorResponse ответ с именованной ошибкой.
type ErrorResponse struct {
	Status string    `json:"status" example:"Error"`
	Error  ErrorBody `json:"error"`
}

// OK возвращает успешный Response с данными.
func OK(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ErrorResponse с именем ошибки и описанием.
func Error(name, description string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error: ErrorBody{
			Name:        name,
			Description: description,
		},
	}
}

// Invalid возвращает Response с сообщением валидации.
func Invalid(msg string) Response {
	return Response{
		Status: StatusError,
		Data:   msg,
	}
}

// ValidationError формирует Response по первому нарушению правил валидации.
func ValidationError(errs validator.ValidationErrors) Response {
	if len(errs) == 0 {
		return Invalid("invalid request body")
	}
	return Invalid(ValidationMessage(errs[0]))
}

// ValidationMessage текст нарушения в формате "\"<путь>\" <правило>".
func ValidationMessage(fe validator.FieldError) string {
	path := validate.Path(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", path)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", path, fe.Param())
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", path, fe.Param())
	case "len":
		return fmt.Sprintf("%q length must be %s characters long", path, fe.Param())
	case "currency":
		return fmt.Sprintf("%q must be a valid ISO 4217 currency code", path)
	case "iban":
		return fmt.Sprintf("%q must be a valid IBAN", path)
	default:
		return fmt.Sprintf("%q contains an invalid value", path)
	}
}
