package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/pis-contract/internal/lib/amount"
)

// Ожидаемые значения контракта.
const (
	BankStatusStarted  = "STRD"
	StatusGroupStarted = "started"
	ErrInvalidRedirect = "InvalidRedirect"

	MsgAmountTooSmall  = `"amount" must be greater than or equal to 0.01`
	MsgAmountNotNumber = `"amount" must be a number`
	MsgAmountPrecision = `"amount" contains an invalid value`

	ReferenceEndToEndID = "1234567890"
	invalidRedirectURL  = "invalid url"
)

// Env окружение прогона проверок.
type Env struct {
	Client  *Client
	Fixture Fixture
	Amount  decimal.Decimal
}

// NewEnv проверяет сумму тестового платежа по тем же правилам, что и сервер,
// и собирает Env.
func NewEnv(client *Client, fixture Fixture, testAmount string) (*Env, error) {
	value, err := amount.Parse(json.RawMessage(strconv.Quote(testAmount)))
	if err != nil {
		return nil, fmt.Errorf("verifier.NewEnv: invalid test payment amount %q: %w", testAmount, err)
	}
	return &Env{
		Client:  client,
		Fixture: fixture,
		Amount:  value,
	}, nil
}

// PaymentBody эталонное тело запроса инициации с заданной суммой.
// value передаётся как есть: число, строка или любой другой JSON-тип.
func PaymentBody(value any) map[string]any {
	return map[string]any{
		"amount":       value,
		"currencyCode": "EUR",
		"description":  "test",
		"bankPaymentMethod": map[string]any{
			"creditorName": "Padėk gatvės vaikams",
			"endToEndId":   ReferenceEndToEndID,
			"informationStructured": map[string]any{
				"reference": "test",
			},
			"creditorAccount": map[string]any{
				"iban": "LT177300010119765165",
			},
		},
	}
}

func (e *Env) referenceBody() map[string]any {
	return PaymentBody(json.Number(e.Amount.String()))
}

// Case одна независимая проверка контракта.
type Case struct {
	Name string
	Run  func(ctx context.Context, env *Env) error
}

// Cases возвращает проверки в порядке выполнения.
func Cases() []Case {
	return []Case{
		{Name: "initiate payment with valid data", Run: initiateValid},
		{Name: "initiate payment with reversed client id", Run: initiateReversedClientID},
		{Name: "initiate payment with empty client secret", Run: initiateEmptySecret},
		{Name: "initiate payment with invalid redirect url", Run: initiateInvalidRedirect},
		{Name: "initiate payment with zero amount", Run: amountCase(0, MsgAmountTooSmall)},
		{Name: "initiate payment with comma separated amount", Run: amountCase("1,230", MsgAmountNotNumber)},
		{Name: "initiate payment with three decimal digit amount", Run: amountCase("0.011", MsgAmountPrecision)},
		{Name: "initiated payment is persisted and readable by id", Run: roundTrip},
	}
}

func initiateValid(ctx context.Context, env *Env) error {
	resp, err := env.Client.InitiatePayment(ctx, env.Fixture.Credentials(), env.referenceBody())
	if err != nil {
		return err
	}
	e := That(resp).
		Status(http.StatusOK).
		NotEmpty("id").
		Equal("bankStatus", BankStatusStarted).
		Equal("statusGroup", StatusGroupStarted)
	if e.Err() != nil {
		return e.Err()
	}
	return e.Contains("confirmLink", resp.Get("id").String()).Err()
}

func initiateReversedClientID(ctx context.Context, env *Env) error {
	creds := env.Fixture.Credentials()
	creds.ClientID = env.Fixture.ReversedClientID()
	resp, err := env.Client.InitiatePayment(ctx, creds, env.referenceBody())
	if err != nil {
		return err
	}
	return That(resp).Status(http.StatusUnauthorized).Err()
}

func initiateEmptySecret(ctx context.Context, env *Env) error {
	creds := env.Fixture.Credentials()
	creds.ClientSecret = ""
	resp, err := env.Client.InitiatePayment(ctx, creds, env.referenceBody())
	if err != nil {
		return err
	}
	return That(resp).Status(http.StatusUnauthorized).Err()
}

func initiateInvalidRedirect(ctx context.Context, env *Env) error {
	creds := env.Fixture.Credentials()
	creds.RedirectURL = invalidRedirectURL
	resp, err := env.Client.InitiatePayment(ctx, creds, env.referenceBody())
	if err != nil {
		return err
	}
	return That(resp).
		Status(http.StatusBadRequest).
		Equal("error.name", ErrInvalidRedirect).
		Err()
}

func amountCase(value any, wantMessage string) func(ctx context.Context, env *Env) error {
	return func(ctx context.Context, env *Env) error {
		resp, err := env.Client.InitiatePayment(ctx, env.Fixture.Credentials(), PaymentBody(value))
		if err != nil {
			return err
		}
		return That(resp).
			Status(http.StatusBadRequest).
			Equal("data", wantMessage).
			Err()
	}
}

func roundTrip(ctx context.Context, env *Env) error {
	creds := env.Fixture.Credentials()
	creds.PSUDeviceID = env.Fixture.PSUDeviceID

	created, err := env.Client.InitiatePayment(ctx, creds, env.referenceBody())
	if err != nil {
		return err
	}
	if err = That(created).Status(http.StatusOK).NotEmpty("id").Err(); err != nil {
		return err
	}
	id := created.Get("id").String()

	// Чтение не требует PSU-Device-ID.
	read, err := env.Client.GetPayment(ctx, env.Fixture.Credentials(), id)
	if err != nil {
		return err
	}
	return That(read).
		Status(http.StatusOK).
		Equal("id", id).
		Equal("amount", env.Amount.StringFixed(2)).
		Equal("bankPaymentMethod.endToEndId", ReferenceEndToEndID).
		Err()
}
