package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// Заголовки запросов к API.
const (
	HeaderClientID     = "Client-Id"
	HeaderClientSecret = "Client-Secret"
	HeaderRedirectURL  = "Redirect-URL"
	HeaderPSUDeviceID  = "PSU-Device-ID"
)

// Credentials заголовки одного запроса. Client-Id и Client-Secret отправляются всегда,
// даже пустыми; PSU-Device-ID только если задан.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	PSUDeviceID  string
}

// Response ответ API.
type Response struct {
	StatusCode int
	Body       []byte
}

// Get возвращает значение по пути gjson, например "bankPaymentMethod.endToEndId".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Client HTTP-клиент API платёжной инициации.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт Client. Пустой httpClient заменяется http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// InitiatePayment отправляет POST /pis/payment.
func (c *Client) InitiatePayment(ctx context.Context, creds Credentials, body any) (*Response, error) {
	const op = "verifier.InitiatePayment"
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pis/payment", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	setHeaders(req, creds)
	req.Header.Set(HeaderRedirectURL, creds.RedirectURL)

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// GetPayment отправляет GET /pis/payment/{id}.
func (c *Client) GetPayment(ctx context.Context, creds Credentials, id string) (*Response, error) {
	const op = "verifier.GetPayment"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pis/payment/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	setHeaders(req, creds)

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

func setHeaders(req *http.Request, creds Credentials) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderClientID, creds.ClientID)
	req.Header.Set(HeaderClientSecret, creds.ClientSecret)
	if creds.PSUDeviceID != "" {
		req.Header.Set(HeaderPSUDeviceID, creds.PSUDeviceID)
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
