package pis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pis-contract/internal/config"
)

const (
	testClientID     = "client-1"
	testClientSecret = "s3cret"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:       "local",
		PublicURL: "http://pis.test",
		Clients: []config.Client{
			{ClientID: testClientID, ClientSecret: testClientSecret, Name: "test"},
		},
		Storage: config.Storage{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "pis.db"),
		},
		HTTPServer:   config.HTTPServer{AddressHTTP: "127.0.0.1:0", TimeoutHTTP: 5 * time.Second},
		ConfirmToken: config.ConfirmToken{JWTSecretKey: "secret", TokenTTL: time.Minute},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := New(context.Background(), newTestConfig(t), newNoopLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(app.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = app.Close()
	})
	return srv
}

func initiatePayment(t *testing.T, srv *httptest.Server) map[string]any {
	t.Helper()
	body := `{"amount":0.01,"currencyCode":"EUR","description":"test","bankPaymentMethod":{
		"creditorName":"Padėk gatvės vaikams","endToEndId":"1234567890",
		"creditorAccount":{"iban":"LT177300010119765165"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/pis/payment", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", testClientID)
	req.Header.Set("Client-Secret", testClientSecret)
	req.Header.Set("Redirect-URL", "https://merchant.example/return")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func getPayment(t *testing.T, srv *httptest.Server, id string) map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/pis/payment/"+id, nil)
	require.NoError(t, err)
	req.Header.Set("Client-Id", testClientID)
	req.Header.Set("Client-Secret", testClientSecret)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestApp_ConfirmFlow(t *testing.T) {
	srv := newTestServer(t)

	created := initiatePayment(t, srv)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	link, err := url.Parse(created["confirmLink"].(string))
	require.NoError(t, err)
	assert.Equal(t, "pis.test", link.Host)
	assert.Equal(t, "/pis/payment/"+id+"/confirm", link.Path)

	noRedirect := *srv.Client()
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	t.Run("bad token", func(t *testing.T) {
		resp, err := noRedirect.Get(srv.URL + link.Path + "?token=forged")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		resp, err := noRedirect.Get(srv.URL + link.RequestURI())
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://merchant.example/return?paymentId="+id, resp.Header.Get("Location"))

		got := getPayment(t, srv, id)
		assert.Equal(t, "ACTC", got["bankStatus"])
		assert.Equal(t, "pending", got["statusGroup"])
	})
}

func TestApp_OperationalEndpoints(t *testing.T) {
	srv := newTestServer(t)
	initiatePayment(t, srv)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	metricsBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), `pis_payments_initiated_total{currency="EUR"} 1`)
	assert.Contains(t, string(metricsBody), "pis_http_request_duration_seconds_count")

	resp, err = srv.Client().Get(srv.URL + "/docs/doc.json")
	require.NoError(t, err)
	docBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(docBody), "/pis/payment/{id}")
}

func TestNew_InvalidDriver(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Driver = "oracle"

	_, err := New(context.Background(), cfg, newNoopLogger())
	require.Error(t, err)
}
