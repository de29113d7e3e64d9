package verifier

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/magabrotheeeer/pis-contract/internal/app/pis"
	"github.com/magabrotheeeer/pis-contract/internal/config"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// ContractSuite прогоняет проверки контракта против сервиса, поднятого в процессе.
type ContractSuite struct {
	suite.Suite
	app     *pis.App
	srv     *httptest.Server
	env     *Env
	fixture Fixture
}

func TestContractSuite(t *testing.T) {
	suite.Run(t, new(ContractSuite))
}

func (s *ContractSuite) SetupSuite() {
	s.fixture = Fixture{
		ClientID:     "demo-client",
		ClientSecret: "demo-secret",
		RedirectURL:  "https://merchant.example/return",
		PSUDeviceID:  "psu-device-1",
	}
	cfg := &config.Config{
		Env:       "local",
		PublicURL: "http://pis.test",
		Clients: []config.Client{
			{ClientID: s.fixture.ClientID, ClientSecret: s.fixture.ClientSecret, Name: "demo"},
			{ClientID: "other-client", ClientSecret: "other-secret", Name: "other"},
		},
		Storage: config.Storage{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(s.T().TempDir(), "pis.db"),
		},
		HTTPServer:   config.HTTPServer{TimeoutHTTP: 5 * time.Second},
		ConfirmToken: config.ConfirmToken{JWTSecretKey: "contract-secret", TokenTTL: time.Minute},
	}

	app, err := pis.New(context.Background(), cfg, newNoopLogger())
	s.Require().NoError(err)
	s.app = app
	s.srv = httptest.NewServer(app.Handler())

	s.env, err = NewEnv(NewClient(s.srv.URL, s.srv.Client()), s.fixture, "0.01")
	s.Require().NoError(err)
}

func (s *ContractSuite) TearDownSuite() {
	s.srv.Close()
	s.Require().NoError(s.app.Close())
}

func (s *ContractSuite) TestCases() {
	for _, c := range Cases() {
		s.Run(c.Name, func() {
			s.Require().NoError(c.Run(context.Background(), s.env))
		})
	}
}

func (s *ContractSuite) TestRunnerReport() {
	report := NewRunner(s.env, Cases(), newNoopLogger()).Run(context.Background())

	s.Len(report.Results, len(Cases()))
	s.Zero(report.Failed())
	s.Equal(len(Cases()), report.Passed())
}

func (s *ContractSuite) TestForeignClientCannotRead() {
	ctx := context.Background()
	created, err := s.env.Client.InitiatePayment(ctx, s.fixture.Credentials(), s.env.referenceBody())
	s.Require().NoError(err)
	s.Require().NoError(That(created).Status(http.StatusOK).Err())

	other := Credentials{ClientID: "other-client", ClientSecret: "other-secret"}
	resp, err := s.env.Client.GetPayment(ctx, other, created.Get("id").String())
	s.Require().NoError(err)
	s.NoError(That(resp).Status(http.StatusNotFound).Equal("error.name", "PaymentNotFound").Err())
}

func (s *ContractSuite) TestUnknownPaymentIsNotFound() {
	resp, err := s.env.Client.GetPayment(context.Background(), s.fixture.Credentials(),
		"00000000-0000-4000-8000-000000000000")
	s.Require().NoError(err)
	s.NoError(That(resp).Status(http.StatusNotFound).Err())
}

func (s *ContractSuite) TestReadRequiresCredentials() {
	creds := s.fixture.Credentials()
	creds.ClientSecret = ""
	resp, err := s.env.Client.GetPayment(context.Background(), creds, "00000000-0000-4000-8000-000000000000")
	s.Require().NoError(err)
	s.NoError(That(resp).Status(http.StatusUnauthorized).Err())
}

func (s *ContractSuite) TestAmountAsNumericString() {
	resp, err := s.env.Client.InitiatePayment(context.Background(), s.fixture.Credentials(), PaymentBody("0.50"))
	s.Require().NoError(err)
	s.NoError(That(resp).Status(http.StatusOK).Err())
}
