// Команда pis-verifier прогоняет проверки контракта API платёжной инициации
// против сервиса по адресу API_BASE_URL и завершается с кодом 1 при любом провале.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/magabrotheeeer/pis-contract/internal/config"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/verifier"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env-file", ".env", "path to dotenv file")
	filter := flag.String("run", "", "run only cases whose name contains this substring")
	list := flag.Bool("list", false, "list case names and exit")
	flag.Parse()

	if *list {
		for _, c := range verifier.Cases() {
			fmt.Println(c.Name)
		}
		return 0
	}

	cfg, err := config.LoadVerifier(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := setupLogger(cfg.Env)

	fixture, err := verifier.LoadFixture(cfg.FixturePath)
	if err != nil {
		logger.Error("failed to load fixture", sl.Err(err))
		return 2
	}

	client := verifier.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
	env, err := verifier.NewEnv(client, *fixture, cfg.TestPaymentAmount)
	if err != nil {
		logger.Error("invalid environment", sl.Err(err))
		return 2
	}

	cases := verifier.Filter(verifier.Cases(), *filter)
	if len(cases) == 0 {
		logger.Error("no cases match filter", slog.String("run", *filter))
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("running contract checks",
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.Int("cases", len(cases)),
	)
	report := verifier.NewRunner(env, cases, logger).Run(ctx)

	logger.Info("done", slog.Int("passed", report.Passed()), slog.Int("failed", report.Failed()))
	if report.Failed() > 0 {
		return 1
	}
	return 0
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
