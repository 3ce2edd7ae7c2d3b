// hostelctl is a terminal client for the hostel-management backend: sign in
// as a student or warden, submit and review leaves, complaints and outpasses,
// and watch lists refresh on the same schedule the old web dashboards used.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"hostel-client/internal/api"
	"hostel-client/internal/config"
	"hostel-client/internal/guard"
	"hostel-client/internal/metrics"
	"hostel-client/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	app, err := buildApp(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	storage, err := buildStorage(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	client := api.NewClient(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithRateLimit(cfg.RequestsPerSecond, cfg.RequestBurst),
		api.WithMetrics(m),
		api.WithLogger(logger),
	)

	g, err := guard.New()
	if err != nil {
		return nil, err
	}

	return newApp(cfg, client, session.NewStore(client, storage, logger), g, m, logger), nil
}

func buildStorage(cfg *config.Config) (session.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return session.NewMemoryStorage(), nil
	case config.StorageRedis:
		return session.NewRedisStorage(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), ""), nil
	default:
		return session.NewSQLiteStorage(cfg.SQLitePath)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hostelctl <command> [flags]

session:
  login <student|warden> -user <id> -secret <password>
  logout
  whoami

student:
  dashboard
  leaves [-watch]
  apply-leave -type <t> -reason <r> -start <d> -end <d> -address <a>
  delete-leave -id <id> [-yes]
  complaints
  submit-complaint -category <c> -subject <s> -description <d>
  outpasses
  submit-outpass -destination <d> -purpose <p> -departure-date <d> -departure-time <t> -return-date <d> -return-time <t> -contact <c>

warden:
  stats
  students
  register-student -name <n> -roll <r> -reg <r> -room <r>
  all-leaves [-watch]
  set-leave-status -id <id> -current <s> -status <approved|rejected>
  all-complaints
  set-complaint-status -id <id> -current <s> -status <in-progress|resolved>
  all-outpasses
  set-outpass-status -id <id> -current <s> -status <Approved|Rejected>`)
}
