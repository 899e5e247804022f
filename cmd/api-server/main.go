package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/go-co-op/gocron"

	"github.com/wingbank/appconfig/internal/config"
	"github.com/wingbank/appconfig/internal/logger"
	"github.com/wingbank/appconfig/internal/server"
	"github.com/wingbank/appconfig/pkg/util"
)

func main() {
	dsn := flag.String("dsn", "", "database DSN")
	driver := flag.String("driver", "mysql", "database driver")
	tblPrefix := flag.String("table-prefix", util.GetEnv("TABLE_PREFIX", "wingcfg_"), "table prefix (default wingcfg_)")
	redisDSN := flag.String("redis", util.GetEnv("REDIS_DSN", ""), "redis DSN for the mobile payload cache")
	addr := flag.String("addr", ":8080", "listen address")
	openapi := flag.String("openapi", "", "write OpenAPI JSON and exit")
	flag.Parse()

	logger.Set(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	driverProvided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "driver" {
			driverProvided = true
		}
	})

	if *dsn != "" {
		if detected, err := util.DetectDriver(*dsn); err != nil {
			if !driverProvided || *driver == "" {
				logger.L.Error("detect driver", "dsn", *dsn, "err", err)
				os.Exit(1)
			}
		} else {
			if !driverProvided || *driver == "" {
				*driver = detected
			} else if detected != "" && *driver != detected {
				logger.L.Error("driver mismatch", "driver", *driver, "dsn", *dsn, "expected", detected)
				os.Exit(1)
			}
		}
	}

	var db *sql.DB
	var err error
	if *dsn != "" {
		db, err = sql.Open(*driver, *dsn)
		if err != nil {
			logger.L.Error("db open", "err", err)
			os.Exit(1)
		}
		dialect := util.DialectFromDriver(*driver)
		if err := config.CheckPrefix(context.Background(), db, dialect, *tblPrefix); err != nil {
			logger.L.Error("prefix check", "err", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	dbCfg := server.DBConfig{Driver: *driver, DSN: *dsn, TablePrefix: *tblPrefix, RedisDSN: *redisDSN}
	api, rt := server.New(db, dbCfg)

	if db != nil {
		// keep the mobile translation cache warm across its TTL
		s := gocron.NewScheduler(time.UTC)
		if _, err := s.Every(30).Minutes().Do(func() {
			ctx := context.Background()
			langs := rt.Langs.Snapshot(ctx)
			codes := make([]string, 0, len(langs))
			for _, l := range langs {
				codes = append(codes, l.Code)
			}
			rt.Mobile.WarmTranslations(ctx, codes)
		}); err != nil {
			logger.L.Error("schedule cache warm", "err", err)
		}
		s.StartAsync()
	}

	if *openapi != "" {
		data, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
		if err != nil {
			logger.L.Error("marshal openapi", "err", err)
			os.Exit(1)
		}
		p := filepath.Clean(*openapi)
		if err := os.WriteFile(p, data, 0o600); err != nil {
			logger.L.Error("write openapi", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.L.Info("listening", "addr", *addr)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.Adapter(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-stop.Done()
		ctx, c := context.WithTimeout(context.Background(), 10*time.Second)
		defer c()
		if err := srv.Shutdown(ctx); err != nil {
			logger.L.Error("shutdown", "err", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("server error", "err", err)
		os.Exit(1)
	}
}
