package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/pandukaz/debtbook/internal/category"
	categoryStore "github.com/pandukaz/debtbook/internal/category/store"
	"github.com/pandukaz/debtbook/internal/config"
	"github.com/pandukaz/debtbook/internal/contact"
	contactStore "github.com/pandukaz/debtbook/internal/contact/store"
	"github.com/pandukaz/debtbook/internal/database"
	"github.com/pandukaz/debtbook/internal/export"
	debtbookHttp "github.com/pandukaz/debtbook/internal/http"
	authHandler "github.com/pandukaz/debtbook/internal/http/auth"
	categoryHandler "github.com/pandukaz/debtbook/internal/http/category"
	contactHandler "github.com/pandukaz/debtbook/internal/http/contact"
	exportHandler "github.com/pandukaz/debtbook/internal/http/export"
	txHandler "github.com/pandukaz/debtbook/internal/http/ledger"
	"github.com/pandukaz/debtbook/internal/ledger"
	ledgerStore "github.com/pandukaz/debtbook/internal/ledger/store"
	"github.com/pandukaz/debtbook/internal/session"
	"github.com/pandukaz/debtbook/internal/user"
	userStore "github.com/pandukaz/debtbook/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DB.MigrationsDir); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer redisClient.Close()

	var (
		sessions        = session.NewManager([]byte(cfg.Session.Secret), cfg.Session.TTL, session.NewRedisStore(redisClient))
		userService     = user.NewService(userStore.New(db))
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		contactService  = contact.NewService(contactStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		exportService   = export.NewService(ledgerService, contactService)
	)

	var (
		authH     = authHandler.NewHandler(userService, sessions)
		txH       = txHandler.NewHandler(ledgerService)
		contactH  = contactHandler.NewHandler(contactService)
		categoryH = categoryHandler.NewHandler(categoryService)
		exportH   = exportHandler.NewHandler(exportService)
	)

	router := debtbookHttp.New(sessions, cfg.App.AllowedOrigins, authH, txH, contactH, categoryH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
