// Package main запускает HTTP-сервер библиотеки.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/libib/internal/borrow"
	"github.com/mmeshcher/libib/internal/catalog"
	"github.com/mmeshcher/libib/internal/clock"
	"github.com/mmeshcher/libib/internal/config"
	"github.com/mmeshcher/libib/internal/handler"
	"github.com/mmeshcher/libib/internal/middleware"
	"github.com/mmeshcher/libib/internal/notification"
	"github.com/mmeshcher/libib/internal/payment"
	"github.com/mmeshcher/libib/internal/seed"
	"github.com/mmeshcher/libib/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	clk := clock.New()
	newID := seed.NewIDGenerator()
	data := seed.Load(clk.Now())
	rules := cfg.Rules()

	books := catalog.NewStore(data.Books)
	borrows := borrow.NewLedger(data.Borrows, books, rules, newID, clk)
	payments := payment.NewLedger(data.Payments, borrows, newID, clk)
	notifications := notification.NewSink(data.Notifications, newID, clk)

	svc := service.NewService(service.Deps{
		Catalog:       books,
		Borrows:       borrows,
		Payments:      payments,
		Notifications: notifications,
		Users:         data.Users,
		Rules:         rules,
		Clock:         clk,
		Logger:        logger,
	})

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Напоминания о сроках возврата; при нулевом интервале выключены
	g.Go(func() error {
		svc.StartDueReminders(ctx, cfg.ReminderInterval, cfg.DueSoonWindow)
		return nil
	})

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting library server",
			"addr", cfg.RunAddress,
			"books", len(data.Books),
			"loanDays", rules.LoanDays,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
