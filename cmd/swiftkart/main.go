package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"swiftkart/internal/cart"
	"swiftkart/internal/catalog"
	"swiftkart/internal/config"
	"swiftkart/internal/delivery"
	"swiftkart/internal/http/handlers"
	"swiftkart/internal/kv"
	applog "swiftkart/internal/log"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	store, err := openKV(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	src, err := catalog.Load(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[catalog] %d products loaded", src.Len())

	dcfg, err := delivery.LoadConfig(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	pages := catalog.NewPaginator(src, cfg.PageSize)
	cartStore := cart.NewStore(store, cfg.CartKey)
	ticker := delivery.NewTicker()
	resolver := delivery.NewResolver(dcfg, ticker)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go ticker.Run(ctx)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(pages, cartStore, resolver, ticker)

	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)

	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/remove", deps.CartHandler.Remove)

	checkLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|delivery"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.delivery.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/delivery/check", checkLimiter, deps.DeliveryHandler.Check)
	api.Get("/delivery/countdown", deps.DeliveryHandler.Countdown)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	go func() {
		<-ctx.Done()
		ticker.Stop()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func openKV(cfg config.Config) (kv.Store, error) {
	switch cfg.KVBackend {
	case "redis":
		return kv.OpenRedis(cfg.RedisAddr, "swiftkart")
	case "sqlite":
		return kv.OpenSQLite(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
}
