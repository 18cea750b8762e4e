package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/config"
	"github.com/mandaladignite/enlivesalon/internal/database"
	"github.com/mandaladignite/enlivesalon/internal/handler"
	"github.com/mandaladignite/enlivesalon/internal/middleware"
	"github.com/mandaladignite/enlivesalon/internal/payment"
	"github.com/mandaladignite/enlivesalon/internal/queue"
	"github.com/mandaladignite/enlivesalon/internal/repository"
	"github.com/mandaladignite/enlivesalon/internal/router"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the public response cache.  A nil
	// client disables both middlewares rather than failing startup.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	services := repository.NewServiceRepo(db)
	stylists := repository.NewStylistRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	memberships := repository.NewMembershipRepo(db)
	gallery := repository.NewGalleryRepo(db)
	reviews := repository.NewReviewRepo(db)
	enquiries := repository.NewEnquiryRepo(db)
	addresses := repository.NewAddressRepo(db)

	gateway := payment.NewGateway(cfg.RazorpayKeyID, cfg.RazorpaySecret)
	guard := payment.NewGuard()

	auth := handler.NewAuthHandler(cfg, users, tokens)
	public := handler.NewPublicHandler(services, stylists, gallery, reviews, memberships)
	booking := handler.NewBookingHandler(appointments, services, stylists, memberships)
	account := handler.NewAccountHandler(addresses, reviews, services, stylists)
	membership := handler.NewMembershipHandler(cfg, memberships, gateway, guard)
	enquiry := handler.NewEnquiryHandler(enquiries)
	admin := handler.NewAdminHandler(cfg, services, stylists, appointments, memberships, gallery, reviews, enquiries)

	e := echo.New()
	e.HideBanner = true

	// Global token bucket in front of everything; the payment routes get a
	// second, much tighter bucket on top of it.
	rlCfg := config.LoadRateLimitConfig()
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	payCfg := rlCfg
	payCfg.Capacity = 5
	payCfg.RefillTokens = 1
	payCfg.RefillInterval = rlCfg.RefillInterval * 10
	payCfg.Prefix = rlCfg.Prefix + ":pay"
	paymentLimit := middleware.NewTokenBucket(payCfg, rdb)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, enquiry, cache)
	router.RegisterCustomer(e, booking, account, membership, cfg.JWTSecret, paymentLimit)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	// Gallery uploads are served straight from disk.
	e.Static("/uploads", cfg.UploadDir)

	// Consume appointment confirmations in the background; the consumer
	// reconnects on its own, so a broker outage never blocks the API.
	go func() {
		if err := queue.StartAppointmentConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
