package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"psycenter/internal/config"
	"psycenter/internal/database"
	"psycenter/internal/middleware"
	"psycenter/internal/modules/appointment"
	"psycenter/internal/modules/auth"
	"psycenter/internal/modules/notify"
	"psycenter/internal/modules/psychologist"
	jwtsvc "psycenter/internal/pkg/jwt"
	"psycenter/internal/pkg/response"
	"psycenter/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	appointmentRepo := repository.NewAppointmentRepository(db)
	psychologistRepo := repository.NewPsychologistRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	// Каналы уведомлений опциональны: без токена/SMTP сервис работает,
	// просто молчит.
	var ops notify.OpsChannel
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramChannel(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("main: telegram disabled, bot init failed: %v", err)
		} else {
			ops = tg
		}
	} else {
		log.Println("main: telegram disabled, TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID not set")
	}

	var mailer notify.Mailer
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSecure, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	} else {
		log.Println("main: email disabled, SMTP_HOST not set")
	}

	dispatcher := notify.NewDispatcher(ops, mailer, cfg.FrontendURL)
	notifyHandler := notify.NewHandler(dispatcher)

	authService := auth.NewService(adminRepo, j)
	authHandler := auth.NewHandler(authService)

	appointmentService := appointment.NewService(appointmentRepo, psychologistRepo, dispatcher)
	appointmentHandler := appointment.NewHandler(appointmentService)

	psychologistHandler := psychologist.NewHandler(psychologistRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	admin := r.Group("/admin")
	{
		authHandler.RegisterPublicRoutes(admin)

		protected := admin.Group("/")
		protected.Use(middleware.AuthRequired(j))
		authHandler.RegisterProtectedRoutes(protected)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)

	api := r.Group("/api")
	api.Use(limiter.Middleware())
	{
		api.GET("/health", func(c *gin.Context) {
			response.Success(c, 200, gin.H{"status": "ok"})
		})

		appointmentHandler.RegisterPublicRoutes(api)
		psychologistHandler.RegisterRoutes(api)
		notifyHandler.RegisterSendRoute(api)

		bulk := api.Group("/")
		bulk.Use(middleware.APIKeyRequired(cfg.AdminAPIKey))
		notifyHandler.RegisterBulkRoute(bulk)

		staff := api.Group("/")
		staff.Use(middleware.AuthRequired(j))
		appointmentHandler.RegisterAdminRoutes(staff)
	}

	addr := cfg.Host + ":" + cfg.Port
	log.Println("main: listening on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
