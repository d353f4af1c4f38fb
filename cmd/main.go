package main

import (
	"log"
	"net/http"
	"time"

	"com.martdev.kitchenrack/config"
	authhandler "com.martdev.kitchenrack/internal/api/auth"
	categoryhandler "com.martdev.kitchenrack/internal/api/category"
	producthandler "com.martdev.kitchenrack/internal/api/product"
	"com.martdev.kitchenrack/internal/auth/jwt"
	authotp "com.martdev.kitchenrack/internal/auth/otp"
	"com.martdev.kitchenrack/internal/database"
	"com.martdev.kitchenrack/internal/env"
	authservice "com.martdev.kitchenrack/internal/service/auth"
	categoryservice "com.martdev.kitchenrack/internal/service/category"
	productservice "com.martdev.kitchenrack/internal/service/product"
	"com.martdev.kitchenrack/internal/sms"
	"com.martdev.kitchenrack/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	db, err := database.NewPostgresInstance(
		config.Config.DB.Addr,
		config.Config.DB.MaxOpenConns,
		config.Config.DB.MaxIdleConns,
		config.Config.DB.MaxIdleTime,
	)

	if err != nil {
		logger.Fatalf("db error - %s", err)
	}
	defer db.Close()
	logger.Info("data connection pool established")

	mux := getChiMux()

	jwtAuthenticator, err := jwt.NewJWTAuthenticator(
		config.Config.AuthConfig.Secret,
		config.Config.AuthConfig.Iss,
	)
	if err != nil {
		logger.Fatal(err)
	}

	storage := database.NewStorage(db)

	var sender sms.Sender
	switch config.Config.SmsConfig.Provider {
	case "twilio":
		sender = sms.NewTwilioSender(
			config.Config.SmsConfig.TwilioAccountSID,
			config.Config.SmsConfig.TwilioAuthToken,
			config.Config.SmsConfig.TwilioFrom,
			logger,
		)
	default:
		sender = sms.NewBulkSmsBdSender(
			config.Config.SmsConfig.BulkSmsBdAPIKey,
			config.Config.SmsConfig.BulkSmsBdSender,
			logger,
		)
	}

	otpIssuer := authotp.NewIssuer(config.Config.OtpConfig.ValidityMin)
	otpVerifier := authotp.NewVerifier(storage.Otps)

	authService := authservice.NewService(
		storage.Users, storage.Otps, otpIssuer, otpVerifier, jwtAuthenticator, sender, logger, config.Config,
	)
	authHandler := authhandler.NewHandler(authService, logger)

	categoryService := categoryservice.NewService(storage.Categories, logger)
	categoryHandler := categoryhandler.NewHandler(categoryService, logger)

	productService := productservice.NewService(storage.Products, logger)
	productHandler := producthandler.NewHandler(productService, logger)

	requireAuth := authhandler.RequireAuth(jwtAuthenticator, logger)
	requireAdmin := authhandler.RequireAdmin(logger)

	mux.Route("/v1", func(r chi.Router) {
		r.Get("/health", healthCheckHandler(logger))
		authHandler.RegisterRoutes(r)
		categoryHandler.RegisterRoutes(r, requireAuth, requireAdmin)
		productHandler.RegisterRoutes(r, requireAuth, requireAdmin)
	})

	logger.Fatal(runServer(mux))
}

func getChiMux() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{env.GetString("CORS_ALLOWED_ORIGIN", "http://127.0.0.1:4040")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	return r
}

func runServer(mux http.Handler) error {
	srv := &http.Server{
		Addr:         config.Config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	log.Printf("server has started at %s", config.Config.Addr)

	return srv.ListenAndServe()
}

func healthCheckHandler(logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status": "ok",
		}

		if err := util.SendResponse(w, http.StatusOK, "ok", data); err != nil {
			util.InternalServerErrorResponse(w, r, err, logger)
		}
	}
}
