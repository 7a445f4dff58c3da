package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"personalsite/internal/api"
	"personalsite/internal/auth"
	"personalsite/internal/config"
	"personalsite/internal/repository"
	"personalsite/internal/service"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	userRepo := repository.NewUserRepository(database)
	appointmentRepo := repository.NewAppointmentRepository(database)
	blogRepo := repository.NewBlogRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	adminRepo := repository.NewAdminRepository(database)
	jobRepo := repository.NewJobRepository(database)

	sender := service.NewSenderService(cfg.Hours.Location)
	stripeSvc := service.NewStripeService(cfg.StripeSecretKey)
	availabilitySvc := service.NewAvailabilityService(cfg.Hours, appointmentRepo)

	authSvc := service.NewAuthService(userRepo, sender, cfg.JWTSecret)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, paymentRepo, stripeSvc, sender, availabilitySvc, cfg.Hours)
	blogSvc := service.NewBlogService(blogRepo)
	commentSvc := service.NewCommentService(commentRepo, blogRepo, userRepo, rdb)
	paymentSvc := service.NewPaymentService(paymentRepo, appointmentRepo, stripeSvc, sender)
	adminSvc := service.NewAdminService(adminRepo)
	jobSvc := service.NewJobService(jobRepo, sender, cfg.Hours)

	authHandler := api.NewAuthHandler(authSvc)
	appointmentHandler := api.NewAppointmentHandler(appointmentSvc)
	blogHandler := api.NewBlogHandler(blogSvc)
	commentHandler := api.NewCommentHandler(commentSvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	adminHandler := api.NewAdminHandler(adminSvc, appointmentSvc, paymentSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/appointments/availability", appointmentHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/blog", blogHandler.List).Methods("GET")
	r.HandleFunc("/api/blog/{idOrSlug}", blogHandler.Get).Methods("GET")
	r.HandleFunc("/api/blog/{postID}/comments", commentHandler.List).Methods("GET")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(cfg.JWTSecret))
	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/appointments", appointmentHandler.Create).Methods("POST")
	authed.HandleFunc("/appointments", appointmentHandler.List).Methods("GET")
	authed.HandleFunc("/appointments/{id}", appointmentHandler.Get).Methods("GET")
	authed.HandleFunc("/appointments/{id}", appointmentHandler.Update).Methods("PUT")
	authed.HandleFunc("/appointments/{id}", appointmentHandler.Cancel).Methods("DELETE")
	authed.HandleFunc("/blog", blogHandler.Create).Methods("POST")
	authed.HandleFunc("/blog/{id}", blogHandler.Update).Methods("PUT")
	authed.HandleFunc("/blog/{id}", blogHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/comments", commentHandler.Create).Methods("POST")
	authed.HandleFunc("/comments/{id}", commentHandler.Update).Methods("PUT")
	authed.HandleFunc("/comments/{id}", commentHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/payments", paymentHandler.Create).Methods("POST")
	authed.HandleFunc("/payments/{id}", paymentHandler.Get).Methods("GET")
	authed.HandleFunc("/payments/{id}/confirm", paymentHandler.Confirm).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware(cfg.JWTSecret), auth.RequireAdmin)
	admin.HandleFunc("/appointments", adminHandler.ListAppointments).Methods("GET")
	admin.HandleFunc("/appointments/{id}", adminHandler.DeleteAppointment).Methods("DELETE")
	admin.HandleFunc("/payments", adminHandler.ListPayments).Methods("GET")
	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")

	c := cron.New(cron.WithLocation(cfg.Hours.Location))
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CompletePastAppointments(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("0 9 * * *", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@daily", func() {
		if _, err := jobSvc.PurgeStalePayments(24 * time.Hour); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{cfg.FrontendURL}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
