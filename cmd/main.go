package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/lingoverse/lingoverse-server/internal/config"
	"github.com/lingoverse/lingoverse-server/internal/db"
	"github.com/lingoverse/lingoverse-server/internal/handlers"
	"github.com/lingoverse/lingoverse-server/internal/middleware"
	"github.com/lingoverse/lingoverse-server/internal/services"
	"github.com/lingoverse/lingoverse-server/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	mongoDB, err := db.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	cols := mongoDB.Collections()

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	policy := handlers.StatusPolicy{Legacy: cfg.LegacyStatusCodes}
	tokens := services.NewTokenService(cfg.JWTSecret)
	payments := services.NewPaymentService(cfg.StripeSecretKey)
	enroller := services.NewEnrollmentService(
		services.NewEnrollmentStore(cols.Courses, cols.Cart, cols.Enrollments))

	authHandler := handlers.NewAuthHandler(tokens)
	userHandler := handlers.NewUserHandler(handlers.NewUserStore(cols.Users), policy)
	messageHandler := handlers.NewMessageHandler(cols.Messages)
	courseHandler := handlers.NewCourseHandler(cols.Courses, cols.PendingCourses)
	pendingHandler := handlers.NewPendingCourseHandler(cols.PendingCourses)
	mentorHandler := handlers.NewMentorHandler(handlers.NewMentorStore(cols.Mentors))
	registerHandler := handlers.NewRegisterHandler(handlers.NewRegistrationStore(cols.Registrations), policy)
	cartHandler := handlers.NewCartHandler(cols.Cart, policy)
	paymentHandler := handlers.NewPaymentHandler(payments)
	enrollmentHandler := handlers.NewEnrollmentHandler(cols.Enrollments, enroller, policy)

	authRequired := middleware.RequireAuth(cfg.JWTSecret)
	roleFinder := middleware.NewRoleFinder(cols.Users)
	adminOnly := middleware.RequireRole(roleFinder, "admin")
	mentorOnly := middleware.RequireRole(roleFinder, "mentor")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("LingoVerse Server Is Running!")
	})

	app.Post("/jwt", authHandler.IssueToken)

	app.Get("/users/:email", authRequired, userHandler.GetRole)
	app.Get("/users", authRequired, adminOnly, userHandler.List)
	app.Post("/users", userHandler.Create)
	app.Patch("/users/:id", authRequired, adminOnly, userHandler.UpdateRole)
	app.Delete("/users/:id", authRequired, adminOnly, userHandler.Delete)

	app.Post("/messages", messageHandler.Create)

	app.Get("/courses", courseHandler.List)
	app.Post("/courses/:id", authRequired, adminOnly, courseHandler.Promote)
	app.Put("/courses/:id", authRequired, adminOnly, courseHandler.Upsert)
	app.Delete("/courses/:id", authRequired, adminOnly, courseHandler.Delete)

	app.Get("/pendingCourse", authRequired, pendingHandler.List)
	app.Post("/pendingCourse", authRequired, mentorOnly, pendingHandler.Create)
	app.Delete("/pendingCourse/:id", authRequired, adminOnly, pendingHandler.Delete)

	app.Get("/mentors", mentorHandler.List)
	app.Put("/mentors", authRequired, mentorOnly, mentorHandler.Upsert)

	app.Post("/register", authRequired, registerHandler.Create)
	app.Get("/allRegister", authRequired, adminOnly, registerHandler.ListAll)
	app.Get("/register", authRequired, registerHandler.GetOwn)
	app.Put("/register/:id", authRequired, registerHandler.Upsert)

	app.Get("/courseCart", authRequired, cartHandler.ListOwn)
	app.Post("/courseCart", authRequired, cartHandler.Create)
	app.Delete("/courseCart/:id", authRequired, cartHandler.Delete)

	app.Post("/create-stripe-payment-intent", authRequired, paymentHandler.CreateIntent)

	app.Get("/enrolledStudents", authRequired, enrollmentHandler.ListOwn)
	app.Post("/enrolledStudents", authRequired, enrollmentHandler.Create)

	if cfg.MinioEndpoint != "" {
		images, err := storage.NewImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey)
		if err != nil {
			log.Fatalf("image storage: %v", err)
		}
		imageHandler := handlers.NewImageHandler(images)
		app.Post("/images", authRequired, mentorOnly, imageHandler.Upload)
	} else {
		log.Println("MINIO_ENDPOINT not set, image uploads disabled")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoDB.Close(ctx); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()

	log.Printf("LingoVerse Server is Running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
