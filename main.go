package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"mentorly/config"
	"mentorly/cron"
	"mentorly/database"
	availabilityRepoPkg "mentorly/database/repository/availability"
	bookingRepoPkg "mentorly/database/repository/booking"
	sessionRepoPkg "mentorly/database/repository/session"
	userRepoPkg "mentorly/database/repository/user"
	"mentorly/handlers"
	"mentorly/models"
	"mentorly/routes"
	"mentorly/services/availability"
	"mentorly/services/booking"
	"mentorly/services/calendar"
	"mentorly/services/meeting"
	"mentorly/services/notification"
	"mentorly/services/session"
	"mentorly/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	if mongoRepo, ok := bookingRepo.(*bookingRepoPkg.MongoBookingRepo); ok {
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
		}
	}

	// background task queue.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer taskClient.Close()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Users:  userRepo,
		Tasks:  taskClient,
		Logger: logger,
	}

	provisioners := meeting.NewRegistry()
	provisioners.Register(models.PlatformHostedVideo, &meeting.HostedVideoProvisioner{
		BaseURL: config.AppConfig.VideoAPIBaseURL,
		Tokens: &meeting.TokenProvider{
			TokenURL:     config.AppConfig.VideoOAuthTokenURL,
			AccountID:    config.AppConfig.VideoAccountID,
			ClientID:     config.AppConfig.VideoClientID,
			ClientSecret: config.AppConfig.VideoClientSecret,
			Cache:        utils.GetCacheClient(),
		},
	})
	provisioners.Register(models.PlatformGeneratedLink, &meeting.GeneratedLinkProvisioner{
		Domain: config.AppConfig.MeetLinkDomain,
	})

	calendarSync := &calendar.Synchronizer{
		Calendar: &calendar.GoogleCalendar{
			OAuth: &oauth2.Config{
				ClientID:     config.AppConfig.GoogleClientID,
				ClientSecret: config.AppConfig.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"https://www.googleapis.com/auth/calendar.events"},
			},
		},
		Notifier: notificationService,
		Logger:   logger,
	}

	availabilityService := &availability.DefaultService{
		Repo:   availabilityRepo,
		Logger: logger,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		UserRepo:     userRepo,
		SessionRepo:  sessionRepo,
		Availability: availabilityRepo,
		Provisioners: provisioners,
		Calendar:     calendarSync,
		Payments:     &booking.StripeVerifier{},
		Notifier:     notificationService,
		Logger:       logger,
	}

	sessionService := &session.DefaultService{
		Repo:     sessionRepo,
		UserRepo: userRepo,
		Logger:   logger,
	}

	handlers.BookingService = bookingService
	handlers.AvailabilityService = availabilityService
	handlers.SessionService = sessionService

	mailer := &notification.SMTPMailer{
		Addr: config.AppConfig.SMTPAddr,
		From: config.AppConfig.SMTPFrom,
	}
	cron.InitNotificationWorker(notificationService, mailer)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, userRepo)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
}
