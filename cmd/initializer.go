package main

import (
	"database/sql"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"mariageBack/internal/config"
	"mariageBack/internal/handlers"
	"mariageBack/internal/repositories"
	"mariageBack/internal/services"
	"mariageBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokens *utils.Manager

	userRepo *repositories.UserRepository

	factureService *services.FactureService
	messageService *services.MessageService

	userHandler           *handlers.UserHandler
	coupleHandler         *handlers.CoupleHandler
	prestataireHandler    *handlers.PrestataireHandler
	availabilityHandler   *handlers.AvailabilityHandler
	billingConsentHandler *handlers.BillingConsentHandler
	devisHandler          *handlers.DevisHandler
	factureHandler        *handlers.FactureHandler
	ambassadorHandler     *handlers.AmbassadorHandler
	matchingHandler       *handlers.MatchingHandler
	reviewHandler         *handlers.ReviewHandler
	chatHandler           *handlers.ChatHandler
	messageHandler        *handlers.MessageHandler

	wsManager *WebSocketManager
}

func initializeApp(db *sql.DB, cache *redis.Client, fcm *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		return nil, err
	}

	var storage *utils.StorageClient
	if cfg.Storage.AccessKey != "" {
		storage, err = utils.NewStorageClient(
			cfg.Storage.Endpoint, cfg.Storage.Region, cfg.Storage.Bucket,
			cfg.Storage.AccessKey, cfg.Storage.SecretKey)
		if err != nil {
			return nil, err
		}
	}

	var ai *services.OpenAIClient
	if cfg.OpenAI.APIKey != "" {
		ai = services.NewOpenAIClient(&http.Client{}, cfg.OpenAI.APIKey)
	}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	coupleRepo := &repositories.CoupleRepository{DB: db}
	prestataireRepo := &repositories.PrestataireRepository{DB: db}
	availabilityRepo := &repositories.AvailabilityRepository{DB: db}
	consentRepo := &repositories.BillingConsentRepository{DB: db}
	devisRepo := &repositories.DevisRepository{DB: db}
	factureRepo := &repositories.FactureRepository{DB: db}
	ambassadorRepo := &repositories.AmbassadorRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	chatRepo := &repositories.ChatRepository{DB: db}
	messageRepo := &repositories.MessageRepository{DB: db}

	// Services
	notifier := &services.NotificationService{Client: fcm, UserRepo: userRepo}
	ambassadorService := &services.AmbassadorService{AmbassadorRepo: ambassadorRepo, PrestataireRepo: prestataireRepo}
	userService := &services.UserService{UserRepo: userRepo, Ambassador: ambassadorService, Tokens: tokens}
	coupleService := &services.CoupleService{CoupleRepo: coupleRepo}
	prestataireService := &services.PrestataireService{PrestataireRepo: prestataireRepo}
	availabilityService := &services.AvailabilityService{AvailabilityRepo: availabilityRepo, PrestataireRepo: prestataireRepo, Cache: cache}
	consentService := &services.BillingConsentService{ConsentRepo: consentRepo, CoupleRepo: coupleRepo, Notifier: notifier}
	devisService := &services.DevisService{DevisRepo: devisRepo, ConsentService: consentService, Notifier: notifier, CoupleRepo: coupleRepo}
	factureService := &services.FactureService{FactureRepo: factureRepo, DevisRepo: devisRepo, AmbassadorRepo: ambassadorRepo, PrestataireRepo: prestataireRepo}
	matchingService := &services.MatchingService{CoupleRepo: coupleRepo, PrestataireRepo: prestataireRepo, AI: ai, AIModel: cfg.OpenAI.Model}
	reviewService := &services.ReviewService{ReviewRepo: reviewRepo, PrestataireRepo: prestataireRepo}
	chatService := &services.ChatService{ChatRepo: chatRepo}
	messageService := &services.MessageService{MessageRepo: messageRepo, ChatRepo: chatRepo, Notifier: notifier}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	coupleHandler := &handlers.CoupleHandler{Service: coupleService}
	prestataireHandler := &handlers.PrestataireHandler{Service: prestataireService, Storage: storage}
	availabilityHandler := &handlers.AvailabilityHandler{Service: availabilityService, Prestataire: prestataireService}
	billingConsentHandler := &handlers.BillingConsentHandler{Service: consentService, Couple: coupleService, Prestataire: prestataireService}
	devisHandler := &handlers.DevisHandler{Service: devisService, Couple: coupleService, Prestataire: prestataireService}
	factureHandler := &handlers.FactureHandler{Service: factureService, Couple: coupleService, Prestataire: prestataireService}
	ambassadorHandler := &handlers.AmbassadorHandler{Service: ambassadorService, Prestataire: prestataireService}
	matchingHandler := &handlers.MatchingHandler{Service: matchingService}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService, Couple: coupleService}
	chatHandler := &handlers.ChatHandler{Service: chatService}
	messageHandler := &handlers.MessageHandler{Service: messageService}

	return &application{
		errorLog:              errorLog,
		infoLog:               infoLog,
		db:                    db,
		tokens:                tokens,
		userRepo:              userRepo,
		factureService:        factureService,
		messageService:        messageService,
		userHandler:           userHandler,
		coupleHandler:         coupleHandler,
		prestataireHandler:    prestataireHandler,
		availabilityHandler:   availabilityHandler,
		billingConsentHandler: billingConsentHandler,
		devisHandler:          devisHandler,
		factureHandler:        factureHandler,
		ambassadorHandler:     ambassadorHandler,
		matchingHandler:       matchingHandler,
		reviewHandler:         reviewHandler,
		chatHandler:           chatHandler,
		messageHandler:        messageHandler,
	}, nil
}
