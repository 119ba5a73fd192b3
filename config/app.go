package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-event-chat/config/common"
	"campus-event-chat/config/logger"
	"campus-event-chat/handler"
	"campus-event-chat/middleware"
	"campus-event-chat/realtime"
	"campus-event-chat/repository"
	"campus-event-chat/routes"
	"campus-event-chat/security"
	"campus-event-chat/usecase"
)

type AppConfig struct {
	*fiber.App
	*common.Config
	*validator.Validate
	*logrus.Logger
	AppLog *logger.AppLogger
	*DBConfig
	*security.JWT
	*middleware.Middleware
}

// Server is a fully wired application ready to listen.
type Server struct {
	App    *fiber.App
	DB     *DBConfig
	Config *common.Config
	Log    *logrus.Logger
}

func NewServer(cfg *common.Config) (*Server, error) {
	if len(cfg.GetJwtConfig().Secret) == 0 {
		return nil, errors.New("JWT_SECRET is not defined")
	}

	log := NewLogger(cfg)
	appLog := NewAppLogger(cfg)

	newDB, err := NewDB(cfg, appLog)
	if err != nil {
		return nil, err
	}

	app := NewFiber(cfg, log)
	newJWT := security.NewJWT(cfg)

	App(&AppConfig{
		App:        app,
		Config:     cfg,
		Validate:   NewValidator(),
		Logger:     log,
		AppLog:     appLog,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: middleware.NewMiddleware(newJWT, log),
	})

	return &Server{App: app, DB: newDB, Config: cfg, Log: log}, nil
}

func App(aC *AppConfig) {
	chatConfig := aC.Config.GetChatConfig()

	newUserRepository := repository.NewUserRepository()
	newEventRepository := repository.NewEventRepository()
	newRegistrationRepository := repository.NewRegistrationRepository()
	newMessageRepository := repository.NewMessageRepository()
	newNotificationRepository := repository.NewNotificationRepository()

	newAuthUsecase := usecase.NewAuthUsecase(newUserRepository, aC.Validate, aC.GetDB(), aC.Logger, aC.JWT)
	newUserUsecase := usecase.NewUserUsecase(newUserRepository, aC.GetDB(), aC.AppLog)
	newEventUsecase := usecase.NewEventUsecase(newEventRepository, newRegistrationRepository, newNotificationRepository, newUserRepository, aC.Validate, aC.GetDB(), aC.Logger)
	newParticipationUsecase := usecase.NewParticipationUsecase(newEventRepository, aC.GetDB(), aC.Logger)
	newMessageUsecase := usecase.NewMessageUsecase(newMessageRepository, aC.GetDB(), aC.Logger)
	newChatUsecase := usecase.NewChatUsecase(newEventRepository, newMessageRepository, newUserRepository, newParticipationUsecase, newMessageUsecase, aC.GetDB(), aC.Logger)
	newNotificationUsecase := usecase.NewNotificationUsecase(newNotificationRepository, aC.GetDB(), aC.Logger)

	router := realtime.NewRouter(realtime.NewHub(), newParticipationUsecase, newMessageUsecase, aC.Validate, chatConfig, aC.AppLog)

	route := routes.ConfigRoute{
		App:                 aC.App,
		Middleware:          aC.Middleware,
		AuthHandler:         handler.NewAuthHandler(newAuthUsecase, aC.Logger),
		UserHandler:         handler.NewUserHandler(newUserUsecase, aC.Logger),
		EventHandler:        handler.NewEventHandler(newEventUsecase, aC.Logger),
		NotificationHandler: handler.NewNotificationHandler(newNotificationUsecase, aC.Logger),
		ChatHandler:         handler.NewChatHandler(newChatUsecase, aC.Logger),
		WebSocketHandler:    handler.NewWebSocketHandler(router, aC.AppLog, chatConfig.SendBuffer),
	}
	route.GetRoute()
}
