package bootstrap

import (
	"context"
	"log"

	"blog-admin-be/internal/config"
	"blog-admin-be/internal/controller"
	"blog-admin-be/internal/handler"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/pkg/mailer"
	"blog-admin-be/internal/repository/memory"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/internal/service"
	"blog-admin-be/internal/websocket"
	"blog-admin-be/pkg/events"
	pktNats "blog-admin-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	PostController    controller.IPostController
	ContentController controller.IContentController
	EditorController  controller.IEditorController
	AdminController   controller.IAdminController

	// Background services, started by cmd/rest
	ConsumerService service.IConsumerService
	LiveService     service.ILiveService

	// WebSockets
	LiveHandler  *handler.LiveHandler
	WebSocketHub *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
		)
	} else {
		log.Printf("[INFO] SMTP_HOST not set, welcome emails disabled")
	}

	// 2. Index queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure. NATS and redis are optional: without them the API
	// still serves requests, only the live feed goes quiet.
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	var eventSubscriber service.EventSubscriber
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		eventSubscriber = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	sessionRepo := memory.NewEditorSessionRepository(cfg.Editor.SessionTTL, cfg.Editor.CleanupPeriod)

	// 4. Services
	contentService := service.NewContentService(sysLogger, cfg.Content.ExcerptLength)
	publisherService := service.NewPublisherService(cfg.Content.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Content.IndexTopic,
		uowFactory,
		contentService,
		eventPublisher,
		sysLogger,
	)

	postService := service.NewPostService(uowFactory, contentService, publisherService, eventPublisher, sysLogger)
	commentService := service.NewCommentService(uowFactory, eventPublisher, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.App.TokenTTL, eventPublisher, sysLogger)
	userService := service.NewUserService(uowFactory, emailService, eventPublisher, sysLogger)
	adminService := service.NewAdminService(uowFactory, sysLogger)
	editorService := service.NewEditorService(
		uowFactory,
		sessionRepo,
		contentService,
		postService,
		wsHub,
		cfg.Editor.MaxSessionsPer,
		sysLogger,
	)
	liveService := service.NewLiveService(eventSubscriber, wsHub, sysLogger)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.UserController = controller.NewUserController(userService)
	c.PostController = controller.NewPostController(postService, commentService)
	c.ContentController = controller.NewContentController(contentService)
	c.EditorController = controller.NewEditorController(editorService)
	c.AdminController = controller.NewAdminController(adminService)

	c.ConsumerService = consumerService
	c.LiveService = liveService
	c.LiveHandler = handler.NewLiveHandler(wsHub, sysLogger)
	c.WebSocketHub = wsHub
	return c
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
