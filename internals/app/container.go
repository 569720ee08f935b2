package app

import (
	"context"
	"time"

	"pingdeck/config"
	middle "pingdeck/internals/middleware"
	"pingdeck/internals/modules/alert"
	"pingdeck/internals/modules/checker"
	"pingdeck/internals/modules/cleanup"
	"pingdeck/internals/modules/monitor"
	"pingdeck/internals/modules/notification"
	"pingdeck/internals/modules/subscription"
	"pingdeck/internals/modules/user"
	"pingdeck/internals/security"
	"pingdeck/pkg/httpclient"
	"pingdeck/pkg/mailer"
	"pingdeck/pkg/rabbitmq"
	"pingdeck/pkg/redisstore"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Container owns every long-lived dependency and hands the wired handlers
// to the router.
type Container struct {
	Cfg    *config.Config
	Logger *zerolog.Logger

	Pool       *pgxpool.Pool
	Redis      *redisstore.Client
	RabbitConn *amqp091.Connection

	emailPublisher *rabbitmq.Publisher
	emailConsumer  *rabbitmq.Consumer
	emailHandler   *notification.EmailJobHandler

	alertEvents  chan alert.Event
	alertService *alert.Service

	cleanupScheduler *cleanup.Scheduler

	AuthMW *middle.AuthMiddleware

	UserHandler          *user.Handler
	MonitorHandler       *monitor.Handler
	SubscriptionHandler  *subscription.Handler
	StripeWebhookHandler *subscription.StripeWebhookHandler
	PayPalWebhookHandler *subscription.PayPalWebhookHandler
	NotificationHandler  *notification.Handler
	AlertHandler         *alert.Handler
	CheckerHandler       *checker.Handler
}

func NewContainer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, pool *pgxpool.Pool) (*Container, error) {
	c := &Container{
		Cfg:    cfg,
		Logger: logger,
		Pool:   pool,
	}

	redisClient, err := redisstore.New(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	c.Redis = redisClient

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.EmailQueue)
	if err != nil {
		return nil, err
	}
	c.RabbitConn = rabbitConn

	c.emailPublisher, err = rabbitmq.NewPublisher(rabbitConn, cfg.RabbitMQ.EmailQueue)
	if err != nil {
		return nil, err
	}
	c.emailConsumer, err = rabbitmq.NewConsumer(rabbitConn, cfg.RabbitMQ.EmailQueue, cfg.RabbitMQ.WorkerCount)
	if err != nil {
		return nil, err
	}

	smtpMailer, err := mailer.New(cfg.SMTP)
	if err != nil {
		return nil, err
	}
	c.emailHandler = notification.NewEmailJobHandler(smtpMailer, logger)

	validate := validator.New()
	tokenSvc := security.NewTokenService(cfg.Auth)
	c.AuthMW = middle.NewAuthMiddleware(tokenSvc)

	httpClient := httpclient.New()

	// user
	userRepo := user.NewRepository(pool, logger)
	userSvc := user.NewService(userRepo, tokenSvc)
	c.UserHandler = user.NewHandler(userSvc, validate)

	// subscription
	subRepo := subscription.NewRepository(pool, logger)
	subSvc := subscription.NewService(subRepo)
	c.SubscriptionHandler = subscription.NewHandler(subSvc)
	c.StripeWebhookHandler = subscription.NewStripeWebhookHandler(subSvc, cfg.Stripe.WebhookSecret, logger)
	c.PayPalWebhookHandler = subscription.NewPayPalWebhookHandler(subSvc, cfg.PayPal, httpClient, logger)

	// monitor
	monitorRepo := monitor.NewRepository(pool, logger)
	monitorSvc := monitor.NewService(monitorRepo, subSvc, redisClient, logger)
	c.MonitorHandler = monitor.NewHandler(monitorSvc, validate)

	// notification
	notifRepo := notification.NewRepository(pool, logger)
	notifSvc := notification.NewService(notifRepo)
	c.NotificationHandler = notification.NewHandler(notifSvc, validate)

	var sms notification.SMSSender
	if cfg.Twilio != nil && cfg.Twilio.AccountSID != "" {
		sms = notification.NewTwilioSender(cfg.Twilio)
	}
	dispatcher := notification.NewDispatcher(
		notifRepo,
		c.emailPublisher,
		sms,
		notification.NewHTTPSenders(httpClient),
		logger,
	)

	// alert pipeline
	c.alertEvents = make(chan alert.Event, 256)
	alertRepo := alert.NewRepository(pool, logger)
	c.alertService = alert.NewService(
		alertRepo,
		notifSvc,
		dispatcher,
		userRepo,
		c.alertEvents,
		cfg.Checker.AlertWorkers,
		logger,
	)
	c.AlertHandler = alert.NewHandler(c.alertService)

	// checker
	checkerRepo := checker.NewRepository(pool, int(cfg.Checker.UptimeWindow), logger)
	prober := checker.NewProber(httpClient, cfg.Checker.ProbeTimeout)
	runner := checker.NewRunner(
		checkerRepo,
		prober,
		redisClient,
		c.alertEvents,
		cfg.Checker.Concurrency,
		cfg.Checker.SlowThresholdMs,
		logger,
	)
	c.CheckerHandler = checker.NewHandler(runner)

	// cleanup
	c.cleanupScheduler, err = cleanup.NewScheduler(cleanup.NewSweeper(pool, logger), logger)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Start launches the background workers: the alert worker pool, the email
// queue consumer and the daily cleanup job.
func (c *Container) Start(ctx context.Context) {
	c.alertService.Start(ctx)

	go func() {
		if err := c.emailConsumer.Consume(ctx, c.emailHandler); err != nil {
			c.Logger.Error().Err(err).Msg("email consumer stopped")
		}
	}()

	c.cleanupScheduler.Start()
}

// Shutdown drains workers and closes connections in dependency order.
func (c *Container) Shutdown(ctx context.Context) {
	close(c.alertEvents)
	c.alertService.Wait()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.emailConsumer.Shutdown(shutdownCtx); err != nil {
		c.Logger.Error().Err(err).Msg("email consumer shutdown failed")
	}

	if err := c.cleanupScheduler.Shutdown(); err != nil {
		c.Logger.Error().Err(err).Msg("cleanup scheduler shutdown failed")
	}

	if err := c.emailPublisher.Close(); err != nil {
		c.Logger.Error().Err(err).Msg("email publisher close failed")
	}
	if err := c.RabbitConn.Close(); err != nil {
		c.Logger.Error().Err(err).Msg("rabbitmq close failed")
	}
	if err := c.Redis.Close(); err != nil {
		c.Logger.Error().Err(err).Msg("redis close failed")
	}
	c.Pool.Close()
}
