package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/VictorMordachini/conta-bancaria/pkg/configpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/messaging"

	"github.com/VictorMordachini/conta-bancaria/internal/accountdelivery"
	"github.com/VictorMordachini/conta-bancaria/internal/accountrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/accountservice"
	"github.com/VictorMordachini/conta-bancaria/internal/confirmationrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/confirmationservice"
	"github.com/VictorMordachini/conta-bancaria/internal/entryrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/feedelivery"
	"github.com/VictorMordachini/conta-bancaria/internal/feerepo"
	"github.com/VictorMordachini/conta-bancaria/internal/feeservice"
	"github.com/VictorMordachini/conta-bancaria/internal/holderrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/middleware"
	"github.com/VictorMordachini/conta-bancaria/internal/notification"
	"github.com/VictorMordachini/conta-bancaria/internal/notificationdelivery"
	"github.com/VictorMordachini/conta-bancaria/internal/operationdelivery"
	"github.com/VictorMordachini/conta-bancaria/internal/operationservice"
	"github.com/VictorMordachini/conta-bancaria/internal/paymentrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/paymentservice"
	"github.com/VictorMordachini/conta-bancaria/internal/pendingrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/pendingservice"
	"github.com/VictorMordachini/conta-bancaria/internal/settlement"
	"github.com/VictorMordachini/conta-bancaria/internal/sweeper"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)
	ctx := logger.WithContext(context.Background())

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	if err := dbpkg.RunMigrations(config.MigrationPath, config.DBSource); err != nil {
		logger.Fatal().Err(err).Msg("cannot run migrations")
	}

	bus, err := messaging.NewRedisBus(ctx, config.RedisAddress, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to message bus")
	}
	defer bus.Close()

	server, err := createServer(ctx, conn, bus, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(ctx context.Context, conn *sql.DB, bus *messaging.RedisBus, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	holderRepo := holderrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	confirmationRepo := confirmationrepo.NewRepoPGS(conn)
	pendingRepo := pendingrepo.NewRepoPGS(conn)
	feeRepo := feerepo.NewRepoPGS(conn)
	paymentRepo := paymentrepo.NewRepoPGS(conn)

	defaults, err := accountservice.DefaultsFromConfig(config)
	if err != nil {
		return nil, errors.New("cannot parse account defaults")
	}

	accountService := accountservice.New(accountRepo, entryRepo, holderRepo, defaults)
	feeService := feeservice.New(feeRepo)
	confirmationService := confirmationservice.New(confirmationRepo, bus, config.ConfirmationCodeLifetime)
	pendingService := pendingservice.New(pendingRepo)
	operationService := operationservice.New(accountService, confirmationService, pendingService, feeService)
	paymentService := paymentservice.New(accountRepo, paymentRepo, feeService)

	hub := notification.NewHub()

	executor := settlement.NewExecutor(confirmationService, pendingService, accountService, paymentService, hub)
	if err := executor.Subscribe(ctx, bus); err != nil {
		return nil, err
	}

	go sweeper.New(pendingService, config.SweeperInterval, config.PendencyMaxAge).Run(ctx)

	accountHandler := accountdelivery.NewHandler(accountService)
	operationHandler := operationdelivery.NewHandler(operationService)
	feeHandler := feedelivery.NewHandler(feeService)
	notificationHandler := notificationdelivery.NewHandler(hub)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/holders", accountHandler.CreateHolder)
	server.GET("/holders/:holderID/accounts", accountHandler.ListByHolder)

	server.POST("/accounts", accountHandler.Open)
	server.GET("/accounts/:number", accountHandler.Get)
	server.DELETE("/accounts/:number", accountHandler.Deactivate)
	server.GET("/accounts/:number/statement", accountHandler.Statement)
	server.POST("/accounts/:number/deposit", accountHandler.Deposit)
	server.PATCH("/accounts/:number/terms", accountHandler.UpdateTerms)
	server.POST("/accounts/:number/yield", accountHandler.ApplyYield)

	server.POST("/accounts/:number/withdrawals", operationHandler.RequestWithdrawal)
	server.POST("/accounts/:number/transfers", operationHandler.RequestTransfer)
	server.POST("/accounts/:number/payments", operationHandler.RequestPayment)

	server.POST("/fees", feeHandler.Create)
	server.GET("/fees", feeHandler.List)
	server.GET("/fees/:id", feeHandler.Get)
	server.PUT("/fees/:id", feeHandler.Update)
	server.DELETE("/fees/:id", feeHandler.Delete)

	server.GET("/notifications/:holderID", notificationHandler.Stream)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType); err != nil {
			return nil, errors.New("cannot register account type validator")
		}

		if err := v.RegisterValidation("decimal", accountdelivery.ValidDecimal); err != nil {
			return nil, errors.New("cannot register decimal validator")
		}
	}

	return server, nil
}
