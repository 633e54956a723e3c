package main

import (
	"flag"
	"strconv"

	apiHttp "settler/internal/api/http"
	"settler/internal/controllers"
	mongoRepo "settler/internal/repository/mongo"
	"settler/internal/repository/postgres"
	"settler/internal/usecasees"

	"github.com/gofiber/fiber/v2"
	"github.com/ic2hrmk/promtail"
)

func main() {
	var app App
	var confFileName string

	flag.StringVar(&confFileName, "config", ".env", "")
	flag.Parse()

	app.Name = "settler"

	if err := app.loadConfig(confFileName); err != nil {
		panic(err)
	}

	app.initLogger()

	if err := app.initPromTail(); err != nil {
		panic(err)
	}

	if err := app.initTgBot(); err != nil {
		panic(err)
	}

	if err := app.InitDB(app.Config.DB); err != nil {
		panic(err)
	}

	if err := app.initMongo(); err != nil {
		panic(err)
	}

	app.InitMetrics()

	chatId, err := strconv.ParseInt(app.Config.TelegramChatID, 10, 64)
	if err != nil {
		panic(err)
	}

	orderRepo := postgres.NewOrderRepository(app.DB)
	notificationRepo := postgres.NewNotificationRepository(app.DB)
	accountRepo := mongoRepo.NewAccountRepository(app.Mongo, app.Config.Mongo.DBName)
	settingsRepo := mongoRepo.NewSettingsRepository(app.Mongo, app.Config.Mongo.DBName)

	if err := settingsRepo.SetDefault(); err != nil {
		panic(err)
	}

	tgmController := controllers.NewTgmController(app.TGM, chatId)

	notifier := usecasees.NewNotifierUseCase(
		notificationRepo,
		tgmController,
		app.Logger,
	)

	ledgerUseCase := usecasees.NewLedgerUseCase(
		accountRepo,
		app.Metrics.Order,
		app.Logger,
	)

	orderUseCase := usecasees.NewOrderUseCase(
		ledgerUseCase,
		orderRepo,
		notifier,
		app.Metrics.Order,
		app.Logger,
	)

	walletUseCase := usecasees.NewWalletUseCase(
		ledgerUseCase,
		notifier,
		app.Logger,
	)

	sweeperUseCase := usecasees.NewSweeperUseCase(
		orderUseCase,
		orderRepo,
		settingsRepo,
		app.Config.SweepInterval,
		app.Metrics.Order,
		app.Logger,
	)

	reminderUseCase := usecasees.NewReminderUseCase(
		orderRepo,
		settingsRepo,
		notifier,
		app.Config.ReminderInterval,
		app.Config.ReminderWindow,
		app.Metrics.Order,
		app.Logger,
	)

	tgmUseCase := usecasees.NewTgmUseCase(
		orderRepo,
		settingsRepo,
		tgmController,
		app.Logger,
	)

	if err := sweeperUseCase.Monitoring(); err != nil {
		app.Logger.Error(err)
	}

	if err := reminderUseCase.Monitoring(); err != nil {
		app.Logger.Error(err)
	}

	go tgmUseCase.CommandProcessor()

	f := fiber.New()

	middleware := apiHttp.NewMiddleware(app.Name, f)
	middleware.UseMetrics()

	apiHttp.RegisterHTTPEndpoints(f, orderUseCase, walletUseCase, settingsRepo, notificationRepo, app.Logger)

	app.PromTail.Logf(promtail.Info, "%s started", app.Name)

	if err := f.Listen(":" + app.Config.HTTPPort); err != nil {
		app.Logger.Fatal(err)
	}
}
