package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	//.envは無くてもいい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect db", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockAdjustment{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	gate := usecase.NewAccessGate(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	userUC := usecase.NewUserUsecase(gate, userRepo)
	productUC := usecase.NewProductUsecase(gate, txManager, productRepo)
	customerUC := usecase.NewCustomerUsecase(gate, txManager, customerRepo)
	orderUC := usecase.NewOrderUsecase(gate, txManager, customerRepo)
	reportUC := usecase.NewReportUsecase(gate, orderRepo)
	auditUC := usecase.NewAuditLogUsecase(gate, auditRepo)

	//Handler生成
	h := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		Users:     handler.NewUserHandler(userUC),
		Products:  handler.NewProductHandler(productUC),
		Customers: handler.NewCustomerHandler(customerUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Reports:   handler.NewReportHandler(reportUC),
		AuditLogs: handler.NewAuditLogHandler(auditUC),
	}

	//Server起動
	e := server.New(logger)
	server.RegisterRoutes(e, cfg, h)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
