package main

import (
	"context"
	"log"
	"time"

	"freshmarket/internal/config"
	"freshmarket/internal/domain/model"
	"freshmarket/internal/handler"
	"freshmarket/internal/infra/db"
	infraRepo "freshmarket/internal/infra/repository"
	"freshmarket/internal/server"
	"freshmarket/internal/translation"
	"freshmarket/internal/usecase"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	//.envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//初期adminが居なければ作る
	if err := seedAdmin(userRepo, cfg); err != nil {
		log.Fatal(err)
	}

	resolver := translation.NewResolver(translation.DefaultConfig())

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, orderItemRepo, resolver)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo, resolver)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, cfg.StaffStatusOverride)
	userUC := usecase.NewUserUsecase(userRepo)
	reportUC := usecase.NewReportUsecase(reportRepo, productRepo, inventoryRepo, auditRepo)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Order:    handler.NewOrderHandler(orderUC),
		User:     handler.NewUserHandler(userUC),
		Admin:    handler.NewAdminHandler(reportUC),
	}

	//Server起動
	if err := server.Start(cfg, h); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin は初期adminユーザーを1回だけ作る
func seedAdmin(users *infraRepo.UserGormRepository, cfg config.Config) error {
	ctx := context.Background()

	_, found, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        cfg.AdminEmail,
		FullName:     cfg.AdminName,
		Role:         model.RoleAdmin,
		IsActive:     true,
		PasswordHash: string(pwHash),
		CreatedAt:    time.Now(),
	}

	log.Printf("seeding admin user %s", cfg.AdminEmail)
	return users.Create(ctx, admin)
}
