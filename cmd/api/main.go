package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル用（無くてもよい）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Color{},
		&model.Size{},
		&model.Supplier{},
		&model.Product{},
		&model.ProductVariant{},
		&model.InventoryLog{},
		&model.Receipt{},
		&model.ReceiptItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.ReturnRequest{},
		&model.Cart{},
		&model.CartItem{},
		&model.ImageProduct{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	variantRepo := infraRepo.NewVariantGormRepository(gormDB)
	logRepo := infraRepo.NewInventoryLogGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	colorRepo := infraRepo.NewColorGormRepository(gormDB)
	sizeRepo := infraRepo.NewSizeGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	imageRepo := infraRepo.NewImageProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(txManager, productRepo, variantRepo, categoryRepo, colorRepo, sizeRepo)
	inventoryUC := usecase.NewInventoryUsecase(txManager, logRepo, productRepo)
	receiptUC := usecase.NewReceiptUsecase(txManager, supplierRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	returnUC := usecase.NewReturnUsecase(txManager)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, variantRepo, productRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, colorRepo, sizeRepo, supplierRepo)
	imageUC := usecase.NewImageUsecase(imageRepo, variantRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, rtRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Image:        handler.NewImageHandler(imageUC),
		Inventory:    handler.NewInventoryHandler(inventoryUC),
		Receipt:      handler.NewReceiptHandler(receiptUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		Return:       handler.NewReturnHandler(returnUC),
		Cart:         handler.NewCartHandler(cartUC),
		Catalog:      handler.NewCatalogHandler(catalogUC),
	}

	//Server起動
	e := server.New(cfg)
	server.RegisterRoutes(e, cfg, userRepo, handlers)

	if err := server.Start(e, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
