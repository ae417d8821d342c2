package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers はルーティングに必要なハンドラ一式。
type Handlers struct {
	Auth         *handler.AuthHandler
	AdminUser    *handler.AdminUserHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Image        *handler.ImageHandler
	Inventory    *handler.InventoryHandler
	Receipt      *handler.ReceiptHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
	Return       *handler.ReturnHandler
	Cart         *handler.CartHandler
	Catalog      *handler.CatalogHandler
}

// RegisterRoutes は全ルートを登録する。
func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg, userRepo)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, cfg, userRepo)
	h.Image.RegisterRoutes(e, cfg, userRepo)
	h.Inventory.RegisterRoutes(e, cfg, userRepo)
	h.Receipt.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.Return.RegisterRoutes(e, cfg, userRepo)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Catalog.RegisterRoutes(e, cfg, userRepo)
}
