package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 返品申請のHTTP。申請は公開、審査はadmin。
type ReturnHandler struct {
	uc *usecase.ReturnUsecase
}

// DI
func NewReturnHandler(uc *usecase.ReturnUsecase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

type ReturnCreateRequest struct {
	OrderID     int64  `json:"order_id"`
	VariantID   int64  `json:"variant_id"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by"`
}

type ReturnReviewRequest struct {
	Status    *string `json:"status"`
	AdminNote *string `json:"admin_note"`
}

func (h *ReturnHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	//申請はゲストでも可。トークンがあればuser_idを拾う
	e.POST("/returns", h.create, middleware.OptionalAuthJWT(cfg))

	g := e.Group("/admin/returns")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.review)
}

func (h *ReturnHandler) create(c echo.Context) error {
	var req ReturnCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	var userID *int64
	if id, ok := getUserIDFromContext(c); ok {
		userID = &id
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateReturnInput{
		OrderID:     req.OrderID,
		VariantID:   req.VariantID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ReturnHandler) list(c echo.Context) error {
	in := usecase.ListReturnsInput{Page: 1, Limit: 20}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		in.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		in.Limit = l
	}
	if v := c.QueryParam("status"); v != "" {
		s := v
		in.Status = &s
	}
	if v := c.QueryParam("order_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order_id"})
		}
		in.OrderID = &x
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReturnHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReturnHandler) review(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ReturnReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Review(c.Request().Context(), adminID, id, usecase.ReviewReturnInput{
		Status:    req.Status,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
