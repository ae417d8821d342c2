package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	tx           repo.TransactionManager
	productRepo  repo.ProductRepository
	variantRepo  repo.VariantRepository
	categoryRepo repo.CategoryRepository
	colorRepo    repo.ColorRepository
	sizeRepo     repo.SizeRepository
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	variantRepo repo.VariantRepository,
	categoryRepo repo.CategoryRepository,
	colorRepo repo.ColorRepository,
	sizeRepo repo.SizeRepository,
) *ProductUsecase {
	return &ProductUsecase{
		tx:           tx,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
		colorRepo:    colorRepo,
		sizeRepo:     sizeRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	InStock    *bool
	Sort       string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", "new", "name_asc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		CategoryID: in.CategoryID,
		InStock:    in.InStock,
		Sort:       in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

type ProductDetailOutput struct {
	Product  model.Product          `json:"product"`
	Variants []model.ProductVariant `json:"variants"`
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	vs, err := u.variantRepo.ListByProductID(ctx, productID)
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductDetailOutput{Product: p, Variants: vs}, nil
}

func (u *ProductUsecase) ListVariants(ctx context.Context, productID *int64) ([]model.ProductVariant, error) {
	vs, err := u.variantRepo.List(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return vs, nil
}

func (u *ProductUsecase) GetVariant(ctx context.Context, variantID int64) (model.ProductVariant, error) {
	if variantID <= 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := u.variantRepo.FindByID(ctx, variantID)
	if err == repo.ErrNotFound {
		return model.ProductVariant{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return v, nil
}

type AdminCreateProductInput struct {
	CategoryID  int64
	Name        string
	Description string
	IsActive    bool
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in AdminCreateProductInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.CategoryID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return 0, NewHTTPError(http.StatusBadRequest, "category not found")
		}
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID int64, in AdminCreateProductInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type AdminCreateVariantInput struct {
	ProductID int64
	ColorID   int64
	SizeID    int64
	Price     int64
	Quantity  int64
}

// AdminCreateVariant はSKUの追加。
// 初期在庫は行の直書きではなく調整ログとして積む（台帳から履歴を再構成できるように）。
func (u *ProductUsecase) AdminCreateVariant(ctx context.Context, adminUserID int64, in AdminCreateVariantInput) (model.ProductVariant, error) {
	if adminUserID <= 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 || in.ColorID <= 0 || in.SizeID <= 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "product_id, color_id and size_id required")
	}
	if in.Price < 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity < 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "product not found")
		}
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.colorRepo.FindByID(ctx, in.ColorID); err != nil {
		if err == repo.ErrNotFound {
			return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "color not found")
		}
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.sizeRepo.FindByID(ctx, in.SizeID); err != nil {
		if err == repo.ErrNotFound {
			return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "size not found")
		}
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out model.ProductVariant

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		v, err := r.Variants().Create(ctx, model.ProductVariant{
			ProductID: in.ProductID,
			ColorID:   in.ColorID,
			SizeID:    in.SizeID,
			Price:     in.Price,
			Quantity:  0,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Quantity > 0 {
			v, _, err = applyStockMovement(ctx, r, stockMovement{
				Kind:      model.InventoryLogAdjustment,
				VariantID: v.ID,
				Delta:     in.Quantity,
				UserID:    &adminUserID,
				Note:      "initial stock",
			})
			if err != nil {
				return movementError(err)
			}
		}

		out = v
		return nil
	})

	if err != nil {
		return model.ProductVariant{}, err
	}
	return out, nil
}

type AdminUpdateVariantInput struct {
	ColorID int64
	SizeID  int64
	Price   int64
}

// 価格・色・サイズの変更のみ。quantityはこの経路では変えない。
func (u *ProductUsecase) AdminUpdateVariant(ctx context.Context, adminUserID int64, variantID int64, in AdminUpdateVariantInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if variantID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	v, err := u.variantRepo.FindByID(ctx, variantID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.ColorID > 0 {
		v.ColorID = in.ColorID
	}
	if in.SizeID > 0 {
		v.SizeID = in.SizeID
	}
	v.Price = in.Price

	if err := u.variantRepo.Update(ctx, v); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// AdminDeleteVariant はSKUの削除。
// 最後の在庫ありSKUが消えるとin_stockが変わるので、同一トランザクションで再計算する。
func (u *ProductUsecase) AdminDeleteVariant(ctx context.Context, adminUserID int64, variantID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if variantID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		v, err := r.Variants().FindByID(ctx, variantID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Variants().Delete(ctx, variantID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		refreshAvailability(ctx, r, v.ProductID)
		return nil
	})
}
