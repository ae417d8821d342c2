package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// カテゴリ/色/サイズ/仕入先の単純CRUD。
type CatalogUsecase struct {
	categoryRepo repo.CategoryRepository
	colorRepo    repo.ColorRepository
	sizeRepo     repo.SizeRepository
	supplierRepo repo.SupplierRepository
}

func NewCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	colorRepo repo.ColorRepository,
	sizeRepo repo.SizeRepository,
	supplierRepo repo.SupplierRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo: categoryRepo,
		colorRepo:    colorRepo,
		sizeRepo:     sizeRepo,
		supplierRepo: supplierRepo,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cs, nil
}

type CategoryInput struct {
	Name        string
	Description string
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, id int64, in CategoryInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	err := u.categoryRepo.Update(ctx, model.Category{ID: id, Name: strings.TrimSpace(in.Name), Description: in.Description})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.categoryRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) ListColors(ctx context.Context) ([]model.Color, error) {
	cs, err := u.colorRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cs, nil
}

func (u *CatalogUsecase) CreateColor(ctx context.Context, name string) (model.Color, error) {
	if strings.TrimSpace(name) == "" {
		return model.Color{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	c, err := u.colorRepo.Create(ctx, model.Color{Name: strings.TrimSpace(name)})
	if err != nil {
		return model.Color{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) UpdateColor(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	err := u.colorRepo.Update(ctx, model.Color{ID: id, Name: strings.TrimSpace(name)})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeleteColor(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.colorRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) ListSizes(ctx context.Context) ([]model.Size, error) {
	ss, err := u.sizeRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ss, nil
}

func (u *CatalogUsecase) CreateSize(ctx context.Context, name string) (model.Size, error) {
	if strings.TrimSpace(name) == "" {
		return model.Size{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	s, err := u.sizeRepo.Create(ctx, model.Size{Name: strings.TrimSpace(name)})
	if err != nil {
		return model.Size{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *CatalogUsecase) UpdateSize(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	err := u.sizeRepo.Update(ctx, model.Size{ID: id, Name: strings.TrimSpace(name)})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeleteSize(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.sizeRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	ss, err := u.supplierRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ss, nil
}

type SupplierInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

func (u *CatalogUsecase) CreateSupplier(ctx context.Context, in SupplierInput) (model.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	s, err := u.supplierRepo.Create(ctx, model.Supplier{
		Name:    strings.TrimSpace(in.Name),
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	})
	if err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *CatalogUsecase) UpdateSupplier(ctx context.Context, id int64, in SupplierInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	err := u.supplierRepo.Update(ctx, model.Supplier{
		ID:      id,
		Name:    strings.TrimSpace(in.Name),
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeleteSupplier(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.supplierRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
