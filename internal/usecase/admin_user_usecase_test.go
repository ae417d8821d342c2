package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminUserUC() (*usecase.AdminUserUsecase, *MockUserRepository, *MockRefreshTokenRepository) {
	users := new(MockUserRepository)
	rts := new(MockRefreshTokenRepository)
	return usecase.NewAdminUserUsecase(users, rts), users, rts
}

func TestAdminUserUsecase_Create_WithRole(t *testing.T) {
	ctx := context.Background()
	u, users, _ := newAdminUserUC()

	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(nil, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(usr *model.User) bool {
		return usr.Email == "staff@example.com" &&
			usr.Role == model.RoleAdmin &&
			usr.IsActive &&
			usr.PasswordHash != "" && usr.PasswordHash != "password123"
	})).Return(nil)

	out, err := u.Create(ctx, 1, usecase.AdminCreateUserInput{
		Name:     "佐藤花子",
		Email:    "staff@example.com",
		Password: "password123",
		Role:     "ADMIN",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ADMIN", out.Role)

	users.AssertExpectations(t)
}

func TestAdminUserUsecase_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	u, users, _ := newAdminUserUC()

	users.On("FindByEmail", mock.Anything, "dup@example.com").Return(&model.User{ID: 5, Email: "dup@example.com"}, nil)

	_, err := u.Create(ctx, 1, usecase.AdminCreateUserInput{
		Name:     "田中太郎",
		Email:    "dup@example.com",
		Password: "password123",
	})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// role変更は発行済みtokenのrole claimとズレるのでtoken_versionを上げる
func TestAdminUserUsecase_Update_RoleChangeBumpsTokenVersion(t *testing.T) {
	ctx := context.Background()
	u, users, _ := newAdminUserUC()

	users.On("FindByID", mock.Anything, int64(5)).Return(&model.User{
		ID: 5, Name: "佐藤花子", Email: "staff@example.com",
		Role: model.RoleUser, TokenVersion: 2, IsActive: true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(usr *model.User) bool {
		return usr.ID == 5 && usr.Role == model.RoleAdmin
	})).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, int64(5)).Return(nil)

	role := "ADMIN"
	out, err := u.Update(ctx, 1, 5, usecase.AdminUpdateUserInput{Role: &role})
	assert.NoError(t, err)
	assert.Equal(t, 3, out.TokenVersion)

	users.AssertExpectations(t)
}

func TestAdminUserUsecase_Update_CannotDemoteSelf(t *testing.T) {
	ctx := context.Background()
	u, users, _ := newAdminUserUC()

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID: 1, Role: model.RoleAdmin, IsActive: true,
	}, nil)

	role := "USER"
	_, err := u.Update(ctx, 1, 1, usecase.AdminUpdateUserInput{Role: &role})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// 削除は停止扱い。refreshも全失効してセッションを落とす
func TestAdminUserUsecase_Delete_DeactivatesAndRevokesSessions(t *testing.T) {
	ctx := context.Background()
	u, users, rts := newAdminUserUC()

	users.On("Deactivate", mock.Anything, int64(5)).Return(nil)
	rts.On("RevokeAllByUserID", mock.Anything, int64(5), mock.AnythingOfType("time.Time")).Return(nil)

	err := u.Delete(ctx, 1, 5)
	assert.NoError(t, err)

	users.AssertExpectations(t)
	rts.AssertExpectations(t)
}

func TestAdminUserUsecase_Delete_SelfRejected(t *testing.T) {
	ctx := context.Background()
	u, users, _ := newAdminUserUC()

	err := u.Delete(ctx, 1, 1)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	users.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}
