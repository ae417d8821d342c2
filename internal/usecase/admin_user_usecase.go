package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminUserUsecase は管理者によるユーザー管理。
// 削除は物理削除ではなく停止（注文などの参照が残るため）。
type AdminUserUsecase struct {
	users  repo.UserRepository
	rtRepo repo.RefreshTokenRepository
}

func NewAdminUserUsecase(users repo.UserRepository, rtRepo repo.RefreshTokenRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, rtRepo: rtRepo}
}

type UserListOutput struct {
	Items []UserDTO `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

func (u *AdminUserUsecase) List(ctx context.Context, page, limit int) (UserListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]UserDTO, 0, len(users))
	for i := range users {
		items = append(items, toUserDTO(&users[i]))
	}
	return UserListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

type AdminCreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (u *AdminUserUsecase) Create(ctx context.Context, adminUserID int64, in AdminCreateUserInput) (UserDTO, error) {
	if adminUserID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	//email重複（レースはuniqueが守る）
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email already used")
	} else if err != repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         role,
		TokenVersion: 0,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email already used")
	}

	return toUserDTO(user), nil
}

type AdminUpdateUserInput struct {
	Name     *string
	Role     *string
	IsActive *bool
}

func (u *AdminUserUsecase) Update(ctx context.Context, adminUserID int64, targetUserID int64, in AdminUpdateUserInput) (UserDTO, error) {
	if adminUserID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	roleChanged := false
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "name required")
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		role := model.Role(*in.Role)
		if role != model.RoleUser && role != model.RoleAdmin {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		if adminUserID == targetUserID && role != model.RoleAdmin {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "cannot demote yourself")
		}
		roleChanged = user.Role != role
		user.Role = role
	}
	if in.IsActive != nil {
		if adminUserID == targetUserID && !*in.IsActive {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "cannot deactivate yourself")
		}
		user.IsActive = *in.IsActive
	}

	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//role変更は発行済みtokenのrole claimとズレるのでtoken_versionを上げて失効させる
	if roleChanged {
		if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		user.TokenVersion++
	}

	return toUserDTO(user), nil
}

// Delete は停止扱い。token_versionの更新とrefreshの全失効でセッションも落とす。
func (u *AdminUserUsecase) Delete(ctx context.Context, adminUserID int64, targetUserID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if adminUserID == targetUserID {
		return NewHTTPError(http.StatusBadRequest, "cannot delete yourself")
	}

	err := u.users.Deactivate(ctx, targetUserID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.rtRepo.RevokeAllByUserID(ctx, targetUserID, time.Now()); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
