package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) GetMe(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// 本人更新の許可リスト。Roleを渡すとエラーになる
type UpdateMeInput struct {
	FullName *string
	Phone    *string
	Address  *string
	Password *string
	IsActive *bool
	Role     *string
}

func (u *UserUsecase) UpdateMe(ctx context.Context, userID int64, in UpdateMeInput) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//自分で自分の役割は変えられない
	if in.Role != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "Changing your own role is not allowed")
	}

	fields := map[string]interface{}{}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "full_name required")
		}
		fields["full_name"] = name
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
		}
		pwHash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		fields["hashed_password"] = string(pwHash)
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		err := u.users.Update(ctx, userID, fields)
		if errors.Is(err, repo.ErrNotFound) {
			return UserDTO{}, NewHTTPError(http.StatusNotFound, "User not found")
		}
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// admin専用。ルートのガードと二重で守る
func (u *UserUsecase) ListUsers(ctx context.Context, actor Actor, skip int, limit int) ([]UserDTO, error) {
	if actor.Role != model.RoleAdmin {
		return nil, NewHTTPError(http.StatusForbidden, "Access denied")
	}
	if skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}
	if limit < 1 || limit > 1000 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	users, err := u.users.List(ctx, skip, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserDTO, 0, len(users))
	for _, user := range users {
		outs = append(outs, toUserDTO(user))
	}
	return outs, nil
}

// 本人かadminだけが見られる
func (u *UserUsecase) GetUser(ctx context.Context, actor Actor, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if actor.Role != model.RoleAdmin && actor.UserID != userID {
		return UserDTO{}, NewHTTPError(http.StatusForbidden, "Access denied")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// admin用の更新。こちらは役割変更も許す
type AdminUserUpdateInput struct {
	FullName *string
	Phone    *string
	Address  *string
	Password *string
	IsActive *bool
	Role     *string
}

func (u *UserUsecase) UpdateUser(ctx context.Context, actor Actor, userID int64, in AdminUserUpdateInput) (UserDTO, error) {
	if actor.Role != model.RoleAdmin {
		return UserDTO{}, NewHTTPError(http.StatusForbidden, "Access denied")
	}
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserDTO{}, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fields := map[string]interface{}{}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "full_name required")
		}
		fields["full_name"] = name
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
		}
		pwHash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		fields["hashed_password"] = string(pwHash)
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.Role != nil {
		role := model.Role(*in.Role)
		if !role.IsValid() {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		fields["role"] = role
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		err := u.users.Update(ctx, userID, fields)
		if errors.Is(err, repo.ErrNotFound) {
			return UserDTO{}, NewHTTPError(http.StatusNotFound, "User not found")
		}
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, actor Actor, userID int64) error {
	if actor.Role != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "Access denied")
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	//自分自身は消せない
	if actor.UserID == userID {
		return NewHTTPError(http.StatusBadRequest, "Cannot delete your own user account")
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
