package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"freshmarket/internal/domain/model"
	"freshmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateMe_RejectsRoleChange(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewUserUsecase(users)

	role := "admin"
	_, err := uc.UpdateMe(context.Background(), 7, usecase.UpdateMeInput{Role: &role})

	assertHTTPError(t, err, http.StatusBadRequest, "Changing your own role is not allowed")
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMe_HashesNewPassword(t *testing.T) {
	users := new(UserRepoMock)

	users.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(fields map[string]interface{}) bool {
		hash, ok := fields["hashed_password"].(string)
		return ok && hash != "" && hash != "new-password-123"
	})).Return(nil)
	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7, Email: "a@b.c"}, nil)

	uc := usecase.NewUserUsecase(users)

	password := "new-password-123"
	_, err := uc.UpdateMe(context.Background(), 7, usecase.UpdateMeInput{Password: &password})

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestGetUser_SelfOrAdminOnly(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7}, nil)

	uc := usecase.NewUserUsecase(users)

	//本人はOK
	_, err := uc.GetUser(context.Background(), usecase.Actor{UserID: 7, Role: model.RoleCustomer}, 7)
	assert.NoError(t, err)

	//adminもOK
	_, err = uc.GetUser(context.Background(), usecase.Actor{UserID: 1, Role: model.RoleAdmin}, 7)
	assert.NoError(t, err)

	//他人のcustomerはNG（staffも不可）
	_, err = uc.GetUser(context.Background(), usecase.Actor{UserID: 2, Role: model.RoleStaff}, 7)
	assertHTTPError(t, err, http.StatusForbidden, "Access denied")
}

func TestUpdateUser_AdminCanChangeRole(t *testing.T) {
	users := new(UserRepoMock)

	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7, Role: model.RoleCustomer}, nil).Once()
	users.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["role"] == model.RoleStaff
	})).Return(nil)
	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7, Role: model.RoleStaff}, nil)

	uc := usecase.NewUserUsecase(users)

	role := "staff"
	out, err := uc.UpdateUser(context.Background(), usecase.Actor{UserID: 1, Role: model.RoleAdmin}, 7, usecase.AdminUserUpdateInput{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, "staff", out.Role)
}

func TestUpdateUser_InvalidRole(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7}, nil)

	uc := usecase.NewUserUsecase(users)

	role := "superuser"
	_, err := uc.UpdateUser(context.Background(), usecase.Actor{UserID: 1, Role: model.RoleAdmin}, 7, usecase.AdminUserUpdateInput{Role: &role})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid role")
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewUserUsecase(users)

	err := uc.DeleteUser(context.Background(), usecase.Actor{UserID: 1, Role: model.RoleAdmin}, 1)

	assertHTTPError(t, err, http.StatusBadRequest, "Cannot delete your own user account")
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewUserUsecase(users)

	err := uc.DeleteUser(context.Background(), usecase.Actor{UserID: 2, Role: model.RoleStaff}, 7)
	assertHTTPError(t, err, http.StatusForbidden, "Access denied")
}

func TestDeleteUser_Success(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7}, nil)
	users.On("Delete", mock.Anything, int64(7)).Return(nil)

	uc := usecase.NewUserUsecase(users)

	err := uc.DeleteUser(context.Background(), usecase.Actor{UserID: 1, Role: model.RoleAdmin}, 7)
	assert.NoError(t, err)
	users.AssertExpectations(t)
}
