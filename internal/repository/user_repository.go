package repository

import (
	"context"

	"freshmarket/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)

	//メールからユーザーを1件取得する。いなければfound=false
	FindByEmail(ctx context.Context, email string) (model.User, bool, error)

	List(ctx context.Context, skip int, limit int) ([]model.User, error)
	Update(ctx context.Context, userID int64, fields map[string]interface{}) error
	Delete(ctx context.Context, userID int64) error
}
