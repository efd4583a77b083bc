package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"
)

// 認証済みの呼び出し元。roleはミドルウェアが検証済み
type Actor struct {
	UserID int64
	Role   model.Role
}

type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository

	//trueならスタッフのステータス変更は遷移チェックを通らない
	//（既存運用の挙動。falseで状態機械を強制できる）
	staffStatusOverride bool
}

// DI。監査ログはトランザクション経由で書くのでtxに含まれる
func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	staffStatusOverride bool,
) *OrderUsecase {
	return &OrderUsecase{
		tx:                  tx,
		orderRepo:           orderRepo,
		orderItemRepo:       orderItemRepo,
		staffStatusOverride: staffStatusOverride,
	}
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	ShippingAddress string
	ContactPhone    string
	Items           []OrderItemInput
}

type OrderItemOutput struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ProductName string  `json:"product_name"`
	ProductUnit string  `json:"product_unit"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	Status          string            `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	ContactPhone    string            `json:"contact_phone"`
	TotalAmount     float64           `json:"total_amount"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// 金額は小数2桁に丸める（四捨五入）
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// 注文確定。在庫チェック→減算→注文＋明細作成を1トランザクションで行う。
// 途中で失敗したら在庫減算も注文も残らない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Order must contain at least one item")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "contact_phone required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be positive")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total float64

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound,
					fmt.Sprintf("Product with ID %d not found", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Product %s is not available", p.Name))
			}
			if p.StockQuantity < it.Quantity {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Not enough stock for %s. Available: %d", p.Name, p.StockQuantity))
			}

			//条件付きUPDATE。同時注文で先を越されたらここで弾かれる
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Not enough stock for %s. Available: %d", p.Name, p.StockQuantity))
			}

			//現在価格・名前・単位のスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				UnitPrice:   p.Price,
				ProductName: p.Name,
				ProductUnit: string(p.Unit),
			})

			total += p.Price * float64(it.Quantity)
		}

		total = roundPrice(total)

		now := time.Now()
		order := model.Order{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			ContactPhone:    strings.TrimSpace(in.ContactPhone),
			TotalAmount:     total,
			CreatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		for i := range orderItems {
			orderItems[i].OrderID = orderID
		}
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文一覧。customerは自分の注文だけ、staff/adminは全件
func (u *OrderUsecase) ListOrders(ctx context.Context, actor Actor, skip int, limit int) ([]OrderOutput, error) {
	if actor.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}
	if limit < 1 || limit > 1000 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var orders []model.Order
	var err error

	if actor.Role.IsStaff() {
		orders, err = u.orderRepo.ListAll(ctx, skip, limit)
	} else {
		orders, err = u.orderRepo.ListByUserID(ctx, actor.UserID, skip, limit)
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//customerは他人の注文を見られない
	if !actor.Role.IsStaff() && o.UserID != actor.UserID {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "Not authorized to access this order")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(o, items), nil
}

// 許可リスト方式の更新入力。customerはStatus以外を渡しても無視される
type OrderUpdateInput struct {
	Status          *string
	ShippingAddress *string
	ContactPhone    *string
}

func (u *OrderUsecase) UpdateOrder(ctx context.Context, actor Actor, orderID int64, in OrderUpdateInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fields := map[string]interface{}{}
	var statusChanged bool
	var newStatus model.OrderStatus

	if actor.Role.IsStaff() {
		if in.Status != nil {
			newStatus = model.OrderStatus(*in.Status)
			if !newStatus.IsValid() {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
			}
			//ポリシー次第で状態機械を強制する
			if !u.staffStatusOverride && newStatus != o.Status && !o.Status.CanTransitionTo(newStatus) {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Cannot change order status from %s to %s", o.Status, newStatus))
			}
			fields["status"] = newStatus
			statusChanged = newStatus != o.Status
		}
		if in.ShippingAddress != nil {
			fields["shipping_address"] = *in.ShippingAddress
		}
		if in.ContactPhone != nil {
			fields["contact_phone"] = *in.ContactPhone
		}
	} else {
		//customerは自分のpending注文のキャンセルだけ
		if o.UserID != actor.UserID {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, "Not authorized to modify this order")
		}
		if in.Status != nil {
			newStatus = model.OrderStatus(*in.Status)
			if newStatus != model.OrderStatusCancelled {
				return OrderOutput{}, NewHTTPError(http.StatusForbidden,
					"Not authorized to change order status to anything other than cancelled")
			}
			if o.Status != model.OrderStatusPending {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest,
					"Only pending orders can be cancelled")
			}
			fields["status"] = newStatus
			statusChanged = true
		}
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()

		//更新と監査ログは同一トランザクション。
		//監査ログが書けなければステータス変更ごと巻き戻す。
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			err := r.Orders().Update(ctx, orderID, fields)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//スタッフのステータス変更は監査ログに残す
			if statusChanged && actor.Role.IsStaff() {
				if err := r.AuditLogs().Create(ctx, model.AuditLog{
					ActorUserID:  actor.UserID,
					Action:       model.AuditActionUpdateOrderStatus,
					ResourceType: model.AuditResourceOrder,
					ResourceID:   orderID,
					BeforeJSON:   fmt.Sprintf(`{"status":%q}`, o.Status),
					AfterJSON:    fmt.Sprintf(`{"status":%q}`, newStatus),
					CreatedAt:    time.Now(),
				}); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
			return nil
		})
		if err != nil {
			return OrderOutput{}, err
		}
	}

	updated, err := u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(updated, items), nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			ProductName: it.ProductName,
			ProductUnit: it.ProductUnit,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		ContactPhone:    o.ContactPhone,
		TotalAmount:     o.TotalAmount,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
