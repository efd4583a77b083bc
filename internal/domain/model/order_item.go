package model

// 注文明細。注文時点の商品名・単位・単価を必ずスナップショットで保存する。
// 後から商品が編集されても過去の注文は変わらない。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	Quantity  int64   `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`

	//スナップショット
	ProductName string `gorm:"type:varchar(100);not null" json:"product_name"`
	ProductUnit string `gorm:"type:varchar(20);not null" json:"product_unit"`
}
