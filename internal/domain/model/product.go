package model

import "time"

// 販売単位（kg・グラム・個など）
type ProductUnit string

const (
	UnitKG    ProductUnit = "kg"
	UnitGram  ProductUnit = "gram"
	UnitPiece ProductUnit = "piece"
	UnitBunch ProductUnit = "bunch"
	UnitDozen ProductUnit = "dozen"
	UnitPound ProductUnit = "pound"
)

// 許可された単位かどうか
func (u ProductUnit) IsValid() bool {
	switch u {
	case UnitKG, UnitGram, UnitPiece, UnitBunch, UnitDozen, UnitPound:
		return true
	}
	return false
}

type Product struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;index" json:"name"`

	//言語ごとの商品名（en/fr/ar）
	NameTranslations Translations `gorm:"type:jsonb" json:"name_translations,omitempty"`

	Description string `gorm:"type:text" json:"description"`

	//言語ごとの説明
	DescriptionTranslations Translations `gorm:"type:jsonb" json:"description_translations,omitempty"`

	//価格は正であること
	Price float64     `gorm:"not null" json:"price"`
	Unit  ProductUnit `gorm:"type:varchar(20);not null" json:"unit"`

	//在庫は負にならないこと
	StockQuantity int64 `gorm:"not null" json:"stock_quantity"`

	ImageURL   string `gorm:"type:varchar(255)" json:"image_url"`
	IsOrganic  bool   `gorm:"not null;default:false" json:"is_organic"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`
	CategoryID int64  `gorm:"not null;index" json:"category_id"`

	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
