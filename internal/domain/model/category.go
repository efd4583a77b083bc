package model

import "time"

type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;index" json:"name"`

	//言語ごとのカテゴリ名
	NameTranslations Translations `gorm:"type:jsonb" json:"name_translations,omitempty"`

	Description string `gorm:"type:text" json:"description"`

	//言語ごとの説明
	DescriptionTranslations Translations `gorm:"type:jsonb" json:"description_translations,omitempty"`

	ImageURL string `gorm:"type:varchar(255)" json:"image_url"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
