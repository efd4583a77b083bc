package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// 言語コード→訳文のマップ。jsonbカラムに保存する。
type Translations map[string]string

// gorm用：DBへ書き込む値
func (t Translations) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// gorm用：DBから読み込む
func (t *Translations) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("translations: unsupported column type")
	}

	if len(data) == 0 {
		*t = nil
		return nil
	}
	return json.Unmarshal(data, t)
}

// gorm用：カラム型
func (Translations) GormDataType() string {
	return "jsonb"
}
