package models

import "time"

// CollectionRecord is the single storage row shape: one row per collection,
// the whole collection serialized into Payload. Version backs the optimistic
// guard on read-modify-write cycles.
type CollectionRecord struct {
	Collection string    `gorm:"column:collection;primaryKey"`
	Payload    []byte    `gorm:"column:payload;not null"`
	Version    int64     `gorm:"column:version;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the storage table name.
func (CollectionRecord) TableName() string {
	return "collection_records"
}
