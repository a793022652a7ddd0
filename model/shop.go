package model

import "time"

// Purchase records a fulfilled payment-provider transaction. Session creation
// and card handling stay with the provider; we only ingest completed events.
// ProviderRef is unique so a replayed fulfilment webhook cannot credit twice.
type Purchase struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	ProviderRef string    `json:"provider_ref" gorm:"uniqueIndex;not null"`
	ProductType string    `json:"product_type"` // premium, orydor_pack
	ProductID   string    `json:"product_id"`
	Orydors     int       `json:"orydors"`
	Months      int       `json:"months"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrydorPack is a purchasable bundle of premium currency.
type OrydorPack struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Orydors   int       `json:"orydors" gorm:"not null"`
	PriceCent int       `json:"price_cent" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}
