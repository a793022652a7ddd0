package dto

import "time"

type OrydorPackResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Orydors   int    `json:"orydors"`
	PriceCent int    `json:"price_cent"`
}

type ShopCatalogResponse struct {
	Packs []OrydorPackResponse `json:"packs"`
}

// FulfillPurchaseRequest ingests one completed provider transaction. The
// provider ref deduplicates replays.
type FulfillPurchaseRequest struct {
	ProviderRef string `json:"provider_ref" validate:"required"`
	ProductType string `json:"product_type" validate:"required,oneof=premium orydor_pack"`
	ProductID   string `json:"product_id"`
	Months      int    `json:"months" validate:"omitempty,gte=1,max=12"`
}

func (r FulfillPurchaseRequest) Validate() error {
	return validate.Struct(r)
}

type FulfillPurchaseResponse struct {
	PurchaseID   string     `json:"purchase_id"`
	Duplicate    bool       `json:"duplicate"`
	OrydorsTotal int        `json:"orydors_total"`
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}
