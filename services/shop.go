package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type ShopService struct {
	context.DefaultService

	postgres *PostgresService
}

const SHOP_SVC = "shop_svc"

const (
	ProductPremium    = "premium"
	ProductOrydorPack = "orydor_pack"
)

func (svc ShopService) Id() string {
	return SHOP_SVC
}

func (svc *ShopService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// GetCatalog lists the purchasable Orydor packs.
func (svc *ShopService) GetCatalog() (*dto.ShopCatalogResponse, error) {
	packs, err := svc.postgres.GetOrydorPacks()
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load catalog")
	}

	resp := dto.ShopCatalogResponse{Packs: make([]dto.OrydorPackResponse, 0, len(packs))}
	for _, pack := range packs {
		resp.Packs = append(resp.Packs, dto.OrydorPackResponse{
			ID:        pack.ID,
			Name:      pack.Name,
			Orydors:   pack.Orydors,
			PriceCent: pack.PriceCent,
		})
	}
	return &resp, nil
}

// extendPremium stacks months onto a still-active subscription, or starts
// from now when the previous one has lapsed.
func extendPremium(now time.Time, premiumUntil *time.Time, months int) time.Time {
	base := now
	if premiumUntil != nil && premiumUntil.After(base) {
		base = *premiumUntil
	}
	return base.AddDate(0, months, 0)
}

// FulfillPurchase ingests one completed provider transaction. A replayed
// provider ref returns the original purchase with the Duplicate flag set
// instead of crediting again.
func (svc *ShopService) FulfillPurchase(userID string, req *dto.FulfillPurchaseRequest) (*dto.FulfillPurchaseResponse, error) {
	if existing, err := svc.postgres.GetPurchaseByProviderRef(req.ProviderRef); err == nil {
		stats, err := svc.postgres.GetUserStats(existing.UserID)
		if err != nil {
			return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
		}
		return &dto.FulfillPurchaseResponse{
			PurchaseID:   existing.ID,
			Duplicate:    true,
			OrydorsTotal: stats.Orydors,
			IsPremium:    stats.IsPremium,
			PremiumUntil: stats.PremiumUntil,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to check provider reference")
	}

	purchase := model.Purchase{
		ID:          newID(),
		UserID:      userID,
		ProviderRef: req.ProviderRef,
		ProductType: req.ProductType,
		ProductID:   req.ProductID,
		CreatedAt:   time.Now(),
	}

	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	switch req.ProductType {
	case ProductPremium:
		months := req.Months
		if months <= 0 {
			months = 1
		}
		purchase.Months = months

		until := extendPremium(time.Now(), stats.PremiumUntil, months)
		stats.IsPremium = true
		stats.PremiumUntil = &until

	case ProductOrydorPack:
		pack, err := svc.postgres.GetOrydorPack(req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, shared.NewNotFoundError(nil, "orydor pack not found")
			}
			return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load orydor pack")
		}

		purchase.Orydors = pack.Orydors
		stats.Orydors += pack.Orydors

	default:
		return nil, shared.NewBadRequestError(nil, "unknown product type")
	}

	// Purchase row and credit land atomically: if the credit fails, the
	// provider ref stays unused and the replay can fulfil it.
	if err := svc.postgres.ApplyPurchase(&purchase, stats); err != nil {
		// A concurrent fulfilment won the unique index; report the original.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return svc.FulfillPurchase(userID, req)
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to record purchase")
	}

	log.WithFields(log.Fields{
		"user_id":      userID,
		"purchase_id":  purchase.ID,
		"product_type": req.ProductType,
	}).Info("Purchase fulfilled")

	return &dto.FulfillPurchaseResponse{
		PurchaseID:   purchase.ID,
		Duplicate:    false,
		OrydorsTotal: stats.Orydors,
		IsPremium:    stats.IsPremium,
		PremiumUntil: stats.PremiumUntil,
	}, nil
}
