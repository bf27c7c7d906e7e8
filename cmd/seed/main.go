package main

import (
	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/provider"
	"github.com/vitrina-next/internal/repository"
	"github.com/vitrina-next/internal/service"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, false, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	c := provider.NewContainer(cfg)

	// 商家设置
	business := service.BusinessDefaultSetting()
	business.BusinessName = "Tienda Vitrina"
	business.BusinessCategory = "Artesanías"
	business.ContactInfo = "hola@vitrina.example"
	business.WhatsAppNumber = "573001234567"
	business.EnableCashOnDelivery = true
	business.CashOnDeliveryInstructions = "Paga en efectivo al recibir tu pedido."
	if _, err := c.SettingService.UpdateBusinessSetting(business); err != nil {
		stdLog.Printf("Failed to save business setting: %v", err)
	} else {
		stdLog.Printf("Business setting saved: %s", business.BusinessName)
	}

	// 添加商品
	existing, err := c.ProductRepo.List(repository.ProductListFilter{})
	if err != nil {
		stdLog.Fatalf("Failed to load products: %v", err)
	}
	if len(existing) > 0 {
		stdLog.Printf("Products already exist (%d), skip product seed", len(existing))
	} else {
		products := []service.ProductInput{
			{
				Name:         "Vela de soya aromática",
				Category:     "Hogar",
				BasePrice:    "42000",
				Currency:     constants.CurrencyCOP,
				TaxRate:      "19",
				DiscountRate: "10",
				Idea:         "Vela artesanal con aroma a café y vainilla, hecha a mano en Bogotá",
				Images:       []string{"https://images.unsplash.com/photo-1602874801007-bd458bb1b8b6?w=800"},
				Status:       constants.ProductStatusActive,
				Stock:        intPtr(25),
			},
			{
				Name:      "Mochila wayuu",
				Category:  "Accesorios",
				BasePrice: "89.90",
				Currency:  constants.CurrencyUSD,
				Idea:      "Mochila tejida a mano por artesanas de La Guajira",
				Images:    []string{"https://images.unsplash.com/photo-1590874103328-eac38a683ce7?w=800"},
				Status:    constants.ProductStatusActive,
			},
			{
				Name:         "Café de origen 500g",
				Category:     "Alimentos",
				BasePrice:    "12.50",
				Currency:     constants.CurrencyEUR,
				TaxRate:      "5",
				DiscountRate: "0",
				Idea:         "Café de altura del Huila, tostión media",
				Status:       constants.ProductStatusOutOfStock,
				Stock:        intPtr(0),
			},
			{
				Name:      "Sombrero vueltiao",
				Category:  "Accesorios",
				BasePrice: "150000",
				Currency:  constants.CurrencyCOP,
				Status:    constants.ProductStatusInactive,
			},
		}
		for _, input := range products {
			product, err := c.ProductService.Create(input)
			if err != nil {
				stdLog.Printf("Failed to create product %s: %v", input.Name, err)
				continue
			}
			stdLog.Printf("Created product: %s (%s)", product.Name, product.ID)
		}
	}

	// 推广员
	affiliates, total, err := c.AffiliateService.List(repository.AffiliateListFilter{Page: 1, PageSize: 1})
	if err != nil {
		stdLog.Fatalf("Failed to load affiliates: %v", err)
	}
	if total > 0 && len(affiliates) > 0 {
		stdLog.Printf("Affiliates already exist (%d), skip affiliate seed", total)
		return
	}
	affiliate, err := c.AffiliateService.Create(service.CreateAffiliateInput{
		Name:   "Lucía Gómez",
		Email:  "lucia@vitrina.example",
		Status: constants.AffiliateStatusActive,
		PaymentDetails: service.AffiliatePaymentDetailsInput{
			NequiDaviplata: strPtr("3001234567"),
		},
	})
	if err != nil {
		stdLog.Printf("Failed to create affiliate: %v", err)
		return
	}
	stdLog.Printf("Created affiliate: %s (%s)", affiliate.Name, affiliate.ReferralCode)

	client, err := c.AffiliateService.CreateReferredClient(service.CreateReferredClientInput{
		AffiliateID: affiliate.ID,
		ClientName:  "Panadería La Espiga",
	})
	if err != nil {
		stdLog.Printf("Failed to create referred client: %v", err)
		return
	}
	stdLog.Printf("Created referred client: %s", client.ID)
}
