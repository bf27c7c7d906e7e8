package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: map[string]models.JSON{}}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func openServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

type serviceTestEnv struct {
	db        *gorm.DB
	settings  *SettingService
	products  *ProductService
	carts     *CartService
	orders    *OrderService
	affiliate *AffiliateService
	auth      *AuthService
}

func newServiceTestEnv(t *testing.T, name string) *serviceTestEnv {
	t.Helper()
	db := openServiceTestDB(t, name)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	settings := NewSettingService(repository.NewSettingRepository(db))
	carts := NewCartService(cartRepo, productRepo)

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.JWT.Issuer = "vitrina-test"
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}

	return &serviceTestEnv{
		db:        db,
		settings:  settings,
		products:  NewProductService(productRepo, cartRepo, nil, 0),
		carts:     carts,
		orders:    NewOrderService(repository.NewOrderRepository(db), carts, settings, nil),
		affiliate: NewAffiliateService(repository.NewAffiliateRepository(db), settings, nil, "https://shop.example.com/register"),
		auth:      NewAuthService(cfg, repository.NewAdminRepository(db)),
	}
}

func mustCreateProduct(t *testing.T, env *serviceTestEnv, input ProductInput) *models.Product {
	t.Helper()
	product, err := env.products.Create(input)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
