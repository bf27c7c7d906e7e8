package repository

import (
	"testing"

	"github.com/vitrina-next/internal/models"
)

func TestSettingRepositoryUpsert(t *testing.T) {
	db := openRepositoryTestDB(t, "setting_upsert")
	repo := NewSettingRepository(db)

	missing, err := repo.GetByKey("business_config")
	if err != nil || missing != nil {
		t.Fatalf("missing setting should return nil,nil: %v %v", missing, err)
	}

	if _, err := repo.Upsert("business_config", models.JSON{"business_name": "Uno"}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if _, err := repo.Upsert("business_config", models.JSON{"business_name": "Dos"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	got, err := repo.GetByKey("business_config")
	if err != nil || got == nil {
		t.Fatalf("get setting failed: %v", err)
	}
	if got.ValueJSON["business_name"] != "Dos" {
		t.Fatalf("upsert should overwrite value, got %v", got.ValueJSON)
	}
}
