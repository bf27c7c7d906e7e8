package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vitrina-next/internal/constants"
)

func TestGetAffiliateSettingFallback(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	setting, err := svc.GetAffiliateSetting()
	if err != nil {
		t.Fatalf("get affiliate setting failed: %v", err)
	}
	if setting.CommissionRatePercent != 20 {
		t.Fatalf("expected default rate 20, got %v", setting.CommissionRatePercent)
	}
	if setting.CommissionType != constants.CommissionTypeRecurring {
		t.Fatalf("expected recurring commission, got %s", setting.CommissionType)
	}
	if setting.MinimumPayoutAmount != 50 {
		t.Fatalf("expected default minimum payout 50, got %v", setting.MinimumPayoutAmount)
	}
	if len(setting.AvailablePaymentMethods) != 2 {
		t.Fatalf("unexpected default methods: %v", setting.AvailablePaymentMethods)
	}
}

func TestUpdateAffiliateSettingNormalize(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	setting, err := svc.UpdateAffiliateSetting(AffiliateSetting{
		CommissionRatePercent:   12.346,
		CommissionType:          " ONE_TIME ",
		MinimumPayoutAmount:     10.129,
		RetentionPeriodDays:     60,
		AvailablePaymentMethods: []string{" PayPal ", "paypal", "nequi_daviplata"},
	})
	if err != nil {
		t.Fatalf("update affiliate setting failed: %v", err)
	}
	if setting.CommissionRatePercent != 12.35 {
		t.Fatalf("expected rate rounded to 12.35, got %v", setting.CommissionRatePercent)
	}
	if setting.CommissionType != constants.CommissionTypeOneTime {
		t.Fatalf("expected one_time, got %s", setting.CommissionType)
	}
	if setting.MinimumPayoutAmount != 10.13 {
		t.Fatalf("expected minimum 10.13, got %v", setting.MinimumPayoutAmount)
	}
	if len(setting.AvailablePaymentMethods) != 2 || setting.AvailablePaymentMethods[0] != "paypal" {
		t.Fatalf("unexpected methods: %v", setting.AvailablePaymentMethods)
	}
	if setting.TermsAndConditionsURL != "/affiliate-terms" {
		t.Fatalf("expected default terms url, got %s", setting.TermsAndConditionsURL)
	}

	saved, ok := repo.store[constants.SettingKeyAffiliateConfig]
	if !ok {
		t.Fatalf("expected affiliate setting saved")
	}
	if saved["commission_rate_percent"] != 12.35 {
		t.Fatalf("unexpected saved rate: %v", saved["commission_rate_percent"])
	}

	reloaded, err := svc.GetAffiliateSetting()
	if err != nil {
		t.Fatalf("reload affiliate setting failed: %v", err)
	}
	if reloaded.RetentionPeriodDays != 60 {
		t.Fatalf("expected retention 60, got %d", reloaded.RetentionPeriodDays)
	}
}

func TestUpdateAffiliateSettingRejectsInvalid(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	cases := []AffiliateSetting{
		{CommissionRatePercent: 120},
		{CommissionRatePercent: 10, MinimumPayoutAmount: -1},
		{CommissionRatePercent: 10, AvailablePaymentMethods: []string{"usdt"}},
	}
	for _, tc := range cases {
		if _, err := svc.UpdateAffiliateSetting(tc); !errors.Is(err, ErrAffiliateConfigInvalid) {
			t.Fatalf("expected config invalid for %+v, got %v", tc, err)
		}
	}
}

func TestBusinessSettingDefaultsAndNormalize(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	setting, err := svc.GetBusinessSetting()
	if err != nil {
		t.Fatalf("get business setting failed: %v", err)
	}
	if setting.PrimaryColor != "#2563eb" {
		t.Fatalf("expected default color, got %s", setting.PrimaryColor)
	}
	if setting.WhatsAppOrderTemplate != DefaultWhatsAppOrderTemplate {
		t.Fatalf("expected default order template")
	}

	updated, err := svc.UpdateBusinessSetting(BusinessSetting{
		BusinessName:   "  Dulce Hogar ",
		WhatsAppNumber: "+57 300 123 4567",
		PrimaryColor:   "red",
	})
	if err != nil {
		t.Fatalf("update business setting failed: %v", err)
	}
	if updated.BusinessName != "Dulce Hogar" {
		t.Fatalf("expected trimmed name, got %q", updated.BusinessName)
	}
	if updated.PrimaryColor != "#2563eb" {
		t.Fatalf("invalid color should fall back, got %s", updated.PrimaryColor)
	}
	if updated.WhatsAppInquiryTemplate != DefaultWhatsAppInquiryTemplate {
		t.Fatalf("empty inquiry template should fall back")
	}
	if _, ok := repo.store[constants.SettingKeyBusinessConfig]; !ok {
		t.Fatalf("expected business setting saved")
	}
}

func TestBusinessSettingNequiRequiresPhone(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())
	_, err := svc.UpdateBusinessSetting(BusinessSetting{EnableNequiPayment: true})
	if !errors.Is(err, ErrBusinessConfigInvalid) {
		t.Fatalf("expected business config invalid, got %v", err)
	}
}

func TestBusinessSettingPublicViewHidesDisabledPayments(t *testing.T) {
	view := NormalizeBusinessSetting(BusinessSetting{
		BusinessName:               "Tienda",
		WhatsAppNumber:             "300",
		CashOnDeliveryInstructions: "Paga al recibir",
	}).PublicView()
	if _, ok := view["cash_on_delivery_instructions"]; ok {
		t.Fatalf("disabled cash on delivery should hide instructions")
	}
	if view["whatsapp_available"] != true {
		t.Fatalf("expected whatsapp available")
	}
	if _, ok := view["whatsapp_number"]; ok {
		t.Fatalf("public view must not expose raw whatsapp number")
	}
}

func TestParseSettingNumbers(t *testing.T) {
	cases := []struct {
		raw      interface{}
		wantInt  int
		wantReal float64
		wantErr  bool
	}{
		{raw: float64(12.5), wantInt: 12, wantReal: 12.5},
		{raw: 30, wantInt: 30, wantReal: 30},
		{raw: json.Number("7.25"), wantInt: 7, wantReal: 7.25},
		{raw: " 45 ", wantInt: 45, wantReal: 45},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: true, wantErr: true},
	}
	for _, tc := range cases {
		gotInt, errInt := parseSettingInt(tc.raw)
		gotReal, errReal := parseSettingFloat(tc.raw)
		if tc.wantErr {
			if errInt == nil || errReal == nil {
				t.Fatalf("raw %#v should fail", tc.raw)
			}
			continue
		}
		if errInt != nil || errReal != nil {
			t.Fatalf("raw %#v unexpected error: %v %v", tc.raw, errInt, errReal)
		}
		if gotInt != tc.wantInt || gotReal != tc.wantReal {
			t.Fatalf("raw %#v want %d/%v got %d/%v", tc.raw, tc.wantInt, tc.wantReal, gotInt, gotReal)
		}
	}
}
