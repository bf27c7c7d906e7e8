package service

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/repository"
)

var referralCodePattern = regexp.MustCompile(`^[A-Z0-9ÁÉÍÓÚÑ]{1,8}[1-9][0-9]{2}$`)

func strPtr(v string) *string {
	return &v
}

func TestReferralCodePrefix(t *testing.T) {
	cases := map[string]string{
		"Juan Afiliado":   "JUANAFIL",
		"  ana  ":         "ANA",
		"María Socia Pro": "MARÍASOC",
		"   ":             "AFF",
	}
	for name, want := range cases {
		if got := referralCodePrefix(name); got != want {
			t.Fatalf("prefix(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestReferralLink(t *testing.T) {
	if got := ReferralLink("https://shop.example.com/register", "ANA123"); got != "https://shop.example.com/register?ref=ANA123" {
		t.Fatalf("unexpected link: %s", got)
	}
	if got := ReferralLink("https://shop.example.com/register?lang=es", "ANA123"); got != "https://shop.example.com/register?lang=es&ref=ANA123" {
		t.Fatalf("unexpected link with query: %s", got)
	}
}

func TestAffiliateCreateGeneratesCode(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_create")

	affiliate, err := env.affiliate.Create(CreateAffiliateInput{
		Name:  "Juan Afiliado",
		Email: "Juan@Example.com",
		PaymentDetails: AffiliatePaymentDetailsInput{
			PaypalEmail: strPtr("juan@paypal.com"),
		},
	})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}
	if !strings.HasPrefix(affiliate.ReferralCode, "JUANAFIL") || len(affiliate.ReferralCode) != 11 {
		t.Fatalf("unexpected referral code: %s", affiliate.ReferralCode)
	}
	if !referralCodePattern.MatchString(affiliate.ReferralCode) {
		t.Fatalf("referral code suffix out of range: %s", affiliate.ReferralCode)
	}
	if affiliate.ReferralLink != "https://shop.example.com/register?ref="+affiliate.ReferralCode {
		t.Fatalf("unexpected referral link: %s", affiliate.ReferralLink)
	}
	if affiliate.Status != constants.AffiliateStatusInactive {
		t.Fatalf("expected inactive default status, got %s", affiliate.Status)
	}
	if affiliate.Email != "juan@example.com" {
		t.Fatalf("expected lowercased email, got %s", affiliate.Email)
	}
	if !affiliate.CommissionAccumulated.IsZero() {
		t.Fatalf("expected zero commission")
	}
}

func TestAffiliateUpdateMergesPaymentDetails(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_update")
	affiliate, err := env.affiliate.Create(CreateAffiliateInput{
		Name:           "Ana",
		PaymentDetails: AffiliatePaymentDetailsInput{PaypalEmail: strPtr("ana@paypal.com")},
	})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}

	updated, err := env.affiliate.Update(affiliate.ID, UpdateAffiliateInput{
		Status:         strPtr("ACTIVE"),
		PaymentDetails: &AffiliatePaymentDetailsInput{BankInfo: strPtr("Bancolombia 123")},
	})
	if err != nil {
		t.Fatalf("update affiliate failed: %v", err)
	}
	if updated.PaymentDetails.PaypalEmail != "ana@paypal.com" || updated.PaymentDetails.BankInfo != "Bancolombia 123" {
		t.Fatalf("payment details not merged: %+v", updated.PaymentDetails)
	}
	if updated.Status != constants.AffiliateStatusActive {
		t.Fatalf("expected active, got %s", updated.Status)
	}

	if _, err := env.affiliate.UpdateStatus(affiliate.ID, "paused"); !errors.Is(err, ErrAffiliateStatusInvalid) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := env.affiliate.UpdateStatus("missing", constants.AffiliateStatusActive); !errors.Is(err, ErrAffiliateNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := env.affiliate.Delete(affiliate.ID); err != nil {
		t.Fatalf("delete affiliate failed: %v", err)
	}
	if _, err := env.affiliate.Get(affiliate.ID); !errors.Is(err, ErrAffiliateNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestRecordRevenueAccruesCommission(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_revenue")
	affiliate, err := env.affiliate.Create(CreateAffiliateInput{Name: "Ana", Status: constants.AffiliateStatusActive})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}
	client, err := env.affiliate.CreateReferredClient(CreateReferredClientInput{
		AffiliateID: affiliate.ID,
		ClientName:  "Tienda Referida",
		Status:      constants.ReferredClientStatusActive,
	})
	if err != nil {
		t.Fatalf("create referred client failed: %v", err)
	}

	result, err := env.affiliate.RecordRevenue(client.ID, "150.00")
	if err != nil {
		t.Fatalf("record revenue failed: %v", err)
	}
	if result.Queued {
		t.Fatalf("queue disabled, accrual should run inline")
	}
	if result.Commission != "30.00" {
		t.Fatalf("expected 20%% commission 30.00, got %s", result.Commission)
	}
	if result.Client.AmountGenerated.String() != "150.00" || result.Client.LastActivityDate == nil {
		t.Fatalf("unexpected client after revenue: %+v", result.Client)
	}

	reloaded, err := env.affiliate.Get(affiliate.ID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if reloaded.CommissionAccumulated.String() != "30.00" {
		t.Fatalf("expected accumulated 30.00, got %s", reloaded.CommissionAccumulated.String())
	}
	if reloaded.TotalActiveReferrals != 1 {
		t.Fatalf("expected 1 active referral, got %d", reloaded.TotalActiveReferrals)
	}

	if _, err := env.affiliate.RecordRevenue(client.ID, "0"); !errors.Is(err, ErrRevenueAmountInvalid) {
		t.Fatalf("expected revenue invalid, got %v", err)
	}
	if _, err := env.affiliate.RecordRevenue("missing", "10"); !errors.Is(err, ErrReferredClientNotFound) {
		t.Fatalf("expected referred client not found, got %v", err)
	}
}

func TestOneTimeCommissionOnlyOnFirstRevenue(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_one_time")
	if _, err := env.settings.UpdateAffiliateSetting(AffiliateSetting{
		CommissionRatePercent:   10,
		CommissionType:          constants.CommissionTypeOneTime,
		AvailablePaymentMethods: []string{constants.PaymentMethodPaypal},
	}); err != nil {
		t.Fatalf("update setting failed: %v", err)
	}
	affiliate, err := env.affiliate.Create(CreateAffiliateInput{Name: "Ana"})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}
	client, err := env.affiliate.CreateReferredClient(CreateReferredClientInput{AffiliateID: affiliate.ID, ClientName: "Cliente"})
	if err != nil {
		t.Fatalf("create referred client failed: %v", err)
	}
	if client.Status != constants.ReferredClientStatusTrial {
		t.Fatalf("expected trial default status, got %s", client.Status)
	}

	first, err := env.affiliate.RecordRevenue(client.ID, "100")
	if err != nil || first.Commission != "10.00" {
		t.Fatalf("first revenue should accrue: %v %+v", err, first)
	}
	second, err := env.affiliate.RecordRevenue(client.ID, "100")
	if err != nil || second.Commission != "0.00" {
		t.Fatalf("second revenue should not accrue: %v %+v", err, second)
	}
	reloaded, err := env.affiliate.Get(affiliate.ID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if reloaded.CommissionAccumulated.String() != "10.00" {
		t.Fatalf("expected accumulated 10.00, got %s", reloaded.CommissionAccumulated.String())
	}
	if reloaded.TotalActiveReferrals != 0 {
		t.Fatalf("trial clients are not active referrals, got %d", reloaded.TotalActiveReferrals)
	}
}

func TestApplyCommissionAccrualFromPayload(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_accrual_payload")
	affiliate, err := env.affiliate.Create(CreateAffiliateInput{Name: "Ana"})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}
	amount, err := env.affiliate.ApplyCommissionAccrual(queue.CommissionAccruePayload{AffiliateID: affiliate.ID, Revenue: "55.55"})
	if err != nil {
		t.Fatalf("apply accrual failed: %v", err)
	}
	if amount.StringFixed(2) != "11.11" {
		t.Fatalf("expected 11.11, got %s", amount.StringFixed(2))
	}
	if _, err := env.affiliate.ApplyCommissionAccrual(queue.CommissionAccruePayload{AffiliateID: "missing", Revenue: "10"}); !errors.Is(err, ErrAffiliateNotFound) {
		t.Fatalf("expected affiliate not found, got %v", err)
	}
}

func seedAffiliateWithBalance(t *testing.T, env *serviceTestEnv, revenue string) string {
	t.Helper()
	affiliate, err := env.affiliate.Create(CreateAffiliateInput{Name: "Ana"})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}
	if _, err := env.affiliate.ApplyCommissionAccrual(queue.CommissionAccruePayload{AffiliateID: affiliate.ID, Revenue: revenue}); err != nil {
		t.Fatalf("seed balance failed: %v", err)
	}
	return affiliate.ID
}

func TestRecordPayoutDeductsBalance(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_payout")
	affiliateID := seedAffiliateWithBalance(t, env, "500")

	result, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: affiliateID, Amount: "60", Method: "PayPal", Notes: "Octubre"})
	if err != nil {
		t.Fatalf("record payout failed: %v", err)
	}
	if result.Payout.Status != constants.PayoutStatusPending || result.Payout.Method != "paypal" {
		t.Fatalf("unexpected payout: %+v", result.Payout)
	}
	if result.Check.ExceedsBalance || result.Check.BelowMinimum {
		t.Fatalf("unexpected soft flags: %+v", result.Check)
	}
	affiliate, err := env.affiliate.Get(affiliateID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if affiliate.CommissionAccumulated.String() != "40.00" {
		t.Fatalf("expected 40.00 remaining, got %s", affiliate.CommissionAccumulated.String())
	}
}

func TestRecordPayoutOverBalanceFloorsAtZero(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_payout_over")
	affiliateID := seedAffiliateWithBalance(t, env, "100")

	result, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: affiliateID, Amount: "30", Method: constants.PaymentMethodBankTransfer})
	if err != nil {
		t.Fatalf("record payout failed: %v", err)
	}
	if !result.Check.ExceedsBalance || !result.Check.BelowMinimum {
		t.Fatalf("expected both soft flags: %+v", result.Check)
	}
	affiliate, err := env.affiliate.Get(affiliateID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if !affiliate.CommissionAccumulated.IsZero() {
		t.Fatalf("expected balance floored at 0, got %s", affiliate.CommissionAccumulated.String())
	}
}

func TestRecordPayoutValidation(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_payout_validation")
	affiliateID := seedAffiliateWithBalance(t, env, "100")

	if _, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: affiliateID, Amount: "0", Method: "paypal"}); !errors.Is(err, ErrPayoutAmountInvalid) {
		t.Fatalf("expected amount invalid, got %v", err)
	}
	if _, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: affiliateID, Amount: "abc", Method: "paypal"}); !errors.Is(err, ErrPayoutAmountInvalid) {
		t.Fatalf("expected amount invalid, got %v", err)
	}
	if _, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: affiliateID, Amount: "10", Method: constants.PaymentMethodNequiDaviplata}); !errors.Is(err, ErrPayoutMethodInvalid) {
		t.Fatalf("expected method invalid for disabled method, got %v", err)
	}
	if _, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: "missing", Amount: "10", Method: "paypal"}); !errors.Is(err, ErrAffiliateNotFound) {
		t.Fatalf("expected affiliate not found, got %v", err)
	}

	affiliate, err := env.affiliate.Get(affiliateID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if affiliate.CommissionAccumulated.String() != "20.00" {
		t.Fatalf("rejected payouts must not change balance, got %s", affiliate.CommissionAccumulated.String())
	}
}

func TestUpdatePayoutStatusDoesNotRecredit(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_payout_status")
	affiliateID := seedAffiliateWithBalance(t, env, "500")
	result, err := env.affiliate.RecordPayout(RecordPayoutInput{AffiliateID: affiliateID, Amount: "60", Method: "paypal"})
	if err != nil {
		t.Fatalf("record payout failed: %v", err)
	}

	payout, err := env.affiliate.UpdatePayoutStatus(result.Payout.ID, constants.PayoutStatusFailed, " TX-1 ")
	if err != nil {
		t.Fatalf("update payout status failed: %v", err)
	}
	if payout.Status != constants.PayoutStatusFailed || payout.TransactionID != "TX-1" {
		t.Fatalf("unexpected payout: %+v", payout)
	}
	affiliate, err := env.affiliate.Get(affiliateID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if affiliate.CommissionAccumulated.String() != "40.00" {
		t.Fatalf("failed payout must not re-credit, got %s", affiliate.CommissionAccumulated.String())
	}

	if _, err := env.affiliate.UpdatePayoutStatus("missing", constants.PayoutStatusPaid, ""); !errors.Is(err, ErrPayoutNotFound) {
		t.Fatalf("expected payout not found, got %v", err)
	}
	if _, err := env.affiliate.UpdatePayoutStatus(result.Payout.ID, "refunded", ""); !errors.Is(err, ErrPayoutStatusInvalid) {
		t.Fatalf("expected payout status invalid, got %v", err)
	}

	payouts, total, err := env.affiliate.ListPayouts(repository.PayoutListFilter{AffiliateID: affiliateID})
	if err != nil || total != 1 || len(payouts) != 1 {
		t.Fatalf("unexpected payouts list: %v %d", err, total)
	}
}

func TestReferredClientStatusRefreshesActiveCount(t *testing.T) {
	env := newServiceTestEnv(t, "affiliate_client_status")
	affiliate, err := env.affiliate.Create(CreateAffiliateInput{Name: "Ana"})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}
	client, err := env.affiliate.CreateReferredClient(CreateReferredClientInput{AffiliateID: affiliate.ID, ClientName: "Cliente"})
	if err != nil {
		t.Fatalf("create referred client failed: %v", err)
	}
	if _, err := env.affiliate.UpdateReferredClientStatus(client.ID, constants.ReferredClientStatusActive); err != nil {
		t.Fatalf("update client status failed: %v", err)
	}
	reloaded, err := env.affiliate.Get(affiliate.ID)
	if err != nil || reloaded.TotalActiveReferrals != 1 {
		t.Fatalf("expected 1 active referral: %v", err)
	}
	clients, total, err := env.affiliate.ListReferredClients(repository.ReferredClientListFilter{AffiliateID: affiliate.ID})
	if err != nil || total != 1 || len(clients) != 1 {
		t.Fatalf("unexpected referred clients: %v %d", err, total)
	}
	if _, err := env.affiliate.CreateReferredClient(CreateReferredClientInput{AffiliateID: "missing", ClientName: "X"}); !errors.Is(err, ErrAffiliateNotFound) {
		t.Fatalf("expected affiliate not found, got %v", err)
	}
}
