package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/vitrina-next/internal/commission"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	affiliateCodePrefixLength = 8
	affiliateCodeMaxRetry     = 8
	affiliateCodeFallback     = "AFF"
)

// AffiliateService 推广计划服务：推广员、结算、被推荐客户
type AffiliateService struct {
	repo            repository.AffiliateRepository
	settingService  *SettingService
	queueClient     *queue.Client
	referralBaseURL string
}

// NewAffiliateService 创建推广计划服务
func NewAffiliateService(repo repository.AffiliateRepository, settingService *SettingService, queueClient *queue.Client, referralBaseURL string) *AffiliateService {
	return &AffiliateService{
		repo:            repo,
		settingService:  settingService,
		queueClient:     queueClient,
		referralBaseURL: strings.TrimSpace(referralBaseURL),
	}
}

// AffiliatePaymentDetailsInput 收款信息输入，nil 字段表示不修改
type AffiliatePaymentDetailsInput struct {
	PaypalEmail    *string `json:"paypal_email"`
	BankInfo       *string `json:"bank_info"`
	NequiDaviplata *string `json:"nequi_daviplata"`
}

// CreateAffiliateInput 创建推广员输入
type CreateAffiliateInput struct {
	Name           string
	Email          string
	Status         string
	PaymentDetails AffiliatePaymentDetailsInput
}

// UpdateAffiliateInput 更新推广员输入，nil 字段表示不修改
type UpdateAffiliateInput struct {
	Name           *string
	Email          *string
	Status         *string
	PaymentDetails *AffiliatePaymentDetailsInput
}

// RecordPayoutInput 手动结算输入
type RecordPayoutInput struct {
	AffiliateID string
	Amount      string
	Method      string
	Notes       string
}

// PayoutResult 结算结果与软提示
type PayoutResult struct {
	Payout *models.AffiliatePayout `json:"payout"`
	Check  commission.PayoutCheck  `json:"check"`
}

// CreateReferredClientInput 登记被推荐客户输入
type CreateReferredClientInput struct {
	AffiliateID string
	ClientName  string
	Status      string
}

// RevenueResult 营收登记结果
type RevenueResult struct {
	Client     *models.ReferredClient `json:"client"`
	Commission string                 `json:"commission"`
	Queued     bool                   `json:"queued"`
}

// ReferralLink 生成推广链接 <base>?ref=CODE
func ReferralLink(baseURL, code string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "ref=" + url.QueryEscape(code)
}

// referralCodePrefix 名称去空白、转大写后取前 8 个字符
func referralCodePrefix(name string) string {
	var builder strings.Builder
	count := 0
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		builder.WriteString(strings.ToUpper(string(r)))
		count++
		if count == affiliateCodePrefixLength {
			break
		}
	}
	if builder.Len() == 0 {
		return affiliateCodeFallback
	}
	return builder.String()
}

// generateReferralCode 前缀 + 100~999 随机后缀
func generateReferralCode(name string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", err
	}
	return referralCodePrefix(name) + strconv.FormatInt(n.Int64()+100, 10), nil
}

// Create 创建推广员，推广码冲突时重试
func (s *AffiliateService) Create(input CreateAffiliateInput) (*models.Affiliate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrAffiliateInvalid)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" && !isValidEmail(email) {
		return nil, fmt.Errorf("%w: email", ErrAffiliateInvalid)
	}
	status := constants.AffiliateStatusInactive
	if raw := strings.TrimSpace(input.Status); raw != "" {
		normalized, ok := normalizeAffiliateStatus(raw)
		if !ok {
			return nil, ErrAffiliateStatusInvalid
		}
		status = normalized
	}

	for i := 0; i < affiliateCodeMaxRetry; i++ {
		code, err := generateReferralCode(name)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountByCode(code)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		affiliate := &models.Affiliate{
			ID:                    uuid.NewString(),
			Name:                  name,
			Email:                 email,
			ReferralCode:          code,
			ReferralLink:          ReferralLink(s.referralBaseURL, code),
			Status:                status,
			CommissionAccumulated: models.NewMoneyFromDecimal(decimal.Zero),
		}
		mergePaymentDetails(&affiliate.PaymentDetails, input.PaymentDetails)
		if err := s.repo.Create(affiliate); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, err
		}
		return affiliate, nil
	}
	return nil, ErrAffiliateCodeExhausted
}

// Get 获取推广员
func (s *AffiliateService) Get(id string) (*models.Affiliate, error) {
	affiliate, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, ErrAffiliateNotFound
	}
	return affiliate, nil
}

// List 推广员列表
func (s *AffiliateService) List(filter repository.AffiliateListFilter) ([]models.Affiliate, int64, error) {
	if filter.Status != "" {
		normalized, ok := normalizeAffiliateStatus(filter.Status)
		if !ok {
			return nil, 0, ErrAffiliateStatusInvalid
		}
		filter.Status = normalized
	}
	return s.repo.List(filter)
}

// Update 更新推广员资料，收款信息按字段合并
func (s *AffiliateService) Update(id string, input UpdateAffiliateInput) (*models.Affiliate, error) {
	affiliate, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name required", ErrAffiliateInvalid)
		}
		affiliate.Name = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && !isValidEmail(email) {
			return nil, fmt.Errorf("%w: email", ErrAffiliateInvalid)
		}
		affiliate.Email = email
	}
	if input.Status != nil {
		normalized, ok := normalizeAffiliateStatus(*input.Status)
		if !ok {
			return nil, ErrAffiliateStatusInvalid
		}
		affiliate.Status = normalized
	}
	if input.PaymentDetails != nil {
		mergePaymentDetails(&affiliate.PaymentDetails, *input.PaymentDetails)
	}
	affiliate.UpdatedAt = time.Now()
	if err := s.repo.Update(affiliate); err != nil {
		return nil, err
	}
	return affiliate, nil
}

// UpdateStatus 更新推广员状态
func (s *AffiliateService) UpdateStatus(id, status string) (*models.Affiliate, error) {
	normalized, ok := normalizeAffiliateStatus(status)
	if !ok {
		return nil, ErrAffiliateStatusInvalid
	}
	affected, err := s.repo.UpdateStatus(strings.TrimSpace(id), normalized, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAffiliateNotFound
	}
	return s.Get(id)
}

// Delete 删除推广员
func (s *AffiliateService) Delete(id string) error {
	affected, err := s.repo.Delete(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAffiliateNotFound
	}
	return nil
}

// RecordPayout 手动结算：扣减累计佣金（最低为 0）并创建 pending 结算记录
// 超过余额、低于最低结算额只作为提示返回
func (s *AffiliateService) RecordPayout(input RecordPayoutInput) (*PayoutResult, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPayoutAmountInvalid, input.Amount)
	}
	amount = amount.Round(2)
	method := strings.ToLower(strings.TrimSpace(input.Method))

	setting, err := s.settingService.GetAffiliateSetting()
	if err != nil {
		return nil, err
	}

	var result PayoutResult
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		affiliate, err := repoTx.GetByIDForUpdate(strings.TrimSpace(input.AffiliateID))
		if err != nil {
			return err
		}
		if affiliate == nil {
			return ErrAffiliateNotFound
		}
		balance := affiliate.CommissionAccumulated.Decimal
		check, err := commission.ValidatePayout(
			commission.PayoutRequest{Amount: amount, Method: method},
			balance,
			setting.MinimumPayoutDecimal(),
			setting.AvailablePaymentMethods,
		)
		if err != nil {
			return mapCommissionError(err)
		}
		if check.ExceedsBalance {
			logger.Warnw("affiliate_payout_exceeds_balance",
				"affiliate_id", affiliate.ID,
				"amount", amount.StringFixed(2),
				"balance", balance.StringFixed(2),
			)
		}
		if err := repoTx.SetCommission(affiliate.ID, commission.Deduct(balance, amount)); err != nil {
			return err
		}
		now := time.Now()
		payout := &models.AffiliatePayout{
			ID:          uuid.NewString(),
			AffiliateID: affiliate.ID,
			Amount:      models.NewMoneyFromDecimal(amount),
			Method:      method,
			Status:      constants.PayoutStatusPending,
			Notes:       strings.TrimSpace(input.Notes),
			PayoutDate:  now,
			UpdatedAt:   now,
		}
		if err := repoTx.CreatePayout(payout); err != nil {
			return err
		}
		result = PayoutResult{Payout: payout, Check: check}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePayoutStatus 更新结算状态，不影响推广员余额
func (s *AffiliateService) UpdatePayoutStatus(id, status, transactionID string) (*models.AffiliatePayout, error) {
	normalized, ok := normalizePayoutStatus(status)
	if !ok {
		return nil, ErrPayoutStatusInvalid
	}
	payout, err := s.repo.GetPayoutByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, ErrPayoutNotFound
	}
	payout.Status = normalized
	if txID := strings.TrimSpace(transactionID); txID != "" {
		payout.TransactionID = txID
	}
	payout.UpdatedAt = time.Now()
	if err := s.repo.UpdatePayout(payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// ListPayouts 结算记录列表
func (s *AffiliateService) ListPayouts(filter repository.PayoutListFilter) ([]models.AffiliatePayout, int64, error) {
	if filter.Status != "" {
		normalized, ok := normalizePayoutStatus(filter.Status)
		if !ok {
			return nil, 0, ErrPayoutStatusInvalid
		}
		filter.Status = normalized
	}
	return s.repo.ListPayouts(filter)
}

// CreateReferredClient 登记被推荐客户，并刷新推广员活跃客户数
func (s *AffiliateService) CreateReferredClient(input CreateReferredClientInput) (*models.ReferredClient, error) {
	name := strings.TrimSpace(input.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: client name required", ErrReferredClientInvalid)
	}
	status := constants.ReferredClientStatusTrial
	if raw := strings.TrimSpace(input.Status); raw != "" {
		normalized, ok := normalizeReferredClientStatus(raw)
		if !ok {
			return nil, fmt.Errorf("%w: status %q", ErrReferredClientInvalid, raw)
		}
		status = normalized
	}
	affiliate, err := s.Get(input.AffiliateID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	client := &models.ReferredClient{
		ID:               uuid.NewString(),
		AffiliateID:      affiliate.ID,
		ClientName:       name,
		Status:           status,
		AmountGenerated:  models.NewMoneyFromDecimal(decimal.Zero),
		LastActivityDate: &now,
		CreatedAt:        now,
	}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		if err := repoTx.CreateReferredClient(client); err != nil {
			return err
		}
		return refreshActiveReferrals(repoTx, affiliate.ID)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateReferredClientStatus 更新被推荐客户状态，并刷新推广员活跃客户数
func (s *AffiliateService) UpdateReferredClientStatus(id, status string) (*models.ReferredClient, error) {
	normalized, ok := normalizeReferredClientStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: status %q", ErrReferredClientInvalid, status)
	}
	var updated *models.ReferredClient
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		client, err := repoTx.GetReferredClientByIDForUpdate(strings.TrimSpace(id))
		if err != nil {
			return err
		}
		if client == nil {
			return ErrReferredClientNotFound
		}
		client.Status = normalized
		client.UpdatedAt = time.Now()
		if err := repoTx.UpdateReferredClient(client); err != nil {
			return err
		}
		updated = client
		return refreshActiveReferrals(repoTx, client.AffiliateID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListReferredClients 被推荐客户列表，AffiliateID 为空时返回全部
func (s *AffiliateService) ListReferredClients(filter repository.ReferredClientListFilter) ([]models.ReferredClient, int64, error) {
	if filter.Status != "" {
		normalized, ok := normalizeReferredClientStatus(filter.Status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: status %q", ErrReferredClientInvalid, filter.Status)
		}
		filter.Status = normalized
	}
	return s.repo.ListReferredClients(filter)
}

// RecordRevenue 登记被推荐客户营收并触发佣金计提
// 队列可用时异步入账，否则同步入账
func (s *AffiliateService) RecordRevenue(clientID, amount string) (*RevenueResult, error) {
	revenue, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || !revenue.IsPositive() {
		return nil, fmt.Errorf("%w: %q", ErrRevenueAmountInvalid, amount)
	}
	revenue = revenue.Round(2)

	setting, err := s.settingService.GetAffiliateSetting()
	if err != nil {
		return nil, err
	}

	var (
		client       *models.ReferredClient
		firstRevenue bool
	)
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		row, err := repoTx.GetReferredClientByIDForUpdate(strings.TrimSpace(clientID))
		if err != nil {
			return err
		}
		if row == nil {
			return ErrReferredClientNotFound
		}
		firstRevenue = row.AmountGenerated.IsZero()
		now := time.Now()
		row.AmountGenerated = models.NewMoneyFromDecimal(row.AmountGenerated.Decimal.Add(revenue))
		row.LastActivityDate = &now
		row.UpdatedAt = now
		if err := repoTx.UpdateReferredClient(row); err != nil {
			return err
		}
		client = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &RevenueResult{Client: client, Commission: "0.00"}
	if setting.CommissionType == constants.CommissionTypeOneTime && !firstRevenue {
		return result, nil
	}
	result.Commission = commission.Accrual(revenue, setting.RateDecimal()).StringFixed(2)

	payload := queue.CommissionAccruePayload{
		AffiliateID:      client.AffiliateID,
		ReferredClientID: client.ID,
		Revenue:          revenue.StringFixed(2),
	}
	queued, err := s.queueClient.EnqueueCommissionAccrue(payload)
	if err != nil {
		logger.Warnw("affiliate_commission_enqueue_failed", "referred_client_id", client.ID, "error", err)
	}
	if queued {
		result.Queued = true
		return result, nil
	}
	if _, err := s.ApplyCommissionAccrual(payload); err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyCommissionAccrual 按当前佣金比例入账，并刷新活跃客户数
func (s *AffiliateService) ApplyCommissionAccrual(payload queue.CommissionAccruePayload) (decimal.Decimal, error) {
	revenue, err := decimal.NewFromString(strings.TrimSpace(payload.Revenue))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrRevenueAmountInvalid, payload.Revenue)
	}
	setting, err := s.settingService.GetAffiliateSetting()
	if err != nil {
		return decimal.Zero, err
	}
	amount := commission.Accrual(revenue, setting.RateDecimal())

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		affiliate, err := repoTx.GetByIDForUpdate(strings.TrimSpace(payload.AffiliateID))
		if err != nil {
			return err
		}
		if affiliate == nil {
			return ErrAffiliateNotFound
		}
		if amount.IsPositive() {
			if err := repoTx.AddCommission(affiliate.ID, amount); err != nil {
				return err
			}
		}
		return refreshActiveReferrals(repoTx, affiliate.ID)
	})
	if err != nil {
		return decimal.Zero, err
	}
	logger.Infow("affiliate_commission_accrued",
		"affiliate_id", payload.AffiliateID,
		"referred_client_id", payload.ReferredClientID,
		"revenue", revenue.StringFixed(2),
		"commission", amount.StringFixed(2),
	)
	return amount, nil
}

func refreshActiveReferrals(repo repository.AffiliateRepository, affiliateID string) error {
	count, err := repo.CountActiveReferredClients(affiliateID)
	if err != nil {
		return err
	}
	return repo.SetActiveReferrals(affiliateID, int(count))
}

func mergePaymentDetails(dst *models.AffiliatePaymentDetails, input AffiliatePaymentDetailsInput) {
	if input.PaypalEmail != nil {
		dst.PaypalEmail = strings.TrimSpace(*input.PaypalEmail)
	}
	if input.BankInfo != nil {
		dst.BankInfo = strings.TrimSpace(*input.BankInfo)
	}
	if input.NequiDaviplata != nil {
		dst.NequiDaviplata = strings.TrimSpace(*input.NequiDaviplata)
	}
}

func mapCommissionError(err error) error {
	switch {
	case errors.Is(err, commission.ErrInvalidAmount):
		return fmt.Errorf("%w: %v", ErrPayoutAmountInvalid, err)
	case errors.Is(err, commission.ErrInvalidMethod):
		return fmt.Errorf("%w: %v", ErrPayoutMethodInvalid, err)
	default:
		return err
	}
}

func normalizeAffiliateStatus(raw string) (string, bool) {
	return matchStatus(raw, constants.AffiliateStatusActive, constants.AffiliateStatusInactive)
}

func normalizePayoutStatus(raw string) (string, bool) {
	return matchStatus(raw, constants.PayoutStatusPending, constants.PayoutStatusPaid, constants.PayoutStatusFailed)
}

func normalizeReferredClientStatus(raw string) (string, bool) {
	return matchStatus(raw,
		constants.ReferredClientStatusActive,
		constants.ReferredClientStatusTrial,
		constants.ReferredClientStatusCancelled,
	)
}

func matchStatus(raw string, allowed ...string) (string, bool) {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range allowed {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
