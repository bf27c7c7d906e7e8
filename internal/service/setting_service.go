package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/repository"

	"github.com/shopspring/decimal"
)

var errSettingNumber = errors.New("setting value is not a number")

// SettingService 键值设置的读写，业务设置在 business_setting.go / affiliate_setting.go 中组装
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 读取原始设置，不存在时返回 nil
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	row, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, fmt.Errorf("load setting %s: %w", key, err)
	}
	if row == nil {
		return nil, nil
	}
	return row.ValueJSON, nil
}

// Update 归一化后写入设置
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	row, err := s.repo.Upsert(key, normalizeSettingValueByKey(key, value))
	if err != nil {
		return nil, fmt.Errorf("save setting %s: %w", key, err)
	}
	return row.ValueJSON, nil
}

// settingNumber 把 JSON 解码后的数值或数字字符串统一成 decimal
func settingNumber(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return decimal.Zero, errSettingNumber
		}
		return decimal.NewFromString(text)
	default:
		return decimal.Zero, errSettingNumber
	}
}

func parseSettingFloat(raw interface{}) (float64, error) {
	number, err := settingNumber(raw)
	if err != nil {
		return 0, err
	}
	return number.InexactFloat64(), nil
}

// parseSettingInt 小数部分直接截断
func parseSettingInt(raw interface{}) (int, error) {
	number, err := settingNumber(raw)
	if err != nil {
		return 0, err
	}
	return int(number.IntPart()), nil
}
