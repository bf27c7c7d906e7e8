package service

import (
	"unicode"

	"github.com/vitrina-next/internal/config"
)

// bcryptMaxBytes bcrypt 只取前 72 字节，超出部分会被静默忽略
const bcryptMaxBytes = 72

// passwordPolicyError 携带 i18n key 与参数，由 handler 翻译
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordPolicyError) Key() string {
	return e.key
}

func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

type passwordClass struct {
	enabled bool
	key     string
	match   func(rune) bool
}

func isSpecialRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

// validatePassword 按策略校验密码，按长度、大写、小写、数字、特殊字符的顺序返回首个不满足项
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if len(password) > bcryptMaxBytes {
		return passwordPolicyError{key: "error.password_too_long", args: []interface{}{bcryptMaxBytes}}
	}
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	classes := []passwordClass{
		{enabled: policy.RequireUpper, key: "error.password_require_upper", match: unicode.IsUpper},
		{enabled: policy.RequireLower, key: "error.password_require_lower", match: unicode.IsLower},
		{enabled: policy.RequireNumber, key: "error.password_require_number", match: unicode.IsDigit},
		{enabled: policy.RequireSpecial, key: "error.password_require_special", match: isSpecialRune},
	}
	for _, class := range classes {
		if !class.enabled || containsRune(password, class.match) {
			continue
		}
		return passwordPolicyError{key: class.key}
	}
	return nil
}

func containsRune(s string, match func(rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}
