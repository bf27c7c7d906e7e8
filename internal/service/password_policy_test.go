package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/vitrina-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	strict := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true, RequireSpecial: true}
	cases := []struct {
		name     string
		policy   config.PasswordPolicyConfig
		password string
		wantKey  string
	}{
		{name: "no policy", policy: config.PasswordPolicyConfig{}, password: "x"},
		{name: "too short", policy: strict, password: "Ab1!", wantKey: "error.password_min_length"},
		{name: "missing upper", policy: strict, password: "abcdef1!", wantKey: "error.password_require_upper"},
		{name: "missing lower", policy: strict, password: "ABCDEF1!", wantKey: "error.password_require_lower"},
		{name: "missing number", policy: strict, password: "Abcdefg!", wantKey: "error.password_require_number"},
		{name: "missing special", policy: strict, password: "Abcdefg1", wantKey: "error.password_require_special"},
		{name: "space is not special", policy: strict, password: "Abcdef 1", wantKey: "error.password_require_special"},
		{name: "accented ok", policy: strict, password: "Contraseña1!"},
		{name: "too long", policy: config.PasswordPolicyConfig{}, password: strings.Repeat("a", 73), wantKey: "error.password_too_long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.policy, tc.password)
			if tc.wantKey == "" {
				if err != nil {
					t.Fatalf("want nil got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("want ErrWeakPassword got %v", err)
			}
			var policyErr passwordPolicyError
			if !errors.As(err, &policyErr) || policyErr.Key() != tc.wantKey {
				t.Fatalf("want key %s got %v", tc.wantKey, err)
			}
		})
	}
}
