package models

import (
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultBootstrapPassword = "superpassword"

// InitDefaultAdmin 初始化默认超级管理员账号
func InitDefaultAdmin(name, email, password string) error {
	var count int64
	if err := DB.Model(&AdminAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "superadmin@example.com"
	}
	if strings.TrimSpace(name) == "" {
		name = "Super Admin"
	}
	if password == "" {
		password = defaultBootstrapPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := AdminAccount{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.AdminRoleSuperadmin,
		Status:       constants.AdminStatusActive,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultBootstrapPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Infow("default_admin_created", "email", email)
	}
	return nil
}
