package authz

import (
	"fmt"

	"github.com/vitrina-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
// superadmin 拥有全部后台接口；sme 可管理店铺业务，但不能管理后台账号与权限
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.AdminRoleSuperadmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: constants.AdminRoleSME,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/password", Action: "PUT"},
				{Object: "/admin/dashboard/summary", Action: "GET"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/*", Action: "*"},
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/admin/content/*", Action: "POST"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/*", Action: "*"},
				{Object: "/admin/affiliates", Action: "*"},
				{Object: "/admin/affiliates/*", Action: "*"},
				{Object: "/admin/referred-clients", Action: "*"},
				{Object: "/admin/referred-clients/*", Action: "*"},
				{Object: "/admin/payouts", Action: "*"},
				{Object: "/admin/payouts/*", Action: "*"},
				{Object: "/admin/settings/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，已存在的策略不会重复写入
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		for _, p := range seed.Policies {
			if err := s.GrantRolePolicy(seed.Role, p.Object, p.Action); err != nil {
				return fmt.Errorf("seed role %s: %w", seed.Role, err)
			}
		}
	}
	return nil
}
