package admin

import (
	"strconv"

	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type createAdminPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type updateAdminPayload struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// ListAdminAccounts 后台账号列表
func (h *Handler) ListAdminAccounts(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdminAccount 创建后台账号
func (h *Handler) CreateAdminAccount(c *gin.Context) {
	var req createAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, err := h.AuthService.CreateAdmin(service.CreateAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_account_created", "admin_id", admin.ID, "role", admin.Role)
	response.Success(c, admin)
}

// UpdateAdminAccount 更新后台账号的名称、角色或状态
func (h *Handler) UpdateAdminAccount(c *gin.Context) {
	operatorID, ok := getAdminID(c)
	if !ok {
		return
	}
	targetID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	var req updateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, err := h.AuthService.UpdateAdmin(operatorID, targetID, service.UpdateAdminInput{
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, admin)
}

// DeleteAdminAccount 删除后台账号，不能删除自己
func (h *Handler) DeleteAdminAccount(c *gin.Context) {
	operatorID, ok := getAdminID(c)
	if !ok {
		return
	}
	targetID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	if err := h.AuthService.DeleteAdmin(operatorID, targetID); err != nil {
		respondMappedError(c, err, handlershared.AdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parseAdminIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}
