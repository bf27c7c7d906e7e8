package admin

import (
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// GetBusinessSetting 获取商家设置
func (h *Handler) GetBusinessSetting(c *gin.Context) {
	setting, err := h.SettingService.GetBusinessSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, setting)
}

// UpdateBusinessSetting 保存商家设置
func (h *Handler) UpdateBusinessSetting(c *gin.Context) {
	var req service.BusinessSetting
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.UpdateBusinessSetting(req)
	if err != nil {
		respondMappedError(c, err, handlershared.SettingErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, setting)
}

// GetAffiliateSetting 获取推广计划设置
func (h *Handler) GetAffiliateSetting(c *gin.Context) {
	setting, err := h.SettingService.GetAffiliateSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, setting)
}

// UpdateAffiliateSetting 保存推广计划设置
func (h *Handler) UpdateAffiliateSetting(c *gin.Context) {
	var req service.AffiliateSetting
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.UpdateAffiliateSetting(req)
	if err != nil {
		respondMappedError(c, err, handlershared.SettingErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, setting)
}
