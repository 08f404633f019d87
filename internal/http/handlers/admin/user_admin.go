package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/repository"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 获取用户列表 (Admin)
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}

	users, total, err := h.UserService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetAdminUser 获取用户详情 (Admin)
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid user id", nil)
		return
	}

	user, err := h.UserService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	response.Success(c, user)
}

// UpdateUserStatusRequest 用户状态更新请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminUserStatus 封禁/解封用户
func (h *Handler) UpdateAdminUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid user id", nil)
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserService.UpdateStatus(uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserStatus):
			respondError(c, response.CodeBadRequest, "invalid user status", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		default:
			respondError(c, response.CodeInternal, "user update failed", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}
