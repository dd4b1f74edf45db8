package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-schema/internal/service"
	"github.com/d60-Lab/social-schema/pkg/response"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type activeRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register 注册
// @Summary 注册用户（is_active 缺省为 true）
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	u, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		IsActive: active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, u.Serialize())
}

// ListUsers 用户列表
// @Summary 分页查询用户
// @Tags 用户
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	list, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}

// GetUser 用户详情
// @Summary 查询用户
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, u.Serialize())
}

// SetActive 启用/停用账号
// @Summary 修改 is_active（仅本人）
// @Tags 用户
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body activeRequest true "状态"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{id}/active [patch]
func (h *Handler) SetActive(c *gin.Context) {
	id, ok := self(c)
	if !ok {
		return
	}
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.userService.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	u, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, u.Serialize())
}

// ChangePassword 修改密码
// @Summary 修改密码（仅本人，需要旧密码）
// @Tags 用户
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body passwordRequest true "新旧密码"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/users/{id}/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	id, ok := self(c)
	if !ok {
		return
	}
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.userService.ChangePassword(c.Request.Context(), id, service.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteUser 注销账号
// @Summary 删除用户及其帖子、关注、点赞、评论（仅本人）
// @Tags 用户
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := self(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListUserPosts 用户的帖子
// @Summary 查询用户帖子（新的在前）
// @Tags 用户
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/posts [get]
func (h *Handler) ListUserPosts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.postService.ListByUser(c.Request.Context(), id, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}

// ListUserLikes 用户的点赞
// @Summary 查询用户点赞记录
// @Tags 用户
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/likes [get]
func (h *Handler) ListUserLikes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.likeService.ListByUser(c.Request.Context(), id, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}

// ListUserComments 用户的评论
// @Summary 查询用户评论
// @Tags 用户
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/comments [get]
func (h *Handler) ListUserComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.commentService.ListByUser(c.Request.Context(), id, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}
