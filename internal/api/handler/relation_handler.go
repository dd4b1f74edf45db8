package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-schema/pkg/response"
)

type followRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

// Follow 关注用户，关注者为当前登录用户
// @Summary 关注用户
// @Tags 关系链
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body followRequest true "被关注的用户"
// @Success 201 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	edge, err := h.relService.Follow(c.Request.Context(), uid, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, edge.Serialize())
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body followRequest true "取消关注的用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), uid, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CheckFollow 查询关注关系
// @Summary 查询 follower 是否关注了 followed
// @Tags 关系链
// @Param follower query int true "关注者ID"
// @Param followed query int true "被关注者ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/check [get]
func (h *Handler) CheckFollow(c *gin.Context) {
	follower, err1 := strconv.ParseInt(c.Query("follower"), 10, 64)
	followed, err2 := strconv.ParseInt(c.Query("followed"), 10, 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(c, "follower and followed are required")
		return
	}
	ok, err := h.relService.IsFollowing(c.Request.Context(), follower, followed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id_follower": follower, "id_followed": followed, "following": ok})
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.relService.ListFollowing(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.relService.ListFollowers(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}
