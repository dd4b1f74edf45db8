package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-schema/internal/service"
	"github.com/d60-Lab/social-schema/pkg/response"
)

type postRequest struct {
	Text   string  `json:"text" binding:"required"`
	URLImg *string `json:"url_img"`
}

type commentRequest struct {
	Comments string `json:"comments" binding:"required"`
}

// CreatePost 发帖
// @Summary 发布帖子，作者为当前用户
// @Tags 帖子
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body postRequest true "帖子内容"
// @Success 201 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.Create(c.Request.Context(), uid, service.PostInput{Text: req.Text, URLImg: req.URLImg})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p.Serialize())
}

// GetPost 帖子详情
// @Summary 查询帖子
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p.Serialize())
}

// UpdatePost 编辑帖子
// @Summary 修改 text / url_img（仅作者）
// @Tags 帖子
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param request body postRequest true "帖子内容"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 403 {object} response.Response
// @Router /api/v1/posts/{id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.Update(c.Request.Context(), uid, id, service.PostInput{Text: req.Text, URLImg: req.URLImg})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p.Serialize())
}

// DeletePost 删除帖子
// @Summary 删除帖子及其点赞、评论（仅作者）
// @Tags 帖子
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	if err := h.postService.Delete(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// LikePost 点赞
// @Summary 点赞帖子，likes 计数 +1
// @Tags 点赞
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Success 201 {object} response.Response{data=map[string]interface{}}
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	like, err := h.likeService.Like(c.Request.Context(), uid, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, like.Serialize())
}

// UnlikePost 取消点赞
// @Summary 取消点赞，likes 计数 -1
// @Tags 点赞
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/like [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	if err := h.likeService.Unlike(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPostLikes 帖子的点赞
// @Summary 查询帖子点赞记录
// @Tags 点赞
// @Param id path int true "帖子ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts/{id}/likes [get]
func (h *Handler) ListPostLikes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.likeService.ListByPost(c.Request.Context(), id, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}

// CreateComment 评论
// @Summary 评论帖子
// @Tags 评论
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.commentService.Create(c.Request.Context(), uid, id, req.Comments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cm.Serialize())
}

// ListPostComments 帖子的评论
// @Summary 查询帖子评论
// @Tags 评论
// @Param id path int true "帖子ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListPostComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	list, err := h.commentService.ListByPost(c.Request.Context(), id, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageResult(page, pageSize, list))
}

// UpdateComment 编辑评论
// @Summary 修改评论内容（仅评论作者）
// @Tags 评论
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 403 {object} response.Response
// @Router /api/v1/comments/{id} [patch]
func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.commentService.Update(c.Request.Context(), uid, id, req.Comments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cm.Serialize())
}

// DeleteComment 删除评论
// @Summary 删除评论（评论作者或帖子作者）
// @Tags 评论
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := actor(c)
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
