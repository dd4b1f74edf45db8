package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-schema/internal/api/middleware"
	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/service"
	"github.com/d60-Lab/social-schema/pkg/response"
)

type Handler struct {
	userService    service.UserService
	postService    service.PostService
	relService     service.RelationshipService
	likeService    service.LikeService
	commentService service.CommentService
	authService    service.AuthService
}

func New(s *service.Services) *Handler {
	return &Handler{
		userService:    s.Users,
		postService:    s.Posts,
		relService:     s.Relation,
		likeService:    s.Likes,
		commentService: s.Comments,
		authService:    s.Auth,
	}
}

// pathID 解析路径中的正整数 id，失败时已写 400 响应
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return service.NormalizePage(page, pageSize)
}

func pageResult[T model.Serializer](page, pageSize int, items []T) gin.H {
	return gin.H{"page": page, "page_size": pageSize, "list": model.SerializeAll(items)}
}

// actor 返回当前登录用户；路由已挂 JWTAuth 时总是存在
func actor(c *gin.Context) (int64, bool) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
	}
	return uid, ok
}

// self 要求登录用户就是路径上的用户
func self(c *gin.Context) (int64, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	uid, ok := actor(c)
	if !ok {
		return 0, false
	}
	if uid != id {
		response.Forbidden(c, "can only modify your own account")
		return 0, false
	}
	return id, true
}
