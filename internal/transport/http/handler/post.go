package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-blog-api/internal/core/cache"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/middleware"
	"go-blog-api/internal/transport/http/response"
	"go-blog-api/pkg/utils"
)

const postCacheTTL = 5 * time.Minute

type PostHandler struct {
	posts domain.PostRepository
	cache *cache.Cache // nil when redis is not configured
}

func NewPostHandler(posts domain.PostRepository, c *cache.Cache) *PostHandler {
	return &PostHandler{posts: posts, cache: c}
}

type postIn struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (in *postIn) validate() string {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		return "Title and content are required"
	}
	if len(in.Title) > domain.MaxTitleLen {
		return "Title cannot exceed 200 characters"
	}
	return ""
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// List is public: paginated, newest first, optional search over
// title/content and exact author filter.
func (h *PostHandler) List(c *gin.Context) {
	page := atoiDefault(c.Query("page"), 1)
	limit := atoiDefault(c.Query("limit"), 10)
	if limit > 100 {
		limit = 100
	}

	posts, total, err := h.posts.List(domain.PostFilter{
		Search:   c.Query("search"),
		AuthorID: c.Query("author"),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		h.internal(c, err)
		return
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	response.OK(c, http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	})
}

// Get is public. Reads go through redis with singleflight when configured.
func (h *PostHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var p *domain.Post
	var err error
	if h.cache != nil {
		p, err = cache.GetOrLoadJSON[domain.Post](h.cache, c.Request.Context(), postKey(id), postCacheTTL,
			func(ctx context.Context) (*domain.Post, error) {
				return h.posts.FindByID(id)
			})
	} else {
		p, err = h.posts.FindByID(id)
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	if p == nil {
		response.Fail(c, http.StatusNotFound, "Post not found")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"post": p})
}

func (h *PostHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	var in postIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := in.validate(); msg != "" {
		response.Fail(c, http.StatusBadRequest, msg)
		return
	}

	p := &domain.Post{
		ID:       utils.NewID(),
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: u.ID,
	}
	if err := h.posts.Create(p); err != nil {
		h.internal(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"message": "Post created successfully", "post": p})
}

// Update is allowed for the post's author or an admin; the author
// reference itself never changes.
func (h *PostHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	var in postIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := in.validate(); msg != "" {
		response.Fail(c, http.StatusBadRequest, msg)
		return
	}

	id := c.Param("id")
	p, err := h.posts.FindByID(id)
	if err != nil {
		h.internal(c, err)
		return
	}
	if p == nil {
		response.Fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if p.AuthorID != u.ID && !u.IsAdmin() {
		response.Fail(c, http.StatusForbidden, "Not authorized to update this post")
		return
	}

	p.Title = in.Title
	p.Content = in.Content
	if err := h.posts.Update(p); err != nil {
		h.internal(c, err)
		return
	}
	h.invalidate(c, id)
	response.OK(c, http.StatusOK, gin.H{"message": "Post updated successfully", "post": p})
}

func (h *PostHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	id := c.Param("id")
	p, err := h.posts.FindByID(id)
	if err != nil {
		h.internal(c, err)
		return
	}
	if p == nil {
		response.Fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if p.AuthorID != u.ID && !u.IsAdmin() {
		response.Fail(c, http.StatusForbidden, "Not authorized to delete this post")
		return
	}

	if err := h.posts.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Post not found")
			return
		}
		h.internal(c, err)
		return
	}
	h.invalidate(c, id)
	response.OK(c, http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (h *PostHandler) invalidate(c *gin.Context, id string) {
	if h.cache != nil {
		h.cache.Delete(c.Request.Context(), postKey(id))
	}
}

func (h *PostHandler) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
}

func postKey(id string) string { return "post:" + id }

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
