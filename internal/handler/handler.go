package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"therapy-directory/internal/auth"
	"therapy-directory/internal/middleware"
	"therapy-directory/internal/model"
	"therapy-directory/internal/service"
)

type Handler struct {
	db        *gorm.DB
	reviews   *service.ReviewService
	prompts   *service.PromptService
	summary   *service.SummaryService
	assistant *service.AssistantService
	llm       *service.LLMService
	status    *service.StatusService
	tokens    *auth.TokenManager
	scheduler interface {
		GetNextSweepTime() time.Time
		GetNextRecomputeTime() time.Time
	}
}

func NewHandler(
	db *gorm.DB,
	reviews *service.ReviewService,
	prompts *service.PromptService,
	summary *service.SummaryService,
	assistant *service.AssistantService,
	llm *service.LLMService,
	status *service.StatusService,
	tokens *auth.TokenManager,
) *Handler {
	return &Handler{
		db:        db,
		reviews:   reviews,
		prompts:   prompts,
		summary:   summary,
		assistant: assistant,
		llm:       llm,
		status:    status,
		tokens:    tokens,
	}
}

// SetScheduler wires the scheduler reference for the status endpoint.
func (h *Handler) SetScheduler(scheduler interface {
	GetNextSweepTime() time.Time
	GetNextRecomputeTime() time.Time
}) {
	h.scheduler = scheduler
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/auth/login", h.Login)

		api.GET("/therapists", h.ListTherapists)
		api.GET("/therapists/:slug", h.GetTherapist)
		api.GET("/summaries/:therapistId", h.GetReviewSummary)
		api.POST("/reviews", h.SubmitReview)

		api.GET("/specialties", h.ListSpecialties)

		api.GET("/blog", h.ListBlogPosts)
		api.GET("/blog-categories", h.ListBlogCategories)
		api.GET("/blog/:slug", h.GetBlogPost)

		api.GET("/services", h.ListServices)
		api.GET("/services/:slug", h.GetService)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.Auth(h.tokens), middleware.AdminOnly())
	{
		admin.POST("/therapists", h.CreateTherapist)
		admin.PUT("/therapists/:id", h.UpdateTherapist)
		admin.DELETE("/therapists/:id/summary-cache", h.ClearSummaryCache)

		admin.POST("/reviews/:id/approval", h.SetReviewApproval)

		admin.POST("/blog", h.CreateBlogPost)
		admin.PUT("/blog/:id", h.UpdateBlogPost)

		admin.GET("/prompts/:name", h.GetPromptConfig)
		admin.POST("/prompts/:name", h.UpdatePromptConfig)
		admin.POST("/prompt-test", h.TestPrompt)

		admin.POST("/ai/bio", h.GenerateBio)
		admin.POST("/ai/rewrite", h.RewriteText)
		admin.POST("/ai/blog", h.GenerateBlogContent)
		admin.POST("/ai/service-description", h.GenerateServiceDescription)
		admin.POST("/ai/improve", h.ImproveContent)

		admin.GET("/llm/settings", h.GetLLMSettings)
		admin.POST("/llm/settings", h.SaveLLMSettings)
		admin.GET("/llm/models", h.GetLLMModels)
		admin.POST("/llm/test", h.TestLLMConnection)

		admin.GET("/status", h.GetStatus)
	}
}

// ===== Auth =====

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.db.Model(&user).Update("last_signed_in", time.Now())

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// ===== Therapists =====

func (h *Handler) ListTherapists(c *gin.Context) {
	query := h.db.Model(&model.Therapist{}).Where("is_active = ?", true)

	if specialtyID, err := strconv.Atoi(c.Query("specialty_id")); err == nil {
		query = query.
			Joins("JOIN therapist_specialties ts ON ts.therapist_id = therapists.id").
			Where("ts.specialty_id = ?", specialtyID)
	}

	var therapists []model.Therapist
	if err := query.Order("name ASC").Find(&therapists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, therapists)
}

func (h *Handler) GetTherapist(c *gin.Context) {
	slug := c.Param("slug")

	var therapist model.Therapist
	if err := h.db.Where("slug = ?", slug).First(&therapist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
		return
	}

	var specialties []model.Specialty
	h.db.
		Joins("JOIN therapist_specialties ts ON ts.specialty_id = specialties.id").
		Where("ts.therapist_id = ?", therapist.ID).
		Find(&specialties)

	reviews, err := h.reviews.ListByTherapist(therapist.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"therapist":   therapist,
		"specialties": specialties,
		"reviews":     reviews,
	})
}

// GetReviewSummary is the public summary read. force=true regenerates
// regardless of a valid cached entry.
func (h *Handler) GetReviewSummary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("therapistId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	force := c.Query("force") == "true"

	result, err := h.summary.GetReviewSummary(c.Request.Context(), uint(id), force)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===== Reviews =====

type submitReviewRequest struct {
	TherapistID  uint   `json:"therapist_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText   string `json:"review_text"`
	ReviewerName string `json:"reviewer_name"`
}

func (h *Handler) SubmitReview(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review := model.Review{
		TherapistID:  req.TherapistID,
		Rating:       req.Rating,
		ReviewText:   req.ReviewText,
		ReviewerName: req.ReviewerName,
	}

	if err := h.reviews.Submit(&review); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, review)
}

// ===== Specialties =====

func (h *Handler) ListSpecialties(c *gin.Context) {
	var specialties []model.Specialty
	if err := h.db.Order("name ASC").Find(&specialties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, specialties)
}

// ===== Blog =====

func (h *Handler) ListBlogPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize := 20

	query := h.db.Model(&model.BlogPost{}).Where("is_published = ?", true)

	if categoryID, err := strconv.Atoi(c.Query("category_id")); err == nil {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	query.Count(&total)

	var posts []model.BlogPost
	query.Order("published_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts)

	c.JSON(http.StatusOK, gin.H{
		"data":  posts,
		"total": total,
		"page":  page,
	})
}

func (h *Handler) GetBlogPost(c *gin.Context) {
	slug := c.Param("slug")

	var post model.BlogPost
	if err := h.db.Where("slug = ? AND is_published = ?", slug, true).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
		return
	}

	h.db.Model(&post).Update("view_count", gorm.Expr("view_count + 1"))

	c.JSON(http.StatusOK, post)
}

func (h *Handler) ListBlogCategories(c *gin.Context) {
	var categories []model.BlogCategory
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ===== Services =====

func (h *Handler) ListServices(c *gin.Context) {
	var services []model.Service
	err := h.db.Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&services).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	slug := c.Param("slug")

	var svc model.Service
	if err := h.db.Where("slug = ? AND is_active = ?", slug, true).First(&svc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}
