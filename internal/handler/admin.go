package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"therapy-directory/internal/model"
	"therapy-directory/internal/service"
)

// ===== Therapists =====

type therapistRequest struct {
	Slug            string `json:"slug" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Credentials     string `json:"credentials"`
	Tagline         string `json:"tagline"`
	Bio             string `json:"bio"`
	PhotoURL        string `json:"photo_url"`
	YearsExperience int    `json:"years_experience"`
	Gender          string `json:"gender" binding:"omitempty,oneof=male female non-binary other"`
	LanguagesSpoken string `json:"languages_spoken"`
	LicenseState    string `json:"license_state"`
	LicenseNumber   string `json:"license_number"`
	LicenseExpiry   string `json:"license_expiry"`
	NPINumber       string `json:"npi_number"`
	AffiliateURL    string `json:"affiliate_url"`
}

func (h *Handler) CreateTherapist(c *gin.Context) {
	var req therapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	therapist := model.Therapist{
		Slug:            req.Slug,
		Name:            req.Name,
		Credentials:     req.Credentials,
		Tagline:         req.Tagline,
		Bio:             req.Bio,
		PhotoURL:        req.PhotoURL,
		YearsExperience: req.YearsExperience,
		Gender:          req.Gender,
		LanguagesSpoken: req.LanguagesSpoken,
		LicenseState:    req.LicenseState,
		LicenseNumber:   req.LicenseNumber,
		LicenseExpiry:   req.LicenseExpiry,
		NPINumber:       req.NPINumber,
		AffiliateURL:    req.AffiliateURL,
		IsActive:        true,
	}

	if err := h.db.Create(&therapist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, therapist)
}

func (h *Handler) UpdateTherapist(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	var therapist model.Therapist
	if err := h.db.First(&therapist, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"slug": true, "name": true, "credentials": true, "tagline": true,
		"bio": true, "photo_url": true, "years_experience": true,
		"gender": true, "languages_spoken": true, "license_state": true,
		"license_number": true, "license_expiry": true, "npi_number": true,
		"affiliate_url": true, "is_active": true,
	}
	for key := range updates {
		if !allowed[key] {
			delete(updates, key)
		}
	}

	if err := h.db.Model(&therapist).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, therapist)
}

// ClearSummaryCache wipes every cached summary for a therapist. Useful
// when new reviews arrived while a valid cache entry is still warm, or
// after a no-op template edit; a template change already invalidates
// naturally through the input hash.
func (h *Handler) ClearSummaryCache(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	if err := h.summary.ClearCache(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ===== Reviews =====

type approvalRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

func (h *Handler) SetReviewApproval(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reviews.SetApproval(uint(id), *req.IsApproved); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ===== Blog =====

type blogPostRequest struct {
	Slug             string     `json:"slug" binding:"required"`
	Title            string     `json:"title" binding:"required"`
	Excerpt          string     `json:"excerpt"`
	Content          string     `json:"content" binding:"required"`
	FeaturedImageURL string     `json:"featured_image_url"`
	CategoryID       uint       `json:"category_id"`
	IsPublished      bool       `json:"is_published"`
	PublishedAt      *time.Time `json:"published_at"`
}

func (h *Handler) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := model.BlogPost{
		Slug:             req.Slug,
		Title:            req.Title,
		Excerpt:          req.Excerpt,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
		AuthorID:         c.GetUint("uid"),
		CategoryID:       req.CategoryID,
		IsPublished:      req.IsPublished,
		PublishedAt:      req.PublishedAt,
	}
	if post.IsPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) UpdateBlogPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var post model.BlogPost
	if err := h.db.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"slug": true, "title": true, "excerpt": true, "content": true,
		"featured_image_url": true, "category_id": true,
		"is_published": true, "published_at": true,
	}
	for key := range updates {
		if !allowed[key] {
			delete(updates, key)
		}
	}

	if err := h.db.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ===== Prompt configuration =====

func (h *Handler) GetPromptConfig(c *gin.Context) {
	cfg, isDefault, err := h.prompts.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config":     cfg,
		"is_default": isDefault,
	})
}

type promptConfigRequest struct {
	PromptTemplate string `json:"prompt_template" binding:"required"`
	SystemMessage  string `json:"system_message"`
	Description    string `json:"description"`
}

func (h *Handler) UpdatePromptConfig(c *gin.Context) {
	var req promptConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.prompts.Upsert(c.Param("name"), req.PromptTemplate, req.SystemMessage, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "action": action})
}

type testPromptRequest struct {
	PromptTemplate string `json:"prompt_template" binding:"required"`
	SystemMessage  string `json:"system_message"`
	TherapistID    uint   `json:"therapist_id" binding:"required"`
}

func (h *Handler) TestPrompt(c *gin.Context) {
	var req testPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.summary.TestPrompt(c.Request.Context(), req.PromptTemplate, req.SystemMessage, req.TherapistID)
	if err != nil {
		if errors.Is(err, service.ErrNoReviews) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===== Writing assistant =====

func (h *Handler) GenerateBio(c *gin.Context) {
	var req service.BioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bio, err := h.assistant.GenerateBio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bio": bio})
}

func (h *Handler) RewriteText(c *gin.Context) {
	var req service.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.assistant.Rewrite(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *Handler) GenerateBlogContent(c *gin.Context) {
	var req service.BlogContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.assistant.GenerateBlogContent(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GenerateServiceDescription(c *gin.Context) {
	var req service.ServiceDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description, err := h.assistant.GenerateServiceDescription(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

func (h *Handler) ImproveContent(c *gin.Context) {
	var req service.ImproveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.assistant.ImproveContent(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===== LLM settings =====

// GetLLMSettings returns the provider settings as a key/value map so
// administrators can edit endpoint, key and model at runtime.
func (h *Handler) GetLLMSettings(c *gin.Context) {
	var configs []model.AppConfig
	if err := h.db.Find(&configs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := make(map[string]string)
	for _, cfg := range configs {
		result[cfg.Key] = cfg.Value
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) SaveLLMSettings(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for key, value := range input {
		h.db.Where("key = ?", key).
			Assign(model.AppConfig{Value: value}).
			FirstOrCreate(&model.AppConfig{Key: key})
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetLLMModels(c *gin.Context) {
	models, err := h.llm.GetModels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (h *Handler) TestLLMConnection(c *gin.Context) {
	response, err := h.llm.TestConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": response,
	})
}

// ===== Status =====

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.scheduler != nil {
		status.NextSweepTime = h.scheduler.GetNextSweepTime()
		status.NextRecomputeTime = h.scheduler.GetNextRecomputeTime()
	}

	c.JSON(http.StatusOK, status)
}
