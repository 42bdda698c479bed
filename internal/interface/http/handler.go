package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/postforge/postforge/internal/domain/campaigns"
	"github.com/postforge/postforge/internal/domain/posts"
	apperrors "github.com/postforge/postforge/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	postsSvc     posts.Service
	campaignsSvc campaigns.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(postsSvc posts.Service, campaignsSvc campaigns.Service, logger *slog.Logger) *Handler {
	return &Handler{
		postsSvc:     postsSvc,
		campaignsSvc: campaignsSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// PreviewPost drafts a post without persisting it.
func (h *Handler) PreviewPost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req posts.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.UserID = userID

	resp, err := h.postsSvc.Preview(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, postError(err, "preview_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GeneratePost runs the full generation pipeline and persists the result.
func (h *Handler) GeneratePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req posts.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.UserID = userID

	resp, err := h.postsSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, postError(err, "generation_failed"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPosts returns the user's posts, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	records, err := h.postsSvc.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, postError(err, "post_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": records})
}

// GetPost returns one post.
func (h *Handler) GetPost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	record, err := h.postsSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		abortWithError(c, postError(err, "post_failed"))
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeletePost removes one post.
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.postsSvc.Delete(c.Request.Context(), userID, id); err != nil {
		abortWithError(c, postError(err, "post_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// SchedulePost stamps a publish time on a draft.
func (h *Handler) SchedulePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req posts.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	record, err := h.postsSvc.Schedule(c.Request.Context(), userID, id, req)
	if err != nil {
		abortWithError(c, postError(err, "post_failed"))
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateCampaign registers a new campaign.
func (h *Handler) CreateCampaign(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req campaigns.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.UserID = userID

	record, err := h.campaignsSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, postError(err, "campaign_failed"))
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListCampaigns returns the user's campaigns.
func (h *Handler) ListCampaigns(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	records, err := h.campaignsSvc.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, postError(err, "campaign_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": records})
}

// GetCampaign returns one campaign.
func (h *Handler) GetCampaign(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	record, err := h.campaignsSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		abortWithError(c, postError(err, "campaign_failed"))
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteCampaign removes one campaign.
func (h *Handler) DeleteCampaign(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.campaignsSvc.Delete(c.Request.Context(), userID, id); err != nil {
		abortWithError(c, postError(err, "campaign_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

func requireUser(c *gin.Context) (int64, bool) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth claims", nil))
		return 0, false
	}
	return claims.UserID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid id", err))
		return uuid.UUID{}, false
	}
	return id, true
}

func postError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "llm_error"):
		status = http.StatusBadGateway
		code = "llm_error"
	case apperrors.IsCode(err, "embedding_error"):
		status = http.StatusBadGateway
		code = "embedding_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
