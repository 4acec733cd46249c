package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/entity"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/service"
)

type PostServiceInterface interface {
	CreateCommunityPost(ctx context.Context, req *entity.CommunityPostRequest) *service.CommunityPostOutcome
	CreateReviewPost(ctx context.Context, req *entity.ReviewPostRequest) *service.ReviewPostOutcome
	CreateListPost(ctx context.Context, req *entity.ListPostRequest) *service.ListPostOutcome
}

// PostHandler is a thin transport shim: it binds JSON, checks that the
// body's user matches the token, and hands everything to the orchestrator.
// No validation or sequencing decisions live here.
type PostHandler struct {
	postService PostServiceInterface
}

func NewPostHandler(postService PostServiceInterface) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// ReviewPostForm is the raw form payload of the review screen. It goes
// through the fail-fast constructor, not through collect-and-report
// validation.
type ReviewPostForm struct {
	Description string  `json:"description"`
	UserID      int64   `json:"user_id"`
	SpotID      int64   `json:"spot_id"`
	Rating      float64 `json:"rating"`
}

func (h *PostHandler) CreateCommunityPost(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req entity.CommunityPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Request user does not match token"})
		return
	}

	outcome := h.postService.CreateCommunityPost(c.Request.Context(), &req)

	switch outcome.State {
	case service.StateRejected:
		c.JSON(http.StatusBadRequest, gin.H{"errors": outcome.ValidationErrors})
	case service.StateFailed:
		// The reached stage and the partial flag are surfaced so clients
		// can warn about a possibly orphaned hidden list.
		c.JSON(http.StatusBadGateway, gin.H{
			"stage":    outcome.Stage,
			"partial":  outcome.Partial,
			"response": outcome.Response,
		})
	default:
		c.JSON(http.StatusCreated, outcome.Response)
	}
}

func (h *PostHandler) CreateReviewPost(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var form ReviewPostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if form.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Request user does not match token"})
		return
	}

	req, err := entity.NewReviewPostRequestFromForm(form.Description, form.UserID, form.SpotID, form.Rating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.postService.CreateReviewPost(c.Request.Context(), req)

	switch outcome.State {
	case service.StateRejected:
		c.JSON(http.StatusBadRequest, gin.H{"errors": outcome.ValidationErrors})
	case service.StateFailed:
		c.JSON(http.StatusBadGateway, gin.H{"response": outcome.Response})
	default:
		c.JSON(http.StatusCreated, outcome.Response)
	}
}

func (h *PostHandler) CreateListPost(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req entity.ListPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Request user does not match token"})
		return
	}

	outcome := h.postService.CreateListPost(c.Request.Context(), &req)

	switch outcome.State {
	case service.StateRejected:
		c.JSON(http.StatusBadRequest, gin.H{"errors": outcome.ValidationErrors})
	case service.StateFailed:
		c.JSON(http.StatusBadGateway, gin.H{"response": outcome.Response})
	default:
		c.JSON(http.StatusCreated, outcome.Response)
	}
}

// authenticatedUserID pulls the user id the auth middleware stored. It
// writes the error response itself when the context has no valid user.
func authenticatedUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}

	id, ok := userID.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return 0, false
	}

	return id, true
}
