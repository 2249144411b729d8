package handlers

import (
	"net/http"
	"strings"

	"taskflow/internal/classifier"
	"taskflow/internal/dto"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes classifier suggestions without touching stored todos.
type AIHandler struct {
	matrix     classifier.Classifier
	categories classifier.Categorizer
}

func NewAIHandler(matrix classifier.Classifier, categories classifier.Categorizer) *AIHandler {
	return &AIHandler{matrix: matrix, categories: categories}
}

// Categorize godoc
// @Summary      Suggest a category and priority
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CategorizeRequest  true  "Task text"
// @Success      200   {object}  dto.CategorySuggestionResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /ai/categorize [post]
func (h *AIHandler) Categorize(c *gin.Context) {
	req, ok := bindCategorize(c)
	if !ok {
		return
	}
	sug, err := h.categories.Categorize(c.Request.Context(), req)
	if err == nil {
		err = classifier.ValidateCategorySuggestion(sug)
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "classifier unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.CategorySuggestionResponse{
		Category:  sug.Category,
		Priority:  sug.Priority,
		Reasoning: sug.Reasoning,
	})
}

// MatrixCategorize godoc
// @Summary      Suggest an Eisenhower quadrant
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CategorizeRequest  true  "Task text"
// @Success      200   {object}  dto.SuggestionResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /ai/matrix-categorize [post]
func (h *AIHandler) MatrixCategorize(c *gin.Context) {
	req, ok := bindCategorize(c)
	if !ok {
		return
	}
	sug, err := h.matrix.Classify(c.Request.Context(), req)
	if err == nil {
		err = classifier.ValidateSuggestion(sug)
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "classifier unavailable"})
		return
	}
	c.JSON(http.StatusOK, suggestionToResponse(&sug))
}

func bindCategorize(c *gin.Context) (classifier.Request, bool) {
	var req dto.CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return classifier.Request{}, false
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return classifier.Request{}, false
	}
	return classifier.Request{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     req.DueDate.Ptr(),
	}, true
}
