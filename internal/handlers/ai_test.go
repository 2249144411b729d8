package handlers

import (
	"errors"
	"net/http"
	"testing"

	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"
	"taskflow/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIRouter(cl *stubClassifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAIHandler(cl, cl)
	e := gin.New()
	e.POST("/ai/categorize", h.Categorize)
	e.POST("/ai/matrix-categorize", h.MatrixCategorize)
	return e
}

func TestMatrixCategorize(t *testing.T) {
	cl := &stubClassifier{answers: map[string]classifier.Suggestion{
		"file taxes": {Category: "Finance", Urgency: 3, Importance: 3, Quadrant: dom.QuadrantDoFirst, Reasoning: "due soon"},
	}}
	router := newAIRouter(cl)

	w := do(t, router, http.MethodPost, "/ai/matrix-categorize", gin.H{"title": " file taxes "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.SuggestionResponse](t, w)
	assert.Equal(t, "Finance", resp.Category)
	assert.Equal(t, "do_first", *resp.Quadrant)
	assert.Equal(t, 3, *resp.Urgency)
	assert.Nil(t, resp.Priority)
}

func TestCategorize(t *testing.T) {
	cl := &stubClassifier{category: classifier.CategorySuggestion{Category: "Home", Priority: 2, Reasoning: "chore"}}
	router := newAIRouter(cl)

	w := do(t, router, http.MethodPost, "/ai/categorize", gin.H{"title": "fix sink"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CategorySuggestionResponse{Category: "Home", Priority: 2, Reasoning: "chore"},
		decode[dto.CategorySuggestionResponse](t, w))
}

func TestAIEndpointsRejectMissingTitle(t *testing.T) {
	router := newAIRouter(&stubClassifier{})
	for _, path := range []string{"/ai/categorize", "/ai/matrix-categorize"} {
		assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, path, gin.H{"description": "x"}).Code, path)
		assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, path, gin.H{"title": "  "}).Code, path)
	}
}

func TestAIEndpointsReportClassifierFailure(t *testing.T) {
	router := newAIRouter(&stubClassifier{err: &classifier.Error{Op: "classify", Err: errors.New("timeout")}})
	for _, path := range []string{"/ai/categorize", "/ai/matrix-categorize"} {
		assert.Equal(t, http.StatusBadGateway, do(t, router, http.MethodPost, path, gin.H{"title": "x"}).Code, path)
	}

	invalid := newAIRouter(&stubClassifier{
		answers:  map[string]classifier.Suggestion{"x": {Category: "Work", Urgency: 5, Importance: 1, Quadrant: dom.QuadrantDelegate}},
		category: classifier.CategorySuggestion{Category: "", Priority: 1},
	})
	for _, path := range []string{"/ai/categorize", "/ai/matrix-categorize"} {
		assert.Equal(t, http.StatusBadGateway, do(t, invalid, http.MethodPost, path, gin.H{"title": "x"}).Code, path)
	}
}
