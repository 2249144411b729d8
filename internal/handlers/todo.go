package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/auth"
	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"
	"taskflow/internal/dto"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create godoc
// @Summary      Create a todo
// @Description  Missing category or priority is filled in by the classifier unless skip_ai is set.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.CreateTodoResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := createInput(req)
	if err != nil {
		writeError(c, err)
		return
	}

	t, sug, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateTodoResponse{
		Todo:         todoToResponse(t),
		AISuggestion: suggestionToResponse(sug),
	})
}

// List godoc
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        filter  query     string  false  "all, active or completed"
// @Success      200     {object}  dto.ListTodosResponse
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	filter, err := dom.ParseFilter(c.Query("filter"))
	if err != nil {
		writeError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: todosToResponses(list)})
}

// Stats godoc
// @Summary      Todo counts by state and quadrant
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/stats [get]
func (h *TodoHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		Total:         st.Total,
		Completed:     st.Completed,
		Active:        st.Active,
		Uncategorized: st.Uncategorized,
		DoFirst:       st.ByQuadrant[dom.QuadrantDoFirst],
		Schedule:      st.ByQuadrant[dom.QuadrantSchedule],
		Delegate:      st.ByQuadrant[dom.QuadrantDelegate],
		DoLater:       st.ByQuadrant[dom.QuadrantDoLater],
	})
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Update godoc
// @Summary      Update a todo
// @Description  Partial update. Setting a quadrant alone snaps urgency and importance to its canonical scores.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "Partial update"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos/{id} [patch]
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch, err := updatePatch(req)
	if err != nil {
		writeError(c, err)
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Security     CookieAuth
// @Param        id   path  string  true  "Todo ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary      Mark a todo as done
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id}/complete [post]
func (h *TodoHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Complete(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Search godoc
// @Summary      Search todos by query
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        q    query     string  true  "Search query (title/description)"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/search [get]
func (h *TodoHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), auth.UserIDFromContext(c), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: todosToResponses(list)})
}

// Overdue godoc
// @Summary      List overdue todos
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/overdue [get]
func (h *TodoHandler) Overdue(c *gin.Context) {
	list, err := h.svc.Overdue(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: todosToResponses(list)})
}

// AutoCategorize godoc
// @Summary      Classify every uncategorized todo
// @Description  Tasks the classifier could not handle are listed in failed and left unchanged.
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.AutoCategorizeResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/auto-categorize [post]
func (h *TodoHandler) AutoCategorize(c *gin.Context) {
	res, err := h.svc.AutoCategorize(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AutoCategorizeResponse{
		Updated:      todosToResponses(res.Updated),
		Failed:       res.Failed,
		UpdatedCount: len(res.Updated),
		FailedCount:  len(res.Failed),
	})
}

func parseID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return "", false
	}
	return raw, true
}

// writeError maps service errors to status codes.
func writeError(c *gin.Context, err error) {
	var verr *dom.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func createInput(req dto.CreateTodoRequest) (service.CreateInput, error) {
	in := service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Urgency:     req.Urgency,
		Importance:  req.Importance,
		DueDate:     req.DueDate.Ptr(),
		SkipAI:      req.SkipAI,
	}
	if req.Quadrant != nil {
		q, err := dom.ParseQuadrant(*req.Quadrant)
		if err != nil {
			return service.CreateInput{}, err
		}
		in.Quadrant = &q
	}
	return in, nil
}

func updatePatch(req dto.UpdateTodoRequest) (dom.TaskPatch, error) {
	var p dom.TaskPatch
	if req.Title != nil {
		p.Title = dom.Set(*req.Title)
	}
	if req.Description != nil {
		p.Description = dom.Set(*req.Description)
	}
	if req.Completed != nil {
		p.Completed = dom.Set(*req.Completed)
	}
	if req.Priority != nil {
		p.Priority = dom.Set(*req.Priority)
	}
	if req.Category != nil {
		p.Category = dom.Set(req.Category)
	}
	if req.Urgency != nil {
		p.Urgency = dom.Set(*req.Urgency)
	}
	if req.Importance != nil {
		p.Importance = dom.Set(*req.Importance)
	}
	if req.Quadrant != nil {
		q, err := dom.ParseQuadrant(*req.Quadrant)
		if err != nil {
			return dom.TaskPatch{}, err
		}
		p.Quadrant = dom.Set(q)
	}
	if req.DueDate != nil {
		p.DueDate = dom.Set(req.DueDate.Ptr())
	}
	return p, nil
}

func todoToResponse(t dom.Task) dto.TodoResponse {
	var quadrant *string
	if t.Quadrant != nil {
		q := string(*t.Quadrant)
		quadrant = &q
	}
	return dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		Category:    t.Category,
		Urgency:     t.Urgency,
		Importance:  t.Importance,
		Quadrant:    quadrant,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Task) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}

func suggestionToResponse(s *classifier.Suggestion) *dto.SuggestionResponse {
	if s == nil {
		return nil
	}
	out := &dto.SuggestionResponse{
		Category:  s.Category,
		Priority:  s.Priority,
		Reasoning: s.Reasoning,
	}
	if s.HasMatrix() {
		u, i, q := s.Urgency, s.Importance, string(s.Quadrant)
		out.Urgency, out.Importance, out.Quadrant = &u, &i, &q
	}
	return out
}
