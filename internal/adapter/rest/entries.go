package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/notebook"
)

type EntryHandler struct {
	Notebook *notebook.NotebookService
	Logger   *zap.Logger
}

func (h *EntryHandler) Register(g *gin.RouterGroup) {
	g.POST("/entries", h.create)
	g.GET("/entries", h.list)
	g.GET("/entries/:id", h.get)
	g.PATCH("/entries/:id", h.update)
	g.DELETE("/entries/:id", h.delete)
}

type entryRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

// entryPatchRequest leaves absent fields untouched
type entryPatchRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Mood    *string   `json:"mood"`
	Tags    *[]string `json:"tags"`
}

type entryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toEntryResponse(e *domain.JournalEntry) entryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return entryResponse{
		ID:        e.ID.String(),
		Title:     e.Title,
		Content:   e.Content,
		Mood:      string(e.Mood),
		Tags:      tags,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (h *EntryHandler) create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	entry, err := h.Notebook.CreateEntry(c.Request.Context(), notebook.CreateEntryInput{
		UserID: userID,
		Entry: domain.EntryInput{
			Title:   req.Title,
			Content: req.Content,
			Mood:    req.Mood,
			Tags:    req.Tags,
		},
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Created(c, toEntryResponse(entry))
}

// list serves search (q), mood and tag filters; they may be combined
func (h *EntryHandler) list(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid limit", nil)
		return
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid offset", nil)
		return
	}

	page, err := h.Notebook.ListEntries(c.Request.Context(), notebook.ListEntriesInput{
		UserID: userID,
		Query:  c.Query("q"),
		Mood:   c.Query("mood"),
		Tag:    c.Query("tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	items := make([]entryResponse, 0, len(page.Entries))
	for _, e := range page.Entries {
		items = append(items, toEntryResponse(e))
	}

	Ok(c, items, map[string]any{
		"total":  page.TotalCount,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *EntryHandler) get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	entry, err := h.Notebook.GetEntry(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, toEntryResponse(entry), nil)
}

func (h *EntryHandler) update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var req entryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	entry, err := h.Notebook.UpdateEntry(c.Request.Context(), notebook.UpdateEntryInput{
		UserID:  userID,
		EntryID: id,
		Update: domain.EntryUpdate{
			Title:   req.Title,
			Content: req.Content,
			Mood:    req.Mood,
			Tags:    req.Tags,
		},
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, toEntryResponse(entry), nil)
}

func (h *EntryHandler) delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	if err := h.Notebook.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		writeError(c, h.Logger, err)
		return
	}

	Ok(c, gin.H{"id": id.String(), "deleted": true}, nil)
}
