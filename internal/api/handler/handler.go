package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apimodels "github.com/jon4hz/playbox/internal/api/models"
	"github.com/jon4hz/playbox/internal/facade"
	"github.com/jon4hz/playbox/internal/models"
)

type Handler struct {
	library *facade.Library
}

func New(library *facade.Library) *Handler {
	return &Handler{
		library: library,
	}
}

// Overview returns counts and the total duration of the library.
func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.library.Overview(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ListPlaylists returns playlist summaries. Query parameters select the type filter, the
// name prefix search or the sort order.
func (h *Handler) ListPlaylists(c *gin.Context) {
	var q apimodels.PlaylistQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: err.Error()})
		return
	}
	listing, err := apimodels.ToPlaylistListing(q)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	var playlists []models.PlaylistSummary
	switch {
	case listing.Sorted:
		playlists, err = h.library.Playlists.Sorted(ctx, listing.Sort, listing.Order, listing.Type)
	case listing.Name != "":
		playlists, err = h.library.Playlists.ByName(ctx, listing.Name)
	case listing.Type != "":
		playlists, err = h.library.Playlists.ByType(ctx, listing.Type)
	default:
		playlists, err = h.library.Playlists.ListSummary(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlists)
}

// ListPlaylistNames returns the name only projection of every playlist.
func (h *Handler) ListPlaylistNames(c *gin.Context) {
	names, err := h.library.Playlists.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *Handler) GetPlaylist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	playlist, err := h.library.Playlists.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if playlist == nil {
		c.JSON(http.StatusNotFound, apimodels.ErrorResponse{Error: "playlist not found"})
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// SavePlaylist creates a playlist, or updates it when the route carries an id.
func (h *Handler) SavePlaylist(c *gin.Context) {
	var body models.PlaylistDetail
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: err.Error()})
		return
	}
	if c.Param("id") != "" {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		body.ID = id
	}

	saved, err := h.library.Playlists.Save(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) DeletePlaylist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.library.Playlists.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPlaylistMedia returns the media of a playlist. With a prefix parameter the title
// prefix search is used, otherwise the filtered and sorted listing.
func (h *Handler) ListPlaylistMedia(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q apimodels.PlaylistMediaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	if q.Prefix != nil {
		media, err := h.library.Playlists.MediaByTitle(ctx, id, *q.Prefix)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, media)
		return
	}

	listing, err := apimodels.ToPlaylistMediaListing(q)
	if err != nil {
		writeError(c, err)
		return
	}
	media, err := h.library.Playlists.MediaSorted(ctx, id, listing.FilterBy, listing.Filter, listing.Sort, listing.Order)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// ListAvailableMedia returns the media that can still be added to a playlist.
func (h *Handler) ListAvailableMedia(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	media, err := h.library.Media.NotInPlaylist(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func (h *Handler) AddPlaylistMedium(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body apimodels.AddMediumRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: err.Error()})
		return
	}

	mediumID, err := uuid.Parse(body.MediumID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: "invalid mediumId"})
		return
	}

	added, err := h.library.Playlists.AddMedium(c.Request.Context(), id, mediumID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

func (h *Handler) RemovePlaylistMedium(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	mediumID, ok := paramID(c, "mediumId")
	if !ok {
		return
	}
	if err := h.library.Playlists.RemoveMedium(c.Request.Context(), id, mediumID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMedia returns medium summaries, optionally restricted to a type or a title prefix.
func (h *Handler) ListMedia(c *gin.Context) {
	var q apimodels.MediaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: err.Error()})
		return
	}
	t, err := apimodels.ToMediaType(q.Type)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	var media []models.MediumSummary
	switch {
	case t != "":
		media, err = h.library.Media.ByType(ctx, t)
	case q.Title != "":
		media, err = h.library.Media.ByTitle(ctx, q.Title)
	default:
		media, err = h.library.Media.ListSummary(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func (h *Handler) ListMediumNames(c *gin.Context) {
	names, err := h.library.Media.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *Handler) GetMedium(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	medium, err := h.library.Media.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if medium == nil {
		c.JSON(http.StatusNotFound, apimodels.ErrorResponse{Error: "medium not found"})
		return
	}
	c.JSON(http.StatusOK, medium)
}

// SaveMedium creates a medium, or updates it when the route carries an id.
func (h *Handler) SaveMedium(c *gin.Context) {
	var body models.MediumDetail
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: err.Error()})
		return
	}
	if c.Param("id") != "" {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		body.ID = id
	}

	saved, err := h.library.Media.Save(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) DeleteMedium(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.library.Media.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apimodels.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, facade.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, facade.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, facade.ErrInvalidOperation):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, apimodels.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, apimodels.ErrorResponse{Error: err.Error()})
}
