package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"company-board-api/services"
)

// SearchController exposes the database-ranked full-text search.
type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

func searchQuery(c *gin.Context) (string, bool) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return "", false
	}
	return q, true
}

// Announcements searches announcement titles and bodies.
func (sc *SearchController) Announcements(c *gin.Context) {
	q, ok := searchQuery(c)
	if !ok {
		return
	}
	skip, limit := parseSkipLimit(c, 10, 100)

	hits, err := sc.search.Announcements(q, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, hits)
}

// Responses searches reply authors and bodies.
func (sc *SearchController) Responses(c *gin.Context) {
	q, ok := searchQuery(c)
	if !ok {
		return
	}
	skip, limit := parseSkipLimit(c, 10, 100)

	hits, err := sc.search.Responses(q, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, hits)
}

// All searches both sources and returns one merged ranking.
func (sc *SearchController) All(c *gin.Context) {
	q, ok := searchQuery(c)
	if !ok {
		return
	}
	skip, limit := parseSkipLimit(c, 5, 50)

	hits, err := sc.search.All(q, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       q,
		"total_count": len(hits),
		"results":     hits,
	})
}
