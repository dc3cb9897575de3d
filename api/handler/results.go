package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proplens/proplens/cache"
	"github.com/proplens/proplens/models"
	"github.com/proplens/proplens/storage"
)

// GetResults returns a handler for GET /api/v1/results/:session.
//
// Lookup order: in-memory cache first, then the file store. Artifacts
// written by completed batches stay retrievable across restarts.
func GetResults(store *storage.Store, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session")

		if artifact, ok := cc.Get(sessionID); ok {
			c.JSON(http.StatusOK, artifact)
			return
		}

		artifact, err := store.Read(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "no results for session " + sessionID,
				},
			})
			return
		}

		cc.Set(sessionID, artifact)
		c.JSON(http.StatusOK, artifact)
	}
}
