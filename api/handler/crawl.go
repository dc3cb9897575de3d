package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proplens/proplens/cache"
	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/models"
	"github.com/proplens/proplens/scraper"
	"github.com/proplens/proplens/session"
	"github.com/proplens/proplens/storage"
	"github.com/proplens/proplens/webhook"
)

// eventBuffer is the size of the per-session progress channel. Events are
// dropped rather than blocking the crawl when a slow client falls behind.
const eventBuffer = 256

// PostCrawl returns a handler for POST /api/v1/crawl.
//
// The response is a Server-Sent Events stream:
//
//  1. One "progress" event per crawl lifecycle update, in emission order.
//  2. A terminal "complete" event carrying the batch result, or a terminal
//     "error" event when the batch could not run at all.
//
// The finished batch is also persisted to the result store so clients can
// re-fetch it via GET /api/v1/results/:session.
func PostCrawl(coord *scraper.Coordinator, reg *session.Registry, store *storage.Store, cc *cache.Cache, hook config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CrawlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "invalid request: " + err.Error(),
				},
			})
			return
		}

		sessionID := "crawl-" + randomID()
		start := time.Now()

		events := make(chan models.ProgressEvent, eventBuffer)
		reg.Register(sessionID, session.SinkFunc(func(ev models.ProgressEvent) {
			select {
			case events <- ev:
			default:
				// Slow consumer: drop rather than stall the crawl.
			}
		}))

		type outcome struct {
			result *models.BatchResult
			err    error
		}
		done := make(chan outcome, 1)

		go func() {
			result, err := coord.Crawl(c.Request.Context(), sessionID, req.URLs, req.Options)
			reg.Remove(sessionID)
			close(events)
			done <- outcome{result: result, err: err}
		}()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		c.Stream(func(w io.Writer) bool {
			ev, ok := <-events
			if !ok {
				return false
			}
			c.SSEvent("progress", ev)
			return true
		})

		out := <-done
		if out.err != nil {
			slog.Error("crawl batch failed",
				"session_id", sessionID,
				"url_count", len(req.URLs),
				"error", out.err,
			)
			detail := &models.ErrorDetail{Code: models.ErrCodeInternal, Message: out.err.Error()}
			var ce *models.CrawlError
			if errors.As(out.err, &ce) {
				detail = ce.ToDetail()
			}
			c.SSEvent("error", detail)
			c.Writer.Flush()
			notify(hook, "crawl.failed", sessionID, detail)
			return
		}

		artifact := &storage.Artifact{
			SessionID:   sessionID,
			CompletedAt: time.Now().UTC(),
			URLCount:    len(req.URLs),
			Result:      out.result,
		}
		if path, err := store.Write(artifact); err != nil {
			slog.Error("failed to persist batch artifact", "session_id", sessionID, "error", err)
		} else {
			slog.Info("batch artifact persisted", "session_id", sessionID, "path", path)
			cc.Set(sessionID, artifact)
		}

		complete := models.CrawlComplete{
			SessionID: sessionID,
			ElapsedMs: time.Since(start).Milliseconds(),
			URLCount:  len(req.URLs),
			Result:    out.result,
		}
		c.SSEvent("complete", complete)
		c.Writer.Flush()

		notify(hook, "crawl.completed", sessionID, complete)
	}
}

// notify fires the completion webhook if one is configured. Best-effort.
func notify(hook config.WebhookConfig, eventType, sessionID string, data interface{}) {
	if hook.URL == "" {
		return
	}
	webhook.DeliverAsync(hook.URL, hook.Secret, &webhook.Event{
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}

// randomID generates a short random hex string for session IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
