package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yatube/yatube-be/services"
)

type cachedBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachedBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CachePage serves GET responses from the page cache for up to ttl. Cache
// failures are logged and the request proceeds uncached.
func CachePage(cache services.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := c.Request.RequestURI

		body, hit, err := cache.Get(c.Request.Context(), key)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("page cache read failed")
		}
		if hit {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &cachedBodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		if err := cache.Set(c.Request.Context(), key, writer.body.Bytes(), ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("page cache write failed")
		}
	}
}
