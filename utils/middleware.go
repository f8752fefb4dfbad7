package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resto/form"
)

const (
	capabilitiesKey = "capabilities"
	sessionKey      = "session"
)

// SessionMiddleware puts the caller's capabilities into the context. A
// request without a token gets defaults; a bad token is rejected.
func SessionMiddleware(tokens *Tokens, defaults []string) gin.HandlerFunc {
	defaultCaps := form.NewCapabilities(defaults...)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(capabilitiesKey, defaultCaps)
			c.Next()
			return
		}

		session, err := ExtractSession(tokens, authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}
		c.Set(sessionKey, session)
		c.Set(capabilitiesKey, form.NewCapabilities(session.Permissions...))
		c.Next()
	}
}

func ExtractSession(tokens *Tokens, authHeader string) (Session, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Session{}, errors.New("invalid token format")
	}
	return tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
}

// Capabilities returns what the middleware granted. Outside the middleware
// nothing is granted.
func Capabilities(c *gin.Context) form.Capabilities {
	if v, ok := c.Get(capabilitiesKey); ok {
		if caps, ok := v.(form.Capabilities); ok {
			return caps
		}
	}
	return form.NewCapabilities()
}

// CurrentSession returns the session of a token-bearing request.
func CurrentSession(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// RequestLogger logs every request through zap.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			log.Warn("Request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		log.Info("Request", fields...)
	}
}
