package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey    = "request_id"
	userIDKey       = "user_id"
	requestIDHeader = "X-Request-ID"
)

var errInvalidToken = errors.New("invalid token")

// RequestID ensures every request has a correlation id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Next()
	}
}

// Logger writes one line per request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

type tokenClaims struct {
	UserID string
	Email  string
	Name   string
}

// parseToken verifies an HMAC-signed bearer token and reads the identity
// claims issued by the auth provider.
func parseToken(tokenString, secret string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return tokenClaims{}, fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return tokenClaims{}, errInvalidToken
	}

	var out tokenClaims
	switch id := claims["user_id"].(type) {
	case string:
		out.UserID = id
	case float64:
		out.UserID = strconv.FormatInt(int64(id), 10)
	}
	if out.UserID == "" {
		return tokenClaims{}, fmt.Errorf("%w: missing user_id", errInvalidToken)
	}

	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)

	return out, nil
}

// Auth rejects requests without a valid bearer token and makes sure the
// token's user exists before any handler runs.
func Auth(secret string, users UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure(http.StatusUnauthorized, "missing authorization token"))
			return
		}

		claims, err := parseToken(strings.TrimSpace(raw), secret)
		if err != nil {
			logger.Debug("token rejected",
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure(http.StatusUnauthorized, "invalid token"))
			return
		}

		if err := users.EnsureUser(c.Request.Context(), claims.UserID, claims.Email, claims.Name); err != nil {
			logger.Error("failed to ensure user",
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.String("user_id", claims.UserID),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, failure(http.StatusInternalServerError, "failed to load user"))
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
