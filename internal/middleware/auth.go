package middleware

import (
  "fmt"
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/requestdata"
)

// AuthMiddleware resolves the authenticated creator from a bearer token. Full
// session management lives in the platform's auth service; the engine only
// needs the creator identity carried in the token subject.
type AuthMiddleware struct {
  log    *logger.Logger
  secret []byte
}

func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
  middlewareLog := log.With("middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, secret: []byte(secret)}
}

func (am *AuthMiddleware) RequireCreator() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }

    creatorID, err := am.creatorFromToken(tokenString)
    if err != nil {
      am.log.Debug("Token rejected", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }

    ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
      TokenString: tokenString,
      CreatorID:   creatorID,
    })
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func (am *AuthMiddleware) creatorFromToken(tokenString string) (uuid.UUID, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return am.secret, nil
  })
  if err != nil {
    return uuid.Nil, err
  }
  if !token.Valid {
    return uuid.Nil, fmt.Errorf("invalid token")
  }

  sub, err := token.Claims.GetSubject()
  if err != nil || sub == "" {
    return uuid.Nil, fmt.Errorf("token has no subject")
  }
  creatorID, err := uuid.Parse(sub)
  if err != nil {
    return uuid.Nil, fmt.Errorf("token subject is not a creator id: %w", err)
  }
  return creatorID, nil
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return c.Query("token")
}
