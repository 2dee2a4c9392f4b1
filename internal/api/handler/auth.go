package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// generateJWT issues a session token carrying the user's id and role.
func (h *Handler) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "grievgo-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validateToken parses a bearer token and returns the identity it carries.
func (h *Handler) validateToken(tokenString string) (userID string, role models.Role, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	userID, _ = claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	if userID == "" || roleStr == "" {
		return "", "", errors.New("incomplete claims")
	}
	return userID, models.Role(roleStr), nil
}

// currentUser extracts and validates the caller identity from the
// Authorization header. Writes the error response itself when invalid.
func (h *Handler) currentUser(c *gin.Context) (userID string, role models.Role, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return "", "", false
	}

	userID, role, err := h.validateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return "", "", false
	}
	return userID, role, true
}

// CreateSession issues a JWT. An unknown caller gets a fresh student
// account; real identity management is an external collaborator and this
// endpoint only mints the session the engine needs.
func (h *Handler) CreateSession(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	_ = c.ShouldBindJSON(&req)

	var user *models.User
	if req.UserID != "" {
		existing, err := h.Storage.GetUserByID(req.UserID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown user"})
			return
		}
		user = existing
	} else {
		user = &models.User{Role: models.RoleStudent}
		if err := h.Storage.SaveUser(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	}

	token, err := h.generateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID, "role": user.Role})
}
