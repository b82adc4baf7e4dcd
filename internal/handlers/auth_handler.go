package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberflow/booking-api/internal/config"
)

// AuthHandler exchanges the shop's shared access key for a client token. The
// conversational front end performs this once per user and then calls the
// booking API with the token; user identity travels in the token claims.
type AuthHandler struct {
	config  *config.Config
	keyHash []byte
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	hash := []byte(cfg.AccessKeyHash)
	if len(hash) == 0 {
		// Local fallback: hash the plaintext key once at startup so the
		// request path has a single comparison code path.
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.AccessKey), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash access key: %v", err)
		}
		hash = h
	}

	return &AuthHandler{config: cfg, keyHash: hash}
}

// --------- Requests ---------

type TokenRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	Username  string `json:"username"`
	AccessKey string `json:"access_key" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.keyHash, []byte(req.AccessKey)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(req.UserID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"is_admin": h.config.IsAdmin(req.UserID),
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(userID int64, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
