package handler

import (
	"log"

	"zenflow/services"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

// RefreshTokenHandler exchanges a valid refresh token for a fresh token
// pair. The used refresh token is blacklisted so it cannot be replayed.
func RefreshTokenHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if services.IsTokenBlacklisted(req.RefreshToken) {
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	claims, err := services.ParseToken(req.RefreshToken)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		utils.Unauthorized(c, "Invalid token type")
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		utils.Unauthorized(c, "Invalid token claims")
		return
	}

	token, err := services.GenerateJWT(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := services.BlacklistTokens("", req.RefreshToken); err != nil {
		log.Printf("Failed to blacklist used refresh token: %v", err)
	}

	utils.Success(c, gin.H{
		"token":   token,
		"refresh": refreshToken,
	})
}
