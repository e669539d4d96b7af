package handler

import (
	"log"
	"strings"

	"zenflow/repository"
	"zenflow/services"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	if _, exists := c.Get("user_id"); !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// The refresh token is optional; without it only the access token
	// gets blacklisted.
	_ = c.ShouldBindJSON(&req)

	if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
		log.Printf("Failed to blacklist tokens on logout: %v", err)
	}

	if sessionID, err := c.Cookie("session_id"); err == nil && sessionID != "" {
		if err := sessionRepo.EndSession(c.Request.Context(), sessionID); err != nil {
			log.Printf("Failed to end session %s on logout: %v", sessionID, err)
		}
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
