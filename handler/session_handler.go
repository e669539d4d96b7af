package handler

import (
	"zenflow/dto"
	"zenflow/repository"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	sessions, err := sessionRepo.GetUserActiveSessions(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	currentSessionID, _ := c.Cookie("session_id")
	utils.Success(c, gin.H{
		"sessions": dto.ToSessionResponses(sessions, currentSessionID),
	})
}

// EndSessionHandler logs out one named session, typically a device the
// user no longer trusts.
func EndSessionHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	sessionID := c.Param("id")
	ctx := c.Request.Context()

	session, err := sessionRepo.GetSession(ctx, sessionID)
	if err != nil || session == nil || session.UserID != userID.(string) {
		utils.NotFound(c, "Session not found")
		return
	}

	if err := sessionRepo.EndSession(ctx, sessionID); err != nil {
		utils.InternalError(c, "Failed to end session")
		return
	}

	if current, cerr := c.Cookie("session_id"); cerr == nil && current == sessionID {
		c.SetCookie("session_id", "", -1, "/", "", true, true)
	}
	utils.SuccessWithMessage(c, "Session ended", nil)
}

func LogoutAllSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := sessionRepo.EndAllUserSessions(c.Request.Context(), userID.(string)); err != nil {
		utils.InternalError(c, "Failed to end all sessions")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)
	utils.SuccessWithMessage(c, "Successfully logged out of all sessions", nil)
}
