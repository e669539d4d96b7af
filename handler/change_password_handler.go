package handler

import (
	"zenflow/repository"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func ChangePasswordHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if !utils.ValidatePassword(req.NewPassword) {
		utils.BadRequest(c, "Password must be at least 6 characters and contain a number and a special character")
		return
	}

	ctx := c.Request.Context()
	if err := userService.ChangePassword(ctx, userID.(string), req.CurrentPassword, req.NewPassword); err != nil {
		utils.TrackError("auth", "password_change")
		utils.BadRequest(c, err.Error())
		return
	}

	// All other devices must log in again with the new password.
	if err := sessionRepo.EndAllUserSessions(ctx, userID.(string)); err != nil {
		utils.TrackError("session", "logout_all")
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.SuccessWithMessage(c, "Password changed successfully, please log in again", nil)
}
