package handler

import (
	"log"

	"zenflow/repository"
	"zenflow/services"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

// UserDataStores bundles every per-user collection so account deletion
// can cascade across all of them.
type UserDataStores struct {
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Journal  *repository.JournalRepo
	Timers   *repository.TimerRepo
	Puzzles  *repository.PuzzleRepo
	Planner  repository.PlannerStateStore
}

func DeleteUserHandler(c *gin.Context, userService *usecase.UserService, stores UserDataStores) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	ctx := c.Request.Context()
	user, err := userService.FindUser(ctx, userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		utils.Unauthorized(c, "Password is incorrect")
		return
	}

	// Dependent collections go first so a failure there never leaves a
	// deleted account with orphaned data. Their errors only log: losing
	// a stray journal entry is better than a half-deleted account that
	// can still log in.
	if err := stores.Journal.DeleteUserEntries(ctx, user.UserID); err != nil {
		log.Printf("Failed to delete journal entries for %s: %v", user.UserID, err)
	}
	if err := stores.Timers.DeleteUserSessions(ctx, user.UserID); err != nil {
		log.Printf("Failed to delete timer sessions for %s: %v", user.UserID, err)
	}
	if err := stores.Puzzles.DeleteUserProgress(ctx, user.UserID); err != nil {
		log.Printf("Failed to delete puzzle progress for %s: %v", user.UserID, err)
	}
	if err := stores.Planner.DeleteState(ctx, user.UserID); err != nil {
		log.Printf("Failed to delete planner state for %s: %v", user.UserID, err)
	}
	if err := stores.Sessions.DeleteUserSessions(ctx, user.UserID); err != nil {
		log.Printf("Failed to delete sessions for %s: %v", user.UserID, err)
	}

	if err := stores.Users.DeleteUserByID(ctx, user.UserID); err != nil {
		utils.TrackError("database", "user_deletion")
		utils.InternalError(c, "Failed to delete account")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)
	utils.SuccessWithMessage(c, "Account deleted", nil)
}
