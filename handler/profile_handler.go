package handler

import (
	"zenflow/dto"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func GetProfileHandler(c *gin.Context, userService *usecase.UserService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := userService.FindUser(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, gin.H{"user": dto.ToUserResponse(user)})
}
