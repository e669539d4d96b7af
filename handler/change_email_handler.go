package handler

import (
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func ChangeEmailHandler(c *gin.Context, userService *usecase.UserService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
		NewEmail string `json:"new_email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := userService.ChangeEmail(c.Request.Context(), userID.(string), req.Password, req.NewEmail); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Email changed successfully", gin.H{"email": req.NewEmail})
}
