package handler

import (
	"zenflow/dto"
	"zenflow/model"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req model.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "registration_validation")
		utils.BadRequest(c, "Invalid request")
		return
	}

	if !utils.ValidatePassword(req.Password) {
		utils.TrackAuthAttempt("failure", "weak_password")
		utils.BadRequest(c, "Password must be at least 6 characters and contain a number and a special character")
		return
	}

	user, err := userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.TrackAuthAttempt("failure", "registration")
		utils.Conflict(c, err.Error())
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{"user": dto.ToUserResponse(user)})
}
