package handler

import (
	"time"

	"zenflow/model"
	"zenflow/planner"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func RecordTimerSessionHandler(c *gin.Context, timerService *usecase.TimerService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var session model.TimerSession
	if err := c.ShouldBindJSON(&session); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	session.UserID = userID.(string)

	if err := timerService.RecordSession(c.Request.Context(), &session); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Created(c, gin.H{"session": session})
}

// GetTimerDayHandler returns the day's sessions plus per-kind second
// totals. The date defaults to today.
func GetTimerDayHandler(c *gin.Context, timerService *usecase.TimerService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	dateKey := c.Query("date")
	if dateKey == "" {
		dateKey = planner.DateKey(time.Now())
	}
	if dateKey != planner.DateKey(planner.ParseDateKey(dateKey)) {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	sessions, err := timerService.DaySessions(ctx, userID.(string), dateKey)
	if err != nil {
		utils.InternalError(c, "Failed to fetch timer sessions")
		return
	}
	totals, err := timerService.DayTotals(ctx, userID.(string), dateKey)
	if err != nil {
		utils.InternalError(c, "Failed to total timer sessions")
		return
	}

	utils.Success(c, gin.H{
		"date":     dateKey,
		"sessions": sessions,
		"totals":   totals,
	})
}
