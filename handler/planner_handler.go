package handler

import (
	"time"

	"zenflow/dto"
	"zenflow/model"
	"zenflow/planner"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func plannerUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return "", false
	}
	return userID.(string), true
}

func plannerDateKey(c *gin.Context) (string, bool) {
	dateKey := c.Query("date")
	if dateKey == "" {
		return planner.DateKey(time.Now()), true
	}
	if dateKey != planner.DateKey(planner.ParseDateKey(dateKey)) {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return "", false
	}
	return dateKey, true
}

func respondSave(c *gin.Context, result usecase.SaveResult) {
	utils.Success(c, dto.ToPlannerSaveResponse(result))
}

// GetPlannerDayHandler projects the entry list for one day, defaulting
// to today.
func GetPlannerDayHandler(c *gin.Context, plannerService *usecase.PlannerService) {
	userID, ok := plannerUserID(c)
	if !ok {
		return
	}
	dateKey, ok := plannerDateKey(c)
	if !ok {
		return
	}

	entries, err := plannerService.Day(c.Request.Context(), userID, dateKey)
	if err != nil {
		utils.InternalError(c, "Failed to load planner")
		return
	}
	utils.Success(c, dto.ToPlannerDayResponse(dateKey, entries))
}

func GetPlannerStateHandler(c *gin.Context, plannerService *usecase.PlannerService) {
	userID, ok := plannerUserID(c)
	if !ok {
		return
	}

	state, err := plannerService.State(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "Failed to load planner state")
		return
	}
	utils.Success(c, gin.H{"state": state})
}

// UpdateRemindersHandler sets the global reminder switch and any
// per-task time overrides in one request. An empty time string resets
// that task to its default.
func UpdateRemindersHandler(c *gin.Context, plannerService *usecase.PlannerService) {
	userID, ok := plannerUserID(c)
	if !ok {
		return
	}

	var req struct {
		Enabled *bool                         `json:"enabled"`
		Times   map[model.RequiredTask]string `json:"times"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	if req.Enabled == nil && len(req.Times) == 0 {
		utils.BadRequest(c, "Nothing to update")
		return
	}

	ctx := c.Request.Context()
	var result usecase.SaveResult
	var err error

	for task, hhmm := range req.Times {
		result, err = plannerService.SetReminderTime(ctx, userID, task, hhmm)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}
	if req.Enabled != nil {
		result, err = plannerService.SetRemindersEnabled(ctx, userID, *req.Enabled)
		if err != nil {
			utils.InternalError(c, "Failed to save planner state")
			return
		}
	}
	respondSave(c, result)
}

func AddPlannerItemHandler(c *gin.Context, plannerService *usecase.PlannerService) {
	userID, ok := plannerUserID(c)
	if !ok {
		return
	}

	var item model.CustomItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	item.ID = ""

	result, err := plannerService.AddCustomItem(c.Request.Context(), userID, item)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	respondSave(c, result)
}

func RemovePlannerItemHandler(c *gin.Context, plannerService *usecase.PlannerService) {
	userID, ok := plannerUserID(c)
	if !ok {
		return
	}

	result, err := plannerService.RemoveCustomItem(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}
	respondSave(c, result)
}

func TogglePlannerEntryHandler(c *gin.Context, plannerService *usecase.PlannerService) {
	userID, ok := plannerUserID(c)
	if !ok {
		return
	}
	dateKey, ok := plannerDateKey(c)
	if !ok {
		return
	}

	result, err := plannerService.ToggleEntry(c.Request.Context(), userID, dateKey, c.Param("id"))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}
	respondSave(c, result)
}
