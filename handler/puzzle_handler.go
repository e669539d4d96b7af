package handler

import (
	"zenflow/model"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func GetPuzzleCatalogHandler(c *gin.Context, puzzleService *usecase.PuzzleService) {
	utils.Success(c, gin.H{"puzzles": puzzleService.Catalog()})
}

func RecordPuzzleProgressHandler(c *gin.Context, puzzleService *usecase.PuzzleService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var progress model.PuzzleProgress
	if err := c.ShouldBindJSON(&progress); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	progress.UserID = userID.(string)

	if err := puzzleService.RecordProgress(c.Request.Context(), &progress); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Created(c, gin.H{"progress": progress})
}

func GetPuzzleProgressHandler(c *gin.Context, puzzleService *usecase.PuzzleService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	progress, err := puzzleService.UserProgress(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch puzzle progress")
		return
	}
	utils.Success(c, gin.H{"progress": progress, "count": len(progress)})
}
