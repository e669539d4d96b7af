package handler

import (
	"zenflow/model"
	"zenflow/usecase"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

func CreateJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var entry model.JournalEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	entry.UserID = userID.(string)

	if err := journalService.CreateEntry(c.Request.Context(), &entry); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Created(c, gin.H{"entry": entry})
}

// GetJournalEntriesHandler lists entries newest first, optionally
// bounded by from/to date keys.
func GetJournalEntriesHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	entries, err := journalService.GetEntries(c.Request.Context(),
		userID.(string), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch journal entries")
		return
	}
	utils.Success(c, gin.H{"entries": entries, "count": len(entries)})
}

func GetJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	entry, err := journalService.GetEntry(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		utils.NotFound(c, "Journal entry not found")
		return
	}
	utils.Success(c, gin.H{"entry": entry})
}

func UpdateJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var updates model.JournalEntry
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	entry, err := journalService.UpdateEntry(c.Request.Context(), c.Param("id"), userID.(string), &updates)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, gin.H{"entry": entry})
}

func DeleteJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := journalService.DeleteEntry(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		utils.NotFound(c, "Journal entry not found")
		return
	}
	utils.SuccessWithMessage(c, "Journal entry deleted", nil)
}
