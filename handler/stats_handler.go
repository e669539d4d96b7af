package handler

import (
	"time"

	"zenflow/model"
	"zenflow/planner"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
)

// GetUserStatsHandler aggregates raw activity counts across the user's
// collections. No scoring or leveling happens server-side.
func GetUserStatsHandler(c *gin.Context, stores UserDataStores) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	uid := userID.(string)
	ctx := c.Request.Context()

	user, err := stores.Users.FindUser(ctx, uid)
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	var stats model.UserStats
	stats.ActivityStats.AccountCreated = user.CreatedAt
	stats.ActivityStats.LastActive = time.Now()

	if total, err := stores.Journal.CountUserEntries(ctx, uid); err == nil {
		stats.JournalStats.Total = total
	}
	weekStart := planner.ShiftDateKey(planner.DateKey(time.Now()), -6)
	if entries, err := stores.Journal.GetUserEntries(ctx, uid, weekStart, ""); err == nil {
		stats.JournalStats.ThisWeek = len(entries)
	}
	if entries, err := stores.Journal.GetUserEntries(ctx, uid, "", ""); err == nil {
		tagCounts := make(map[string]int)
		for _, entry := range entries {
			for _, tag := range entry.Tags {
				tagCounts[tag]++
			}
		}
		stats.JournalStats.TagCounts = tagCounts
	}

	if total, completed, err := stores.Timers.CountSessions(ctx, uid); err == nil {
		stats.TimerStats.Total = total
		stats.TimerStats.Completed = completed
	}
	if seconds, err := stores.Timers.TotalFocusSeconds(ctx, uid); err == nil {
		stats.TimerStats.FocusSeconds = seconds
	}

	if attempted, solved, err := stores.Puzzles.CountProgress(ctx, uid); err == nil {
		stats.PuzzleStats.Attempted = attempted
		stats.PuzzleStats.Solved = solved
	}

	if count, err := stores.Sessions.CountActiveSessions(ctx, uid); err == nil {
		stats.ActivityStats.TotalSessions = count
	}

	utils.Success(c, stats)
}

// GetSystemStatsHandler reports process-level health numbers.
func GetSystemStatsHandler(c *gin.Context) {
	utils.Success(c, gin.H{
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
		"goroutines":     utils.GetGoroutineCount(),
		"timestamp":      time.Now().UTC(),
	})
}
