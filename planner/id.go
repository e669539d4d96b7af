package planner

// NotificationID reduces a stable descriptor key to a platform-safe
// notification id with a polynomial rolling hash (h = h*31 + byte),
// folded into [1, 2^31). Re-emitting the same logical reminder therefore
// always collides onto the same id instead of accumulating duplicates.
// Changing this function invalidates every previously issued id, so it
// must never be revised without a migration of pending notifications.
func NotificationID(key string) int {
	var h uint32
	for i := 0; i < len(key); i++ {
		h = h*31 + uint32(key[i])
	}
	id := int(h & 0x7fffffff)
	if id == 0 {
		id = 1
	}
	return id
}
