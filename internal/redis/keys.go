package redisx

import "fmt"

const ns = "fyyur:v1"

func KeyVenue(venueID int64) string {
	return fmt.Sprintf("%s:venue:%d", ns, venueID)
}

func KeyArtist(artistID int64) string {
	return fmt.Sprintf("%s:artist:%d", ns, artistID)
}

func KeyFlash(sessionID string) string {
	return fmt.Sprintf("%s:flash:%s", ns, sessionID)
}

func KeyFormToken(token string) string {
	return fmt.Sprintf("%s:form:%s", ns, token)
}

// KeyRateLimit names the counter for id inside the fixed window that
// starts at windowStart (unix milliseconds).
func KeyRateLimit(scope, id string, windowStart int64) string {
	return fmt.Sprintf("%s:rl:%s:%s:%d", ns, scope, id, windowStart)
}
