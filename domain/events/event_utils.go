package events

import "reflect"

// Helper function to extract the session ID from events
func ExtractSessionID(event Event) string {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		sessionID := val.FieldByName("SessionID")
		if sessionID.IsValid() && sessionID.Kind() == reflect.String {
			return sessionID.String()
		}
	}

	return ""
}
