package models

// PushPayload is the device-facing slice of a notification: the visible
// title/body plus opaque structured data for the client to route on.
type PushPayload struct {
	Title string
	Body  string
	Data  map[string]string
}
