package common

// StatusResponse represents a plain acknowledgment
type StatusResponse struct {
	Status string `json:"status"`
}
