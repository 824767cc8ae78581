package session

// StatusResponse reports the lifecycle phase of the recording session
type StatusResponse struct {
	Phase string `json:"phase"`
}
