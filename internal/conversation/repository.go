package conversation

// Repository is the per-session conversation log.
type Repository interface {
	Append(sessionID string, turn Turn) Turn
	Get(sessionID string) []Turn
	Delete(sessionID string)
	Count() int
}
