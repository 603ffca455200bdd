package model

// Message reports a rule hit while processing a mutation. CRITICAL stops the
// run; WARNING is informational and the mutation still takes effect.
type Message struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)
