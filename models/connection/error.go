package connection

import "fmt"

// connAction is what a read or write loop does after a websocket error.
type connAction uint8

const (
	connBreak connAction = iota
	connRetry
)

// ConnErr is a write to a session that could not be delivered. Once a
// session holds one, the game behind it no longer reaches the player.
type ConnErr struct {
	sessionId string
	attempts  uint8
	cause     error
}

func newConnErr(sessionId string, attempts uint8, cause error) ConnErr {
	return ConnErr{sessionId: sessionId, attempts: attempts, cause: cause}
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("session %s: write failed after %d attempt(s): %v", c.sessionId, c.attempts, c.cause)
}

func (c ConnErr) Unwrap() error {
	return c.cause
}
