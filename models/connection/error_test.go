package connection

import (
	"errors"
	"io"
	"net"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestOnConnErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connAction
	}{
		{"timeout", timeoutErr{}, connRetry},
		{"try again later", &websocket.CloseError{Code: websocket.CloseTryAgainLater}, connRetry},
		{"client went away", &websocket.CloseError{Code: websocket.CloseGoingAway}, connBreak},
		{"abnormal closure", &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, connBreak},
		{"protocol error", &websocket.CloseError{Code: websocket.CloseProtocolError}, connBreak},
		{"too big", &websocket.CloseError{Code: websocket.CloseMessageTooBig}, connBreak},
		{"unexpected", io.ErrUnexpectedEOF, connBreak},
	}

	s := NewSession("test", nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, s.onConnErr(test.err))
		})
	}
}

func TestConnErrKeepsCause(t *testing.T) {
	cause := &websocket.CloseError{Code: websocket.CloseGoingAway}
	var err error = newConnErr("abc", 3, cause)

	var connErr ConnErr
	require.True(t, errors.As(err, &connErr))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "session abc")
	assert.Contains(t, err.Error(), "3 attempt(s)")
}
