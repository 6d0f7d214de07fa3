package connection

import (
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	mb "github.com/saeidalz13/battleship-skirmish/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) connAction
	writeToConnWithRetry(msg interface{}) error
	onConnErr(err error) connAction
}

// Session is the websocket of the local player. It doubles as the
// presenter of its game: every render, highlight and cue becomes a message.
type Session struct {
	id        string
	conn      *websocket.Conn
	createdAt time.Time

	// cueDelay is slept after each cue so clients can animate.
	cueDelay bool

	mu       sync.Mutex
	writeErr error
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
	}
}

var (
	_ ConnectionHandler = (*Session)(nil)
	_ mb.Presenter      = (*Session)(nil)
)

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) EnableCueDelay() {
	s.cueDelay = true
}

// WriteErr is the first failed presenter write, if any. Presenter
// methods cannot return errors so the read loop checks this instead.
func (s *Session) WriteErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}

func (s *Session) Render(frame mb.Frame) {
	msg := NewMessage[RespFrame](CodeRender)
	msg.AddPayload(frame)
	s.present(msg)
}

func (s *Session) Highlight(target *mb.Target, style mb.HighlightStyle) {
	if target == nil {
		return
	}
	msg := NewMessage[RespHighlight](CodeHighlight)
	msg.AddPayload(RespHighlight{Board: boardOf(target), Cell: target.Name(), Style: uint8(style)})
	s.present(msg)
}

func (s *Session) PlayCue(cue mb.Cue) {
	msg := NewMessage[RespCue](CodeCue)
	msg.AddPayload(RespCue{Cue: cue.String(), DelayMs: cue.Delay().Milliseconds()})
	s.present(msg)

	if s.cueDelay {
		time.Sleep(cue.Delay())
	}
}

func (s *Session) present(msg interface{}) {
	if s.WriteErr() != nil {
		return
	}
	if err := s.writeToConnWithRetry(msg); err != nil {
		s.mu.Lock()
		s.writeErr = err
		s.mu.Unlock()
	}
}

func (s *Session) onConnErr(err error) connAction {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Println("timeout error:", err)
		return connRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return connRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Println("close error:", err)
		return connBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return connBreak
	}

	// Binary frames, bad utf-8 and oversized payloads are not from a game client.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return connBreak
	}

	log.Println("unexpected error:", err)
	return connBreak
}

// Writes a JSON message to the connection of this session, retrying
// with back off on timeouts.
func (s *Session) writeToConnWithRetry(msg interface{}) error {
	var retries uint8

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		err := s.conn.WriteJSON(msg)
		if err == nil {
			return nil
		}

		if s.onConnErr(err) == connRetry && retries < maxWriteWsRetries {
			retries++
			log.Printf("writing to ws [%s] failed; retrying... (retry no. %d)\n", s.conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			continue
		}

		log.Printf("giving up writing to ws [%s]: %s\n", s.conn.RemoteAddr().String(), err)
		return newConnErr(s.id, retries+1, err)
	}
}

// Handles the errors that occur when reading from the ws connection.
func (s *Session) handleReadFromConnErr(err error, retries uint8) connAction {
	switch s.onConnErr(err) {
	case connRetry:
		if retries < maxWriteWsRetries {
			log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return connRetry
		}
		return connBreak

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.conn.RemoteAddr().String(), err)
		return connBreak
	}
}
