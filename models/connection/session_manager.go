package connection

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) (*Session, error)
	CleanupPeriodically(stop <-chan struct{})

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ActiveSessions() int

	WriteToSessionConn(session *Session, msg interface{}) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	maxSessions     int
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

// Only the local player connects, so one session is the default limit.
func NewBattleshipSessionManager() *BattleshipSessionManager {
	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, 1),
		maxSessions:     1,
		cleanupInterval: time.Minute * 20,
	}
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) (*Session, error) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	if len(bsm.sessions) >= bsm.maxSessions {
		return nil, cerr.ErrActiveGameLimit(bsm.maxSessions)
	}

	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
	session := NewSession(sessionId, conn)
	bsm.sessions[sessionId] = session
	return session, nil
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) ActiveSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connection, sessions
// with a lifetime longer than the cleanup interval are removed.
func (bsm *BattleshipSessionManager) CleanupPeriodically(stop <-chan struct{}) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case <-ticker.C:
			bsm.mu.Lock()
			for id, session := range bsm.sessions {
				if time.Since(session.createdAt) > bsm.cleanupInterval {
					delete(bsm.sessions, id)
					log.Printf("removed stale session: %s\n", id)
				}
			}
			bsm.mu.Unlock()
		}
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}) error {
	return session.writeToConnWithRetry(msg)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		if session.handleReadFromConnErr(err, retries) == connRetry {
			retries++
			continue
		}
		return -1, []byte{}, err
	}
}

// FetchCodeFromMsg returns the signal code of a raw client message.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	if err := json.Unmarshal(payload, &signal); err != nil {
		return CodeSignalAbsent, err
	}
	return signal.Code, nil
}
