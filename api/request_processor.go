package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-skirmish/db/sqlc"
	mb "github.com/saeidalz13/battleship-skirmish/models/battleship"
	mc "github.com/saeidalz13/battleship-skirmish/models/connection"
)

var upgrader = websocket.Upgrader{
	HandshakeTimeout: time.Second * 5,
	ReadBufferSize:   2048,
	WriteBufferSize:  2048,
	// The local client is served from anywhere during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	dbManager      *sqlc.DbManager

	gameOptions func(mb.Presenter) []mb.Option
	cueDelay    bool
	onQuit      func()
}

func NewRequestProcessor(s *Server) *RequestProcessor {
	return &RequestProcessor{
		sessionManager: s.SessionManager,
		gameManager:    s.GameManager,
		dbManager:      sqlc.NewDbManager(s.querier, serverIpNet()),
		gameOptions:    s.gameOptions,
		cueDelay:       s.cueDelay,
		onQuit:         s.signalQuit,
	}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	session, err := rp.sessionManager.GenerateNewSession(conn)
	if err != nil {
		log.Println("refusing connection:", err)
		msg := mc.NewMessage[mc.NoPayload](mc.CodeSessionRefused)
		msg.AddError(err.Error(), "a game is already running")
		_ = conn.WriteJSON(msg)
		conn.Close()
		return
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(session)
}

func (rp *RequestProcessor) recordAnalytics(record func(*sqlc.AnalyticsManager, context.Context) error) {
	if rp.dbManager == nil {
		return
	}
	// for now not killing the game for it
	if err := record(rp.dbManager.Analytics, context.Background()); err != nil {
		log.Println(err)
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()
	var game *mb.Game

	defer func() {
		if game != nil {
			rp.gameManager.TerminateGame(game.Uuid)
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Printf("session closed: %s\n", sessionId)
	}()

	if rp.cueDelay {
		session.EnableCueDelay()
	}

	game, err := rp.gameManager.CreateGame(rp.gameOptions(session)...)
	if err != nil {
		msg := mc.NewMessage[mc.NoPayload](mc.CodeSessionRefused)
		msg.AddError(err.Error(), "could not create game")
		_ = rp.sessionManager.WriteToSessionConn(session, msg)
		return
	}
	rp.recordAnalytics((*sqlc.AnalyticsManager).RecordGameCreated)

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId, GameUuid: game.Uuid})
	if err := rp.sessionManager.WriteToSessionConn(session, resp); err != nil {
		return
	}
	session.Render(game.Frame())

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// The client left without quitting; the game ends with the connection.
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		if _, prs := mc.SignalEvents[code]; !prs {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		ev, err := mc.EventFromSignal(code, payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeGameError)
			msg.AddError(err.Error(), "could not read the selected cell")
			if err := rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		if ev.Kind == mb.EventReplay && game.State() == mb.StateEnd {
			rp.recordAnalytics((*sqlc.AnalyticsManager).RecordRematch)
		}

		// Errors here are informational: the game already recovered and rendered.
		if err := game.HandleEvent(ev); err != nil {
			log.Println(err)
			msg := mc.NewMessage[mc.NoPayload](mc.CodeGameError)
			msg.AddError(err.Error(), "")
			if err := rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
		}

		if session.WriteErr() != nil {
			log.Println(session.WriteErr())
			break sessionLoop
		}

		if game.State() == mb.StateQuit {
			rp.onQuit()
			break sessionLoop
		}
	}
}
