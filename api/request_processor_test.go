package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-skirmish/db/sqlc"
	mb "github.com/saeidalz13/battleship-skirmish/models/battleship"
	mc "github.com/saeidalz13/battleship-skirmish/models/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dialer = websocket.Dialer{HandshakeTimeout: 5 * time.Second}

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	opts = append([]Option{WithStage(StageDev), WithSeed(7), WithDifficulty(1)}, opts...)
	server := NewServer(opts...)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return server, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/battleship", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips highlights and cues until a message with code arrives.
func readUntil(t *testing.T, conn *websocket.Conn, code uint8) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var signal mc.Signal
		require.NoError(t, json.Unmarshal(raw, &signal))
		if signal.Code == code {
			return raw
		}
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) mb.Frame {
	t.Helper()
	var msg mc.Message[mc.RespFrame]
	require.NoError(t, json.Unmarshal(readUntil(t, conn, mc.CodeRender), &msg))
	return msg.Payload
}

func send(t *testing.T, conn *websocket.Conn, code uint8, board, cell string) {
	t.Helper()
	msg := mc.NewMessage[mc.ReqCell](code)
	msg.AddPayload(mc.ReqCell{Board: board, Cell: cell})
	require.NoError(t, conn.WriteJSON(msg))
}

func openSession(t *testing.T, ts *httptest.Server) (*websocket.Conn, mc.RespSessionId) {
	t.Helper()
	conn := dial(t, ts)

	var resp mc.Message[mc.RespSessionId]
	require.NoError(t, json.Unmarshal(readUntil(t, conn, mc.CodeSessionID), &resp))
	require.NotEmpty(t, resp.Payload.SessionID)
	require.NotEmpty(t, resp.Payload.GameUuid)

	frame := readFrame(t, conn)
	require.Equal(t, "START", frame.State)
	return conn, resp.Payload
}

func TestPlayOverWebsocket(t *testing.T) {
	server, ts := newTestServer(t)
	conn, session := openSession(t, ts)

	game, err := server.GameManager.GetGame(session.GameUuid)
	require.NoError(t, err)

	send(t, conn, mc.CodeConfirm, "", "")
	assert.Equal(t, "SETUP", readFrame(t, conn).State)

	send(t, conn, mc.CodePlaceShip, mc.BoardOwn, "A1")
	frame := readFrame(t, conn)
	assert.Equal(t, "SETUP", frame.State)
	assert.Equal(t, "Cruiser", strings.Fields(frame.Pending)[0])

	send(t, conn, mc.CodeRandomPlacement, "", "")
	frame = readFrame(t, conn)
	require.Equal(t, "PLAY", frame.State)
	assert.Len(t, frame.Player.Fleet, 5)
	assert.Empty(t, frame.Comp.Fleet)

	cell := game.Comp().Board().Select(func(t *mb.Target) bool { return !t.Occupied() }).Name()
	send(t, conn, mc.CodeSelectTarget, mc.BoardEnemy, cell)
	frame = readFrame(t, conn)
	assert.Equal(t, "PLAY", frame.State)
	assert.Equal(t, 2, frame.Turn)
	for _, c := range frame.Comp.Cells {
		if c.Name == cell {
			assert.Equal(t, "MISS", c.Result)
		}
	}

	// a repeat shot is reported and keeps the turn
	send(t, conn, mc.CodeSelectTarget, mc.BoardEnemy, cell)
	frame = readFrame(t, conn)
	assert.Equal(t, 2, frame.Turn)
	assert.Equal(t, cell+" already checked. Reselect.", frame.Messages.Result)
	var repeat mc.Message[mc.NoPayload]
	require.NoError(t, json.Unmarshal(readUntil(t, conn, mc.CodeGameError), &repeat))
	require.NotNil(t, repeat.Error)
	assert.Contains(t, repeat.Error.ErrorDetails, "already checked")

	send(t, conn, mc.CodeQuit, "", "")
	assert.Equal(t, "QUIT", readFrame(t, conn).State)

	select {
	case <-server.Quit():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not signal quit")
	}
}

func TestCompTurnSendsNoHiddenCells(t *testing.T) {
	server, ts := newTestServer(t, WithDifficulty(3))
	conn, session := openSession(t, ts)
	game, err := server.GameManager.GetGame(session.GameUuid)
	require.NoError(t, err)

	send(t, conn, mc.CodeConfirm, "", "")
	readFrame(t, conn)
	send(t, conn, mc.CodeRandomPlacement, "", "")
	require.Equal(t, "PLAY", readFrame(t, conn).State)

	for turn := 0; turn < 5; turn++ {
		cell := game.Comp().Board().Select(func(t *mb.Target) bool { return !t.Occupied() && !t.Checked() }).Name()
		send(t, conn, mc.CodeSelectTarget, mc.BoardEnemy, cell)

		var lit []mc.RespHighlight
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		for {
			_, raw, err := conn.ReadMessage()
			require.NoError(t, err)

			var msg mc.Message[mc.RespHighlight]
			require.NoError(t, json.Unmarshal(raw, &msg))
			if msg.Code == mc.CodeRender {
				break
			}
			if msg.Code == mc.CodeHighlight {
				lit = append(lit, msg.Payload)
			}
		}

		// sonar detection is the one deliberate reveal
		for _, h := range lit {
			if h.Board != mc.BoardEnemy || h.Style == uint8(mb.HighlightDetected) {
				continue
			}
			target, err := game.Comp().Board().ResolveName(h.Cell)
			require.NoError(t, err)
			if target.Occupied() {
				assert.True(t, target.Vessel().Sunk(), "hidden cell %s sent", h.Cell)
			}
		}
		if game.State() != mb.StatePlay {
			break
		}
	}
}

func TestBadRequests(t *testing.T) {
	_, ts := newTestServer(t)
	conn, _ := openSession(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	readUntil(t, conn, mc.CodeSignalAbsent)

	require.NoError(t, conn.WriteJSON(mc.NewSignal(mc.CodeRender)))
	readUntil(t, conn, mc.CodeInvalidSignal)

	send(t, conn, mc.CodeConfirm, "", "")
	readFrame(t, conn)
	send(t, conn, mc.CodePlaceShip, mc.BoardOwn, "??")
	var msg mc.Message[mc.NoPayload]
	require.NoError(t, json.Unmarshal(readUntil(t, conn, mc.CodeGameError), &msg))
	require.NotNil(t, msg.Error)

	// out of range placement renders and reports
	send(t, conn, mc.CodePlaceShip, mc.BoardOwn, "H1")
	frame := readFrame(t, conn)
	assert.Equal(t, "Insufficient space. Reselect.", frame.Messages.Result)
	readUntil(t, conn, mc.CodeGameError)
}

func TestSecondSessionRefused(t *testing.T) {
	server, ts := newTestServer(t)
	openSession(t, ts)

	second := dial(t, ts)
	var msg mc.Message[mc.NoPayload]
	require.NoError(t, json.Unmarshal(readUntil(t, second, mc.CodeSessionRefused), &msg))
	require.NotNil(t, msg.Error)
	assert.Equal(t, 1, server.SessionManager.ActiveSessions())
}

func TestDisconnectFreesTheGame(t *testing.T) {
	server, ts := newTestServer(t)
	conn, _ := openSession(t, ts)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return server.GameManager.ActiveGames() == 0 && server.SessionManager.ActiveSessions() == 0
	}, 5*time.Second, 20*time.Millisecond)

	// a fresh connection gets a fresh game
	openSession(t, ts)
	select {
	case <-server.Quit():
		t.Fatal("disconnect must not stop the server")
	default:
	}
}

func TestAnalyticsRecorded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO analytics").WillReturnResult(sqlmock.NewResult(0, 1))
	_, ts := newTestServer(t, WithQuerier(sqlc.New(db)))
	openSession(t, ts)

	require.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStatsAndHealth(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		_, ts := newTestServer(t)
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stats without a database", func(t *testing.T) {
		_, ts := newTestServer(t)
		resp, err := http.Get(ts.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		var msg mc.Message[mc.RespStats]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
		assert.Equal(t, mc.CodeStats, msg.Code)
		assert.True(t, msg.Payload.DbNotAvailable)
	})

	t.Run("stats from the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT games_created_count FROM analytics").
			WillReturnRows(sqlmock.NewRows([]string{"games_created_count"}).AddRow(4))
		mock.ExpectQuery("SELECT rematch_called_count FROM analytics").
			WillReturnRows(sqlmock.NewRows([]string{"rematch_called_count"}).AddRow(1))

		_, ts := newTestServer(t, WithDb(db))
		resp, err := http.Get(ts.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		var msg mc.Message[mc.RespStats]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
		assert.Equal(t, int64(4), msg.Payload.GamesCreated)
		assert.Equal(t, int64(1), msg.Payload.RematchCalled)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("websocket route rejects post", func(t *testing.T) {
		_, ts := newTestServer(t)
		resp, err := http.Post(ts.URL+"/battleship", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestServerOptions(t *testing.T) {
	assert.Panics(t, func() { NewServer(WithStage("staging")) })
	assert.Panics(t, func() { NewServer(WithDifficulty(9)) })

	server := NewServer(WithStage(StageProd))
	assert.Equal(t, defaultPort, server.Port())
}
