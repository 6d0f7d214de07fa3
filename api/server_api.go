package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/saeidalz13/battleship-skirmish/db/sqlc"
	mb "github.com/saeidalz13/battleship-skirmish/models/battleship"
	mc "github.com/saeidalz13/battleship-skirmish/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	shutdownTimeout = time.Second * 5
)

var defaultPort = "9191"

type Server struct {
	port       string
	stage      string
	difficulty int
	seed       int64
	cueDelay   bool

	db      *sql.DB
	querier sqlc.Querier

	GameManager    *mb.BattleshipGameManager
	SessionManager *mc.BattleshipSessionManager

	httpServer *http.Server
	quit       chan struct{}
	quitOnce   sync.Once
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	server := Server{
		difficulty: int(mb.DifficultyHard),
		quit:       make(chan struct{}),
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	if server.querier == nil && server.db != nil {
		server.querier = sqlc.New(server.db)
	}

	server.SessionManager = mc.NewBattleshipSessionManager()
	server.GameManager = mb.NewBattleshipGameManager()
	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithDb(db *sql.DB) Option {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

// WithQuerier overrides the queries built from WithDb, mostly for tests.
func WithQuerier(q sqlc.Querier) Option {
	return func(s *Server) error {
		s.querier = q
		return nil
	}
}

func WithDifficulty(level int) Option {
	return func(s *Server) error {
		if _, err := mb.ParseDifficulty(level); err != nil {
			return err
		}
		s.difficulty = level
		return nil
	}
}

func WithSeed(seed int64) Option {
	return func(s *Server) error {
		s.seed = seed
		return nil
	}
}

// WithCueDelay makes sessions pause after each cue so clients can animate.
func WithCueDelay(enabled bool) Option {
	return func(s *Server) error {
		s.cueDelay = enabled
		return nil
	}
}

func (s *Server) Port() string {
	return s.port
}

// Quit is closed once the served game reaches QUIT.
func (s *Server) Quit() <-chan struct{} {
	return s.quit
}

func (s *Server) signalQuit() {
	s.quitOnce.Do(func() { close(s.quit) })
}

func (s *Server) Router() *mux.Router {
	rp := NewRequestProcessor(s)

	router := mux.NewRouter()
	router.Handle("/battleship", rp).Methods(http.MethodGet)
	router.HandleFunc("/stats", rp.HandleStats).Methods(http.MethodGet)
	router.HandleFunc("/health", HandleHealth).Methods(http.MethodGet)
	return router
}

// Run serves until the game quits or the listener fails.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              "0.0.0.0:" + s.port,
		Handler:           s.Router(),
		ReadHeaderTimeout: time.Second * 5,
	}

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go s.SessionManager.CleanupPeriodically(stopCleanup)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening to port %s (stage: %s)\n", s.port, s.stage)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-s.quit:
		log.Println("game quit, shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

func (s *Server) gameOptions(presenter mb.Presenter) []mb.Option {
	opts := []mb.Option{
		mb.WithDifficulty(s.difficulty),
		mb.WithPresenter(presenter),
	}
	if s.seed != 0 {
		opts = append(opts, mb.WithSeed(s.seed))
	}
	return opts
}
