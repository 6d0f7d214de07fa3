package battleship

import (
	"log"
	"sync"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

// One human plays one computer per process.
const maxActiveGames = 1

type GameManager interface {
	CreateGame(opts ...Option) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	ActiveGames() int
}

type BattleshipGameManager struct {
	games map[string]*Game
	limit int
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, maxActiveGames),
		limit: maxActiveGames,
	}
}

func (bgm *BattleshipGameManager) CreateGame(opts ...Option) (*Game, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	if len(bgm.games) >= bgm.limit {
		return nil, cerr.ErrActiveGameLimit(bgm.limit)
	}

	game, err := NewGame(opts...)
	if err != nil {
		return nil, err
	}
	bgm.games[game.Uuid] = game

	log.Printf("game created: %s\n", game.Uuid)
	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}
	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
	log.Printf("game terminated: %s\n", gameUuid)
}

func (bgm *BattleshipGameManager) ActiveGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
