package engine

import (
	"log"
	"sync"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
)

// ScoreStore is the key-value collaborator holding the best score
type ScoreStore interface {
	Get(key string) (int, bool, error)
	Set(key string, value int) error
}

// LoadHighScore reads the persisted best score
// Any failure is logged and yields 0 so a broken store never blocks a start
func LoadHighScore(store ScoreStore) int {
	if store == nil {
		return 0
	}
	v, ok, err := store.Get(constants.HighScoreKey)
	if err != nil {
		log.Printf("high score load failed, using 0: %v", err)
		return 0
	}
	if !ok || v < 0 {
		return 0
	}
	return v
}

// scorePersister writes high scores off the simulation path
// Only the latest pending value is kept
type scorePersister struct {
	store   ScoreStore
	pending chan int

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func newScorePersister(store ScoreStore) *scorePersister {
	p := &scorePersister{
		store:   store,
		pending: make(chan int, 1),
	}
	if store != nil {
		p.wg.Add(1)
		core.Go(p.run)
	}
	return p
}

// Save queues value, replacing a value not yet written
func (p *scorePersister) Save(value int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.store == nil {
		return
	}
	for {
		select {
		case p.pending <- value:
			return
		default:
		}
		select {
		case <-p.pending:
		default:
		}
	}
}

// Close flushes the pending value and stops the writer
func (p *scorePersister) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.pending)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *scorePersister) run() {
	defer p.wg.Done()
	for v := range p.pending {
		if err := p.store.Set(constants.HighScoreKey, v); err != nil {
			log.Printf("high score save failed (%d): %v", v, err)
		}
	}
}
