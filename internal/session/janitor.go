package session

import (
	"log"
	"time"
)

// Janitor periodically evicts idle sessions from a store
type Janitor struct {
	store    *Store
	interval time.Duration
	maxIdle  time.Duration
	stopChan chan struct{}
}

// NewJanitor creates a janitor that sweeps every interval
func NewJanitor(store *Store, interval, maxIdle time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		interval: interval,
		maxIdle:  maxIdle,
		stopChan: make(chan struct{}),
	}
}

// Start begins periodic sweeping
func (j *Janitor) Start() {
	ticker := time.NewTicker(j.interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Session janitor started (interval: %s, max idle: %s)", j.interval, j.maxIdle)
}

// Stop stops the janitor
func (j *Janitor) Stop() {
	close(j.stopChan)
	log.Println("Session janitor stopped")
}

func (j *Janitor) sweep() {
	if n := j.store.Sweep(j.maxIdle); n > 0 {
		log.Printf("Evicted %d idle sessions (%d remaining)", n, j.store.Len())
	}
}
