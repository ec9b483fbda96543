package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one call to MoveProbabilities.
type SearchMetric struct {
	Goroutines       int
	Duration         time.Duration
	Playouts         int64
	TerminalPlayouts int64
	TreeReused       bool
	TreeSize         int
}

type Collector interface {
	Start(goroutines int, treeReused bool)
	AddPlayout()
	AddTerminalPlayout()
	Complete() SearchMetric
}

type collector struct {
	goroutines       int
	treeReused       bool
	startTime        time.Time
	playouts         atomic.Int64
	terminalPlayouts atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, treeReused bool) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.treeReused = treeReused
	m.playouts.Store(0)
	m.terminalPlayouts.Store(0)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddTerminalPlayout() {
	m.terminalPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:       m.goroutines,
		Duration:         time.Since(m.startTime),
		Playouts:         m.playouts.Load(),
		TerminalPlayouts: m.terminalPlayouts.Load(),
		TreeReused:       m.treeReused,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, treeReused bool) {}
func (m *dummyCollector) AddPlayout()                           {}
func (m *dummyCollector) AddTerminalPlayout()                   {}
func (m *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
