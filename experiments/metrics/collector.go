package metrics

import (
	"time"
)

type SearchMetric struct {
	StartTime    time.Time
	Duration     time.Duration
	Budget       int
	Episodes     int
	RolloutPlies int
	TreeSize     int
	RootVisits   int
	IsTreeReused bool
}

type MoveMetric struct {
	Step   int
	Player string // "white" or "black"
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // Empty for draws and unfinished games
	Termination    string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records the progress of a single search. Start resets it.
type Collector interface {
	Start(budget int)
	SetTreeReused(value bool)
	AddEpisode(rolloutPlies int)
	Complete(treeSize, rootVisits int) SearchMetric
}

type collector struct {
	startTime    time.Time
	budget       int
	episodes     int
	rolloutPlies int
	isTreeReused bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget int) {
	m.startTime = time.Now()
	m.budget = budget
	m.episodes = 0
	m.rolloutPlies = 0
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused = value
}

func (m *collector) AddEpisode(rolloutPlies int) {
	m.episodes++
	m.rolloutPlies += rolloutPlies
}

func (m *collector) Complete(treeSize, rootVisits int) SearchMetric {
	return SearchMetric{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Budget:       m.budget,
		Episodes:     m.episodes,
		RolloutPlies: m.rolloutPlies,
		TreeSize:     treeSize,
		RootVisits:   rootVisits,
		IsTreeReused: m.isTreeReused,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget int)                               {}
func (m *dummyCollector) SetTreeReused(value bool)                       {}
func (m *dummyCollector) AddEpisode(rolloutPlies int)                    {}
func (m *dummyCollector) Complete(treeSize, rootVisits int) SearchMetric { return SearchMetric{} }
