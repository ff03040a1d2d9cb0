package searcher

import (
	"context"
	"fmt"
	"math"
	"time"

	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS chooses moves with Monte Carlo tree search and keeps the subtree of
// the chosen move for the next call. It is not safe for concurrent use.
type MCTS struct {
	rules            game.Rules
	iterationsNew    int
	iterationsReused int
	exploration      float64
	random           *rand.Rand
	tree             *tree
	metrics          metrics.Collector
	lastMetric       metrics.SearchMetric
}

// WithIterations sets the budgets for searches from a fresh tree and from a
// reused subtree.
func WithIterations(newTree, reusedTree int) Option {
	return func(m *MCTS) {
		if newTree > 0 {
			m.iterationsNew = newTree
		}
		if reusedTree > 0 {
			m.iterationsReused = reusedTree
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.random = rand.New(rand.NewSource(seed))
	}
}

func WithRand(random *rand.Rand) Option {
	return func(m *MCTS) {
		if random != nil {
			m.random = random
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(m *MCTS) {
		if rules != nil {
			m.rules = rules
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		rules:            game.NewStandardRules(),
		iterationsNew:    meta.ITERATIONS_NEW,
		iterationsReused: meta.ITERATIONS_REUSED,
		exploration:      DefaultExploration,
		tree:             newTree(),
		metrics:          metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// ChooseMove returns the UCI move to play in the position, or an empty string
// when the side to move has no legal move. The subtree of the returned move
// is kept and reused if the next position is one of its children.
//
// The context is checked between iterations. A cancelled search answers from
// the statistics gathered so far, or returns the context error if no move has
// been explored yet.
func (m *MCTS) ChooseMove(ctx context.Context, fen string) (string, error) {
	position, err := game.Canonical(m.rules, fen)
	if err != nil {
		return "", fmt.Errorf("failed to choose move: %w", err)
	}

	budget, reused := m.reuseTree(position)
	m.metrics.Start(budget)
	m.metrics.SetTreeReused(reused)

	for i := 0; i < budget; i++ {
		if ctx.Err() != nil {
			log.Debug().Msgf("search stopped after %d of %d iterations", i, budget)
			break
		}
		if err := m.iterate(); err != nil {
			m.Reset() // A failed iteration can leave unvisited children behind
			return "", err
		}
	}

	root := m.tree.get(m.tree.root)
	m.lastMetric = m.metrics.Complete(m.tree.size, root.visits)
	if root.isLeaf() {
		if ctx.Err() != nil && !m.isTerminal(root.position) {
			return "", ctx.Err()
		}
		return "", nil
	}

	best := m.bestChild(m.tree.root)
	m.tree.promote(best)
	return m.tree.get(best).move, nil
}

func (m *MCTS) isTerminal(position string) bool {
	board, err := m.rules.Parse(position)
	return err == nil && len(board.LegalMoves()) == 0
}

// Metric returns the metrics of the last search, when collected.
func (m *MCTS) Metric() metrics.SearchMetric {
	return m.lastMetric
}

// Reset discards the retained tree.
func (m *MCTS) Reset() {
	m.tree = newTree()
}

func (m *MCTS) iterate() error {
	leaf := m.selectLeaf(m.tree.root)
	leaf, err := m.expand(leaf)
	if err != nil {
		return err
	}
	result, plies, err := m.simulate(leaf)
	if err != nil {
		return err
	}
	m.tree.backpropagate(leaf, result)
	m.metrics.AddEpisode(plies)
	return nil
}

// reuseTree roots the tree at position and returns the iteration budget.
func (m *MCTS) reuseTree(position string) (budget int, reused bool) {
	t := m.tree
	if t.root == noNode {
		t.reset(position)
		return m.iterationsNew, false
	}

	for _, child := range t.get(t.root).children {
		if t.get(child).position == position {
			t.promote(child)
			log.Debug().Msgf("reusing subtree with %d visits and %d nodes", t.get(child).visits, t.size)
			return m.iterationsReused, true
		}
	}

	log.Debug().Msg("position not found among explored replies, starting a new tree")
	t.reset(position)
	return m.iterationsNew, false
}

// selectLeaf descends by maximum UCB1, taking the first child on ties.
func (m *MCTS) selectLeaf(id nodeID) nodeID {
	c2 := m.exploration * m.exploration
	for !m.tree.get(id).isLeaf() {
		n := m.tree.get(id)
		if n.visits == 0 {
			panic("node has children but no visits")
		}

		normalizer := c2 * math.Log(float64(n.visits))
		best := noNode
		bestScore := math.Inf(-1)
		for _, child := range n.children {
			c := m.tree.get(child)
			score := ucb1(c.wins, c.visits, normalizer)
			if score == math.Inf(1) {
				best = child
				break
			}
			if score > bestScore {
				bestScore = score
				best = child
			}
		}
		id = best
	}
	return id
}

// expand adds one child per legal move to a leaf and returns the first one.
// A terminal leaf is returned unchanged.
func (m *MCTS) expand(id nodeID) (nodeID, error) {
	if !m.tree.get(id).isLeaf() {
		panic("expanding a node with children")
	}

	board, err := m.rules.Parse(m.tree.get(id).position)
	if err != nil {
		return noNode, fmt.Errorf("failed to expand node: %w", err)
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return id, nil
	}
	for _, move := range moves {
		undo := board.Apply(move)
		m.tree.add(id, board.FEN(), move.String())
		undo()
	}
	return m.tree.get(id).children[0], nil
}

// simulate plays uniformly random moves until the game is over and returns
// the reward for the player who moved into the node, with the number of
// plies played.
func (m *MCTS) simulate(id nodeID) (float64, int, error) {
	board, err := m.rules.Parse(m.tree.get(id).position)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to simulate node: %w", err)
	}

	perspective := board.SideToMove()
	plies := 0
	outcome := board.Outcome()
	for outcome == game.Ongoing {
		moves := board.LegalMoves()
		board.Apply(moves[m.random.Intn(len(moves))]) // Random rollout policy
		plies++
		outcome = board.Outcome()
	}

	if outcome == game.Draw {
		return Draw, plies, nil
	}
	// The side to move is checkmated. Mating the side that started the
	// rollout is a win for the player who moved into the node.
	if board.SideToMove() == perspective {
		return Win, plies, nil
	}
	return Loss, plies, nil
}

// bestChild returns the most visited child, taking the first one on ties.
func (m *MCTS) bestChild(id nodeID) nodeID {
	children := m.tree.get(id).children
	best := children[0]
	maxVisits := m.tree.get(best).visits
	for _, child := range children[1:] {
		if v := m.tree.get(child).visits; v > maxVisits {
			maxVisits = v
			best = child
		}
	}
	return best
}
