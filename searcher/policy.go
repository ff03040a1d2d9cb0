package searcher

import "math"

// Hyperparameters for MCTS

// DefaultExploration is the UCB1 constant C. C = 0 yields pure exploitation.
const DefaultExploration = math.Sqrt2

// Rollout rewards, credited to the player who moved into a node
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 1 - Win
)

// ucb1 computes wins/visits + sqrt(c^2*ln(N)/visits), where c2LnN is
// precomputed from the parent's visits N.
func ucb1(wins float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return wins/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}
