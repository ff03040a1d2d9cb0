// meta/meta.go
package meta

// ITERATIONS_NEW is the MCTS budget when a search starts from a fresh tree.
const ITERATIONS_NEW = 5000

// ITERATIONS_REUSED is the MCTS budget when a search reuses a subtree.
const ITERATIONS_REUSED = 500

// NEGAMAX_DEPTH is the default search depth of the negamax agent.
const NEGAMAX_DEPTH = 2

// MAX_PLIES ends a self-play game undecided.
const MAX_PLIES = 600

// GAMES is the number of games per match up.
const GAMES = 10
