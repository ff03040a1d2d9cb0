package game

type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (sr *StandardRules) Parse(fen string) (Board, error) {
	return ParseFEN(fen)
}

// Canonical parses a FEN and serializes it back, so that positions reached
// through different move orders compare equal as strings.
func Canonical(r Rules, fen string) (string, error) {
	board, err := r.Parse(fen)
	if err != nil {
		return "", err
	}
	return board.FEN(), nil
}
