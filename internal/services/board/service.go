package board

import (
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/dependencies/random"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

// Service generates boards. Boards live inside their match, so there is
// no storage here; the match service owns persistence.
type Service struct {
	random random.Random
}

// New creates a new BoardService
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Generate produces a board holding a uniformly random permutation of
// 1..25 arranged row-major.
func (s *Service) Generate() *model.Board {
	values := make([]int, model.MaxValue)
	for i := range values {
		values[i] = i + 1
	}

	// Fisher-Yates
	for i := len(values) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}

	return model.NewBoardFromValues(values)
}

// ValidateValue checks that a chosen number is inside the shared value space
func ValidateValue(value int) error {
	if value < 1 || value > model.MaxValue {
		return model.ErrInvalidNumber
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate() *model.Board
}

var _ ServiceInterface = (*Service)(nil)
