package domain

// ValidateDrop checks a drop before any mutation happens.
// Terminal games are rejected earlier by Game.Drop.
func ValidateDrop(board *Board, column int) error {
	if column < 0 || column >= Columns {
		return ErrColumnOutOfRange
	}
	if _, ok := board.LowestEmptyRow(column); !ok {
		return ErrColumnFull
	}
	return nil
}
