package domain

// Cell is one slot of the grid. Matched marks membership in a winning line
// and only matters for highlighting.
type Cell struct {
	Player  PlayerID `json:"player"`
	Matched bool     `json:"matched"`
}

// Board is a value type so that assigning it copies every cell.
// here board[0] represents the top row (0 -> top and 5 -> bottom)
type Board [Rows][Columns]Cell

type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewBoard() Board {
	return Board{}
}

func (b *Board) At(row, column int) PlayerID {
	return b[row][column].Player
}

// LowestEmptyRow scans the column from the bottom up.
// The column must be inside the grid; range checks belong to ValidateDrop.
func (b *Board) LowestEmptyRow(column int) (int, bool) {
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column].Player == Empty {
			return row, true
		}
	}
	return -1, false
}

// Place is the unchecked primitive behind every drop.
func (b *Board) Place(row, column int, player PlayerID) {
	b[row][column].Player = player
}

func (b *Board) IsColumnFull(column int) bool {
	return b[0][column].Player != Empty
}

func (b *Board) IsFull() bool {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col].Player == Empty {
				return false
			}
		}
	}
	return true
}

// DropDisk validates the column and places the disk in the lowest empty row.
func (b *Board) DropDisk(column int, player PlayerID) (int, error) {
	if err := ValidateDrop(b, column); err != nil {
		return -1, err
	}
	row, _ := b.LowestEmptyRow(column)
	b.Place(row, column, player)
	return row, nil
}

// this is a helper function used by the bot
func (b *Board) ValidMoves() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if !b.IsColumnFull(col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// Simulate drops a disk into a copy of the board; the receiver is untouched.
func (b Board) Simulate(column int, player PlayerID) (Board, int, error) {
	row, err := b.DropDisk(column, player)
	if err != nil {
		return b, -1, err
	}
	return b, row, nil
}

// MarkLine flags every cell of a winning line for highlighting.
func (b *Board) MarkLine(line WinningLine) {
	for _, p := range line {
		b[p.Row][p.Column].Matched = true
	}
}

func (b *Board) CountPieces() int {
	count := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col].Player != Empty {
				count++
			}
		}
	}
	return count
}

// Grid converts the board to plain ints for JSON clients.
func (b Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for row := range grid {
		grid[row] = make([]int, Columns)
		for col := range grid[row] {
			grid[row][col] = int(b[row][col].Player)
		}
	}
	return grid
}

// ParseBoard builds a Board from a client supplied grid. The grid must be
// 6x7, hold only 0/1/2 and respect gravity (no disk above an empty cell).
func ParseBoard(grid [][]int) (Board, error) {
	var b Board
	if len(grid) != Rows {
		return b, ErrInvalidBoard
	}
	for row := range grid {
		if len(grid[row]) != Columns {
			return b, ErrInvalidBoard
		}
		for col, v := range grid[row] {
			p := PlayerID(v)
			if p != Empty && !p.IsPlayer() {
				return b, ErrInvalidBoard
			}
			b[row][col].Player = p
		}
	}

	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows-1; row++ {
			if b[row][col].Player != Empty && b[row+1][col].Player == Empty {
				return b, ErrInvalidBoard
			}
		}
	}
	return b, nil
}

// this counts the number of disks in a specific direction
func (b *Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for inBounds(r, c) && b[r][c].Player == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
