package domain

// WinningLine lists the connected cells of a win, ordered along the axis.
type WinningLine []Position

// axes in the order they are checked: horizontal, vertical, diagonal \, diagonal /
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckWin only looks at lines passing through (row, column), the disk just placed.
// The first axis reaching ToWin is returned with every connected cell on it.
func CheckWin(board *Board, row, column int, player PlayerID) (WinningLine, bool) {
	for _, axis := range axes {
		dRow, dCol := axis[0], axis[1]

		back := board.CountDiskInDirection(row, column, -dRow, -dCol, player)
		forward := board.CountDiskInDirection(row, column, dRow, dCol, player)
		if back+forward+1 < ToWin {
			continue
		}

		line := make(WinningLine, 0, back+forward+1)
		for i := -back; i <= forward; i++ {
			line = append(line, Position{Row: row + i*dRow, Column: column + i*dCol})
		}
		return line, true
	}
	return nil, false
}

// FindWinner scans the whole board. Simulated positions have no single
// "last move" so the search uses this instead of CheckWin.
func FindWinner(board *Board) (PlayerID, bool) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			player := board[row][col].Player
			if player == Empty {
				continue
			}
			for _, axis := range axes {
				if board.CountDiskInDirection(row, col, axis[0], axis[1], player) >= ToWin-1 {
					return player, true
				}
			}
		}
	}
	return Empty, false
}
