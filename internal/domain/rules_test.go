package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckWin(t *testing.T) {
	t.Run("horizontal run of three is not a win", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"111....",
		)
		line, won := CheckWin(&b, 5, 2, Player1)
		require.False(t, won)
		require.Nil(t, line)
	})

	t.Run("horizontal win completed in the middle", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			".1111..",
		)
		line, won := CheckWin(&b, 5, 2, Player1)
		require.True(t, won)
		require.Equal(t, WinningLine{{5, 1}, {5, 2}, {5, 3}, {5, 4}}, line)
	})

	t.Run("run of five marks all five cells", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"22222..",
		)
		line, won := CheckWin(&b, 5, 2, Player2)
		require.True(t, won)
		require.Len(t, line, 5)
		require.Equal(t, Position{5, 0}, line[0])
		require.Equal(t, Position{5, 4}, line[4])
	})

	t.Run("vertical", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			"1......",
			"1......",
			"1......",
			"1......",
		)
		line, won := CheckWin(&b, 2, 0, Player1)
		require.True(t, won)
		require.Equal(t, WinningLine{{2, 0}, {3, 0}, {4, 0}, {5, 0}}, line)
	})

	t.Run("diagonal down-right", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			"2......",
			"12.....",
			"112....",
			"1212...",
		)
		line, won := CheckWin(&b, 4, 2, Player2)
		require.True(t, won)
		require.Equal(t, WinningLine{{2, 0}, {3, 1}, {4, 2}, {5, 3}}, line)
	})

	t.Run("diagonal down-left", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			"......1",
			".....12",
			"....122",
			"...1212",
		)
		line, won := CheckWin(&b, 2, 6, Player1)
		require.True(t, won)
		require.Equal(t, WinningLine{{2, 6}, {3, 5}, {4, 4}, {5, 3}}, line)
	})

	t.Run("other player's disks do not count", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"1121...",
		)
		_, won := CheckWin(&b, 5, 3, Player1)
		require.False(t, won)
	})

	t.Run("horizontal is preferred over vertical when both complete", func(t *testing.T) {
		b := boardFrom(t,
			".......",
			".......",
			"...1...",
			"...1...",
			"...1...",
			"1111...",
		)
		line, won := CheckWin(&b, 5, 3, Player1)
		require.True(t, won)
		require.Equal(t, WinningLine{{5, 0}, {5, 1}, {5, 2}, {5, 3}}, line)
	})
}

func TestFindWinner(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		".......",
		"....2..",
		"...21..",
		"..2111.",
	)
	_, ok := FindWinner(&b)
	require.False(t, ok)

	b[4][5].Player = Player1
	b[3][5].Player = Player1
	b[2][5].Player = Player2
	// 2 at (5,2),(4,3),(3,4),(2,5)
	winner, ok := FindWinner(&b)
	require.True(t, ok)
	require.Equal(t, Player2, winner)
}

func TestMarkLine(t *testing.T) {
	b := NewBoard()
	b.MarkLine(WinningLine{{5, 0}, {5, 1}})
	require.True(t, b[5][0].Matched)
	require.True(t, b[5][1].Matched)
	require.False(t, b[5][2].Matched)
}
