package puzgen

import (
	"fmt"
	"strconv"

	"github.com/notnil/chess"
)

const defaultElo = 1500

func eloCoeff(elo int) int {
	if elo >= 2400 {
		return 10
	}
	if elo >= 2000 {
		return 20
	}
	return 40
}

// estimateRating rates a mate found in a game played at playerElo. Short
// mates rate below the player, long ones above.
func estimateRating(mateIn int, playerElo int) int {
	// a solver trying every check finds a mate in n with odds of about 1/n
	expectedPercent := 0.5
	percent := 1 / float64(mateIn)

	coeff := eloCoeff(playerElo)

	return playerElo + int(float64(coeff)*10*(expectedPercent-percent))
}

type gameInfo struct {
	site     string
	whiteElo int
	blackElo int
}

func readGameInfo(game *chess.Game) gameInfo {
	tag := func(key string) string {
		if pair := game.GetTagPair(key); pair != nil {
			return pair.Value
		}
		return ""
	}
	parseElo := func(s string) int {
		elo, err := strconv.Atoi(s)
		if err != nil {
			return defaultElo
		}
		return elo
	}
	return gameInfo{
		site:     tag("Site"),
		whiteElo: parseElo(tag("WhiteElo")),
		blackElo: parseElo(tag("BlackElo")),
	}
}

func (g gameInfo) elo(side chess.Color) int {
	if side == chess.White {
		return g.whiteElo
	}
	return g.blackElo
}

func (g gameInfo) link(ply int) string {
	if g.site == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", g.site, ply)
}
