package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"seabattle/internal/dependencies/mocks"
	"seabattle/internal/engine"
	"seabattle/internal/model"
	"seabattle/internal/testutil"
)

type GamesSuite struct {
	suite.Suite
	clock *mocks.MockClock
	games *Games
}

func TestGamesSuite(t *testing.T) {
	suite.Run(t, new(GamesSuite))
}

func (s *GamesSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.games = NewGames(s.clock, testutil.NopLogger())
}

// fleet builds a valid fleet with ship cells at the given half-relative
// coordinates.
func (s *GamesSuite) fleet(ships ...[2]int) model.Fleet {
	rows := make([][]byte, model.FieldRows)
	for i := range rows {
		rows[i] = []byte(strings.Repeat(".", model.FieldCols))
	}
	for _, ship := range ships {
		rows[ship[0]][ship[1]] = '@'
	}
	lines := make([]string, model.FieldRows)
	for i, row := range rows {
		lines[i] = string(row)
	}
	fleet, err := engine.ParseFleet(lines)
	s.Require().NoError(err)
	return fleet
}

// startGame creates a game with both players and both fleets placed.
func (s *GamesSuite) startGame(name model.GameName, ships ...[2]int) {
	s.Require().NoError(s.games.Create(name, "p0"))
	_, err := s.games.Join(name, "p1")
	s.Require().NoError(err)

	_, err = s.games.PlaceFleet(name, "p0", s.fleet(ships...))
	s.Require().NoError(err)
	notice, err := s.games.PlaceFleet(name, "p1", s.fleet(ships...))
	s.Require().NoError(err)
	s.Require().NotNil(notice)
}

func (s *GamesSuite) TestCreateSucceeds() {
	err := s.games.Create("G1", "p0")
	s.Require().NoError(err)

	game, ok := s.games.Find("G1")
	s.True(ok)
	s.Equal(model.UserID("p0"), game.Players[0])
	s.True(game.IsOpen())
	s.Equal(model.PhaseAwaitingFleets, game.Phase)
}

func (s *GamesSuite) TestCreateDuplicateNameFails() {
	s.Require().NoError(s.games.Create("G1", "p0"))

	err := s.games.Create("G1", "p1")
	s.ErrorIs(err, model.ErrGameNameTaken)
}

func (s *GamesSuite) TestListOpenOnlyShowsJoinableGames() {
	s.Require().NoError(s.games.Create("open-b", "p0"))
	s.Require().NoError(s.games.Create("open-a", "p1"))
	s.Require().NoError(s.games.Create("full", "p2"))
	_, err := s.games.Join("full", "p3")
	s.Require().NoError(err)

	s.Equal([]model.GameName{"open-a", "open-b"}, s.games.ListOpen())
}

func (s *GamesSuite) TestJoinReturnsWaitingPlayer() {
	s.Require().NoError(s.games.Create("G1", "p0"))

	host, err := s.games.Join("G1", "p1")
	s.Require().NoError(err)
	s.Equal(model.UserID("p0"), host)

	game, _ := s.games.Find("G1")
	s.False(game.IsOpen())
}

func (s *GamesSuite) TestJoinUnknownGameFails() {
	_, err := s.games.Join("missing", "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *GamesSuite) TestJoinFullGameFails() {
	s.Require().NoError(s.games.Create("G1", "p0"))
	_, err := s.games.Join("G1", "p1")
	s.Require().NoError(err)

	_, err = s.games.Join("G1", "p2")
	s.ErrorIs(err, model.ErrGameFull)
}

func (s *GamesSuite) TestGameNeverExceedsTwoOccupants() {
	s.Require().NoError(s.games.Create("G1", "p0"))
	_, _ = s.games.Join("G1", "p1")
	_, _ = s.games.Join("G1", "p2")
	_, _ = s.games.Join("G1", "p3")

	game, _ := s.games.Find("G1")
	s.Equal([2]model.UserID{"p0", "p1"}, game.Players)
}

func (s *GamesSuite) TestPlaceFleetFirstSubmission() {
	s.Require().NoError(s.games.Create("G1", "p0"))
	_, err := s.games.Join("G1", "p1")
	s.Require().NoError(err)

	notice, err := s.games.PlaceFleet("G1", "p0", s.fleet([2]int{0, 0}))
	s.Require().NoError(err)
	s.Nil(notice, "first fleet must not start the game")

	game, _ := s.games.Find("G1")
	s.Equal(model.PhaseOneFleetPlaced, game.Phase)
	s.Equal(model.Ship, game.Field[0][0])
}

func (s *GamesSuite) TestPlaceFleetSecondSubmissionStartsGame() {
	s.Require().NoError(s.games.Create("G1", "p0"))
	_, err := s.games.Join("G1", "p1")
	s.Require().NoError(err)

	_, err = s.games.PlaceFleet("G1", "p0", s.fleet([2]int{0, 0}))
	s.Require().NoError(err)
	notice, err := s.games.PlaceFleet("G1", "p1", s.fleet([2]int{5, 5}))
	s.Require().NoError(err)

	s.Require().NotNil(notice)
	s.Equal(model.UserID("p0"), notice.First)
	s.Equal(model.UserID("p1"), notice.Second)

	game, _ := s.games.Find("G1")
	s.Equal(model.PhaseInProgress, game.Phase)
	// Joiner's fleet lands in the second half.
	s.Equal(model.Ship, game.Field[5][5+model.FieldCols])
}

func (s *GamesSuite) TestPlaceFleetResubmissionBeforeStartOverwrites() {
	s.Require().NoError(s.games.Create("G1", "p0"))

	_, err := s.games.PlaceFleet("G1", "p0", s.fleet([2]int{0, 0}))
	s.Require().NoError(err)
	notice, err := s.games.PlaceFleet("G1", "p0", s.fleet([2]int{9, 9}))
	s.Require().NoError(err)
	s.Nil(notice, "resubmission by the same player must not start the game")

	game, _ := s.games.Find("G1")
	s.Equal(model.Sea, game.Field[0][0])
	s.Equal(model.Ship, game.Field[9][9])
}

func (s *GamesSuite) TestPlaceFleetByOutsiderFails() {
	s.Require().NoError(s.games.Create("G1", "p0"))

	_, err := s.games.PlaceFleet("G1", "intruder", s.fleet())
	s.ErrorIs(err, model.ErrNotInGame)
}

func (s *GamesSuite) TestPlaceFleetUnknownGameFails() {
	_, err := s.games.PlaceFleet("missing", "p0", s.fleet())
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *GamesSuite) TestPlaceFleetAfterStartFails() {
	s.startGame("G1", [2]int{0, 0})

	_, err := s.games.PlaceFleet("G1", "p0", s.fleet([2]int{1, 1}))
	s.ErrorIs(err, model.ErrGameStarted)
}

func (s *GamesSuite) TestShootMiss() {
	s.startGame("G1", [2]int{0, 0})

	report, err := s.games.Shoot("G1", "p0", 5, 5)
	s.Require().NoError(err)

	s.Equal(model.DamagedSea, report.Result)
	s.Equal(model.UserID("p1"), report.Opponent)
	s.False(report.GameOver)
	s.Equal(1, report.Moves)
}

func (s *GamesSuite) TestShootHitsOpponentHalf() {
	s.startGame("G1", [2]int{3, 3}, [2]int{3, 4})

	// p0 fires into p1's half, p1 fires into p0's half.
	report, err := s.games.Shoot("G1", "p0", 3, 3)
	s.Require().NoError(err)
	s.Equal(model.DamagedShip, report.Result)

	game, _ := s.games.Find("G1")
	s.Equal(model.DamagedShip, game.Field[3][3+model.FieldCols])
	s.Equal(model.Ship, game.Field[3][3], "own half must be untouched")

	report, err = s.games.Shoot("G1", "p1", 3, 3)
	s.Require().NoError(err)
	s.Equal(model.DamagedShip, report.Result)
}

func (s *GamesSuite) TestShootFinalHitRemovesGame() {
	s.startGame("G1", [2]int{0, 0})

	report, err := s.games.Shoot("G1", "p0", 0, 0)
	s.Require().NoError(err)

	s.Equal(model.Destroyed, report.Result)
	s.True(report.GameOver)

	_, ok := s.games.Find("G1")
	s.False(ok, "finished game must be removed immediately")
}

func (s *GamesSuite) TestShootUnknownGameFails() {
	_, err := s.games.Shoot("missing", "p0", 0, 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *GamesSuite) TestShootByOutsiderFails() {
	s.startGame("G1", [2]int{0, 0})

	_, err := s.games.Shoot("G1", "intruder", 0, 0)
	s.ErrorIs(err, model.ErrNotInGame)
}

func (s *GamesSuite) TestShootOutOfRangeFails() {
	s.startGame("G1", [2]int{0, 0})

	for _, shot := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		_, err := s.games.Shoot("G1", "p0", shot[0], shot[1])
		s.ErrorIs(err, model.ErrInvalidShot)
	}
}

func (s *GamesSuite) TestRemove() {
	s.Require().NoError(s.games.Create("G1", "p0"))

	s.games.Remove("G1")

	_, ok := s.games.Find("G1")
	s.False(ok)
}
