package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"seabattle/internal/model"
)

type ArchiveSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	archive *Archive
	ctx     context.Context
}

func TestArchiveSuite(t *testing.T) {
	suite.Run(t, new(ArchiveSuite))
}

func (s *ArchiveSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client := redislib.NewClient(&redislib.Options{Addr: s.mr.Addr()})
	cfg := DefaultConfig()
	cfg.KeepResults = 5
	s.archive = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *ArchiveSuite) TearDownTest() {
	s.Require().NoError(s.archive.Close())
}

func (s *ArchiveSuite) result(name string) *model.GameResult {
	return &model.GameResult{
		Name:       model.GameName(name),
		Winner:     "alice",
		Loser:      "bob",
		Moves:      7,
		FinishedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *ArchiveSuite) TestRecordAndRecent() {
	s.Require().NoError(s.archive.Record(s.ctx, s.result("G1")))
	s.Require().NoError(s.archive.Record(s.ctx, s.result("G2")))

	results, err := s.archive.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)

	// Most recent first.
	s.Equal(model.GameName("G2"), results[0].Name)
	s.Equal(model.GameName("G1"), results[1].Name)
	s.Equal(model.Login("alice"), results[0].Winner)
	s.Equal(model.Login("bob"), results[0].Loser)
	s.Equal(7, results[0].Moves)
}

func (s *ArchiveSuite) TestRecentOnEmptyList() {
	results, err := s.archive.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(results)
}

func (s *ArchiveSuite) TestRecordTrimsOldResults() {
	for i := 0; i < 8; i++ {
		s.Require().NoError(s.archive.Record(s.ctx, s.result(fmt.Sprintf("G%d", i))))
	}

	results, err := s.archive.Recent(s.ctx, 100)
	s.Require().NoError(err)
	s.Require().Len(results, 5, "list must be trimmed to KeepResults")
	s.Equal(model.GameName("G7"), results[0].Name)
	s.Equal(model.GameName("G3"), results[4].Name)
}

func (s *ArchiveSuite) TestRecordAfterServerLoss() {
	s.mr.Close()

	err := s.archive.Record(s.ctx, s.result("G1"))
	s.Error(err)
}
