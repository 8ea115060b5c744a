package service

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/riot"
)

var (
	blueRoster = models.Roster{1, 2, 3, 4, 5}
	redRoster  = models.Roster{6, 7, 8, 9, 10}
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMatch(id int64, blue, red models.Roster, winner models.Team) *models.Match {
	return &models.Match{
		ID:          id,
		MatchID:     fmt.Sprintf("EUW1_%d", id),
		GameStart:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		QueueID:     420,
		ServerID:    "EUW1",
		Blue:        blue,
		Red:         red,
		WinningTeam: winner,
	}
}

// newDTO builds a match payload; winnerTeamID 0 means nobody won
func newDTO(matchID string, queue int32, winnerTeamID int, puuids ...string) *riot.MatchDTO {
	dto := &riot.MatchDTO{}
	dto.Metadata.MatchID = matchID
	dto.Metadata.Participants = puuids
	dto.Info.GameStartTimestamp = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	dto.Info.GameVersion = "14.5.1"
	dto.Info.QueueID = queue
	dto.Info.PlatformID = "EUW1"
	for i := 0; i < models.RosterSize; i++ {
		dto.Info.Participants = append(dto.Info.Participants,
			riot.ParticipantDTO{ChampionID: int32(blueRoster[i]), TeamID: 100},
			riot.ParticipantDTO{ChampionID: int32(redRoster[i]), TeamID: 200},
		)
	}
	dto.Info.Teams = []riot.TeamDTO{
		{TeamID: 100, Win: winnerTeamID == 100},
		{TeamID: 200, Win: winnerTeamID == 200},
	}
	return dto
}
