package riot

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/champ-predictor/internal/models"
)

const (
	blueTeamID = 100
	redTeamID  = 200

	// ArenaQueueID is the 2v2v2v2 arena queue, which has no blue/red draft
	ArenaQueueID = 1700
)

// ErrNoWinner is returned for remakes and other matches without a winning team
var ErrNoWinner = errors.New("match has no winning team")

// MatchDTO is the subset of the match-v5 payload the predictor stores
type MatchDTO struct {
	Metadata struct {
		MatchID      string   `json:"matchId"`
		Participants []string `json:"participants"`
	} `json:"metadata"`
	Info struct {
		EndOfGameResult    string           `json:"endOfGameResult"`
		GameStartTimestamp int64            `json:"gameStartTimestamp"`
		GameVersion        string           `json:"gameVersion"`
		QueueID            int32            `json:"queueId"`
		PlatformID         string           `json:"platformId"`
		Participants       []ParticipantDTO `json:"participants"`
		Teams              []TeamDTO        `json:"teams"`
	} `json:"info"`
}

// ParticipantDTO is one player in a match
type ParticipantDTO struct {
	PUUID        string `json:"puuid"`
	ChampionID   int32  `json:"championId"`
	ChampionName string `json:"championName"`
	TeamID       int    `json:"teamId"`
}

// TeamDTO is one side's result
type TeamDTO struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// PUUIDs returns the players of the match, used to discover new players to crawl
func (m *MatchDTO) PUUIDs() []string {
	if len(m.Metadata.Participants) > 0 {
		return m.Metadata.Participants
	}
	puuids := make([]string, 0, len(m.Info.Participants))
	for _, p := range m.Info.Participants {
		if p.PUUID != "" {
			puuids = append(puuids, p.PUUID)
		}
	}
	return puuids
}

// IsArena reports whether the match was played in the arena queue
func (m *MatchDTO) IsArena() bool {
	return m.Info.QueueID == ArenaQueueID
}

// ToMatch converts the payload into a stored match. Team 100 is blue and
// team 200 is red; rosters keep participant order.
func (m *MatchDTO) ToMatch() (*models.Match, error) {
	match := &models.Match{
		MatchID:     m.Metadata.MatchID,
		GameStart:   time.UnixMilli(m.Info.GameStartTimestamp).UTC(),
		GameVersion: m.Info.GameVersion,
		QueueID:     m.Info.QueueID,
		ServerID:    m.Info.PlatformID,
	}

	for _, p := range m.Info.Participants {
		switch p.TeamID {
		case blueTeamID:
			match.Blue = append(match.Blue, models.ChampionID(p.ChampionID))
		case redTeamID:
			match.Red = append(match.Red, models.ChampionID(p.ChampionID))
		default:
			return nil, fmt.Errorf("match %s: unexpected team id %d", match.MatchID, p.TeamID)
		}
	}

	winner, err := m.winningTeam()
	if err != nil {
		return nil, err
	}
	match.WinningTeam = winner

	return match, nil
}

func (m *MatchDTO) winningTeam() (models.Team, error) {
	for _, team := range m.Info.Teams {
		if !team.Win {
			continue
		}
		switch team.TeamID {
		case blueTeamID:
			return models.TeamBlue, nil
		case redTeamID:
			return models.TeamRed, nil
		}
	}
	return models.TeamNone, fmt.Errorf("match %s (end of game result %q): %w",
		m.Metadata.MatchID, m.Info.EndOfGameResult, ErrNoWinner)
}
