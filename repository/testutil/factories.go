package testutil

import (
	"time"

	"lotobot/domain/entities"
)

// CreateTestParticipant creates a participant with a generated name
func CreateTestParticipant(playerID int64, name string) entities.Participant {
	return entities.Participant{PlayerID: playerID, Name: name}
}

// CreateTestRound creates an unsaved round owned by ownerID
func CreateTestRound(chatID, ownerID int64, name string) *entities.Round {
	return &entities.Round{
		ChatID:    chatID,
		Name:      name,
		OwnerID:   ownerID,
		OwnerName: "owner",
	}
}

// CreateTestSession creates a 1..90 session hosted by hostID
func CreateTestSession(chatID, hostID int64) *entities.GameSession {
	session, err := entities.NewGameSession(chatID, "test game", "test round", 1, 90, true,
		CreateTestParticipant(hostID, "host"), time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		panic(err)
	}
	return session
}

// CreateTestGameRecord creates an unsaved record with two ticket holders and one winner
func CreateTestGameRecord(chatID, roundID int64) *entities.GameRecord {
	return &entities.GameRecord{
		RoundID:   &roundID,
		ChatID:    chatID,
		RoundName: "test round",
		GameName:  "test game",
		HostID:    1,
		HostName:  "host",
		Winners: []entities.WinnerRecord{
			{PlayerID: 2, Name: "winner", Numbers: []int{1, 2, 3, 4, 5}, Time: time.Now().UTC().Truncate(time.Microsecond)},
		},
		Participants: []entities.Participant{
			CreateTestParticipant(1, "host"),
			CreateTestParticipant(2, "winner"),
		},
		NumberOfDraws: 12,
		Bet:           5,
		Payouts: []entities.PlayerPayout{
			{PlayerID: 1, Name: "host", Delta: -5},
			{PlayerID: 2, Name: "winner", Delta: 5, Won: true},
		},
		EndedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}
