package services

import (
	"lotobot/domain/entities"
)

// CalculatePayouts splits a game's stakes among its winners. Every ticket
// holder stakes bet; each distinct winner receives P*bet/|W| - bet and every
// other holder loses bet, so the deltas always sum to zero. Winners without a
// ticket are ignored. Returns nil when nobody won.
func CalculatePayouts(ticketHolders []entities.Participant, winners []entities.WinnerRecord, bet float64) []entities.PlayerPayout {
	holderSet := make(map[int64]bool, len(ticketHolders))
	for _, h := range ticketHolders {
		holderSet[h.PlayerID] = true
	}

	winnerSet := make(map[int64]bool)
	for _, w := range winners {
		if holderSet[w.PlayerID] {
			winnerSet[w.PlayerID] = true
		}
	}
	if len(winnerSet) == 0 {
		return nil
	}

	pot := float64(len(ticketHolders)) * bet
	winnerShare := pot/float64(len(winnerSet)) - bet

	payouts := make([]entities.PlayerPayout, 0, len(ticketHolders))
	for _, h := range ticketHolders {
		payout := entities.PlayerPayout{PlayerID: h.PlayerID, Name: h.Name}
		if winnerSet[h.PlayerID] {
			payout.Delta = winnerShare
			payout.Won = true
		} else {
			payout.Delta = -bet
		}
		payouts = append(payouts, payout)
	}
	return payouts
}
