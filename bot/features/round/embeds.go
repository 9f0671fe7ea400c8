package round

import (
	"fmt"
	"strings"
	"time"

	"lotobot/bot/common"
	"lotobot/domain/entities"
	"lotobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// StandingsImageName is the attachment name of the rendered standings
const StandingsImageName = "standings.png"

// RoundStartedEmbed announces a new round
func RoundStartedEmbed(round *entities.Round) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎪 Round %s started", round.Name),
		Color:       common.ColorPrimary,
		Description: "Token balances were reset. Every game until `/round end` counts toward this round.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Opened by %s", round.OwnerName),
		},
		Timestamp: round.CreatedAt.Format(time.RFC3339),
	}
}

// RoundEndEmbed renders the final report of a closed round
func RoundEndEmbed(result *interfaces.RoundEndResult) *discordgo.MessageEmbed {
	embed := LeaderboardEmbed(result.Round, result.Leaderboard)
	embed.Title = fmt.Sprintf("🏁 Round %s is over", result.Round.Name)
	embed.Fields = append([]*discordgo.MessageEmbedField{{
		Name:   "Games played",
		Value:  fmt.Sprintf("%d", len(result.Games)),
		Inline: true,
	}}, embed.Fields...)
	return embed
}

// SummaryEmbed lists the games of the active round
func SummaryEmbed(summary *interfaces.RoundSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📋 Round %s", summary.Round.Name),
		Color: common.ColorInfo,
	}
	if len(summary.Games) == 0 {
		embed.Description = "No games finished in this round yet."
		return embed
	}

	lines := make([]string, len(summary.Games))
	for i, game := range summary.Games {
		name := game.GameName
		if name == "" {
			name = fmt.Sprintf("Game %d", i+1)
		}
		winners := "no winner"
		if names := game.DistinctWinnerNames(); len(names) > 0 {
			winners = strings.Join(names, ", ")
		}
		lines[i] = fmt.Sprintf("**%s** · %d draws · %s", common.Truncate(name, common.MaxNameLength), game.NumberOfDraws, winners)
	}
	embed.Description = common.JoinLines(lines, 4000)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d games", len(summary.Games))}
	return embed
}

// LeaderboardEmbed renders a round's gainers and losers
func LeaderboardEmbed(round *entities.Round, board *interfaces.Leaderboard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Round %s standings", round.Name),
		Color: common.ColorGold,
	}
	if board == nil || len(board.Participants) == 0 {
		embed.Description = "No games settled in this round yet."
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "📈 Top gainers", Value: ledgerLines(board.Gainers), Inline: true},
		{Name: "📉 Top losers", Value: ledgerLines(board.Losers), Inline: true},
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d players", len(board.Participants))}
	return embed
}

func ledgerLines(entries []*entities.LedgerEntry) string {
	if len(entries) == 0 {
		return "nobody"
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %s **%s**", i+1, common.Truncate(e.DisplayName, common.MaxNameLength), common.FormatTokenDelta(e.WinBalance))
	}
	return common.JoinLines(lines, common.MaxEmbedFieldValue)
}
