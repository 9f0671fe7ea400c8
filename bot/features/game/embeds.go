package game

import (
	"fmt"
	"strings"
	"time"

	"lotobot/bot/common"
	"lotobot/domain/entities"
	"lotobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// CreateGameEmbed announces a new game
func CreateGameEmbed(session *entities.GameSession) *discordgo.MessageEmbed {
	title := "🎱 New loto game"
	if session.GameName != "" {
		title = fmt.Sprintf("🎱 %s", session.GameName)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Host", Value: common.GetUserMention(session.OwnerID), Inline: true},
		{Name: "Numbers", Value: fmt.Sprintf("%d – %d", session.StartNumber, session.EndNumber), Inline: true},
		{Name: "Drawn numbers", Value: removeModeLabel(session.RemoveAfterDraw), Inline: true},
	}
	if session.RoundName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Round", Value: session.RoundName, Inline: true})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       common.ColorPrimary,
		Description: "Pick a ticket with `/ticket claim`, then the host runs `/game start`.",
		Fields:      fields,
	}
}

// StatusEmbed shows a live game's state
func StatusEmbed(status *interfaces.GameStatus) *discordgo.MessageEmbed {
	state := "⏳ Waiting for players"
	if status.State == entities.GameStateStarted {
		state = "▶️ Drawing"
	}

	lastDrawn := "–"
	if status.LastDrawn != nil {
		lastDrawn = fmt.Sprintf("**%d**", *status.LastDrawn)
	}

	title := "Game status"
	if status.GameName != "" {
		title = status.GameName
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "State", Value: state, Inline: true},
		{Name: "Host", Value: common.GetUserMention(status.HostID), Inline: true},
		{Name: "Numbers", Value: fmt.Sprintf("%d – %d", status.StartNumber, status.EndNumber), Inline: true},
		{Name: "Last drawn", Value: lastDrawn, Inline: true},
		{Name: "Draws", Value: fmt.Sprintf("%d (%d left)", status.DrawCount, status.Remaining), Inline: true},
		{Name: "Drawn numbers", Value: removeModeLabel(status.RemoveAfterDraw), Inline: true},
		{Name: "Players", Value: fmt.Sprintf("%d joined, %d with tickets", status.Participants, status.TicketHolders), Inline: true},
		{Name: "Winners", Value: fmt.Sprintf("%d", status.Winners), Inline: true},
	}
	if status.RoundName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Round", Value: status.RoundName, Inline: true})
	}

	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  common.ColorInfo,
		Fields: fields,
	}
}

// DrawMessage renders a drawn number and pings players who were waiting for it
func DrawMessage(result *interfaces.DrawResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎱 **%d**  · draw #%d · %d left", result.Number, result.DrawCount, result.Remaining)
	if len(result.Waiters) > 0 {
		mentions := make([]string, len(result.Waiters))
		for i, w := range result.Waiters {
			mentions[i] = common.GetUserMention(w.PlayerID)
		}
		fmt.Fprintf(&b, "\n🔔 %s: your number is out!", strings.Join(mentions, " "))
	}
	return b.String()
}

// CheckResultEmbed renders the outcome of a ticket check
func CheckResultEmbed(player entities.Participant, result *entities.ClaimResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "✅ Drawn", Value: common.FormatNumbers(result.Matched), Inline: false},
		},
	}
	if len(result.Pending) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "⏳ Not drawn yet", Value: common.FormatNumbers(result.Pending),
		})
	}
	if len(result.Invalid) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "⚠️ Ignored", Value: common.Truncate(strings.Join(result.Invalid, ", "), common.MaxEmbedFieldValue),
		})
	}

	if result.IsWin {
		embed.Title = fmt.Sprintf("🏆 %s wins!", player.Name)
		embed.Color = common.ColorGold
	} else {
		embed.Title = fmt.Sprintf("No win yet for %s", player.Name)
		embed.Color = common.ColorWarning
	}
	return embed
}

// WaitResultMessage renders a wait registration
func WaitResultMessage(result *entities.WaitResult) string {
	var lines []string
	if len(result.Registered) > 0 {
		lines = append(lines, fmt.Sprintf("🔔 You'll be pinged when these are drawn: %s", common.FormatNumbers(result.Registered)))
	}
	if len(result.AlreadyWaiting) > 0 {
		lines = append(lines, fmt.Sprintf("Already waiting for: %s", common.FormatNumbers(result.AlreadyWaiting)))
	}
	if len(result.AlreadyDrawn) > 0 {
		lines = append(lines, fmt.Sprintf("Already drawn: %s", common.FormatNumbers(result.AlreadyDrawn)))
	}
	if len(result.Invalid) > 0 {
		lines = append(lines, fmt.Sprintf("Ignored: %s", strings.Join(result.Invalid, ", ")))
	}
	if len(lines) == 0 {
		return "Nothing to wait for."
	}
	return strings.Join(lines, "\n")
}

// GameEndEmbed renders the payout report of an ended game
func GameEndEmbed(result *interfaces.GameEndResult) *discordgo.MessageEmbed {
	record := result.Record

	title := "🏁 Game over"
	if record.GameName != "" {
		title = fmt.Sprintf("🏁 %s is over", record.GameName)
	}

	winners := record.DistinctWinnerNames()
	winnerText := "No winners this time. Nobody pays."
	if len(winners) > 0 {
		winnerText = strings.Join(winners, ", ")
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Winners", Value: common.Truncate(winnerText, common.MaxEmbedFieldValue)},
		{Name: "Draws", Value: fmt.Sprintf("%d", record.NumberOfDraws), Inline: true},
		{Name: "Bet", Value: common.FormatTokens(record.Bet), Inline: true},
	}
	if len(result.Payouts) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Payouts",
			Value: common.JoinLines(payoutLines(result.Payouts), common.MaxEmbedFieldValue),
		})
	}
	if record.RoundName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Round", Value: record.RoundName, Inline: true})
	}

	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     common.ColorSuccess,
		Fields:    fields,
		Timestamp: record.EndedAt.Format(time.RFC3339),
	}
}

func payoutLines(payouts []entities.PlayerPayout) []string {
	lines := make([]string, len(payouts))
	for i, p := range payouts {
		marker := "▫️"
		if p.Won {
			marker = "🏆"
		}
		lines[i] = fmt.Sprintf("%s %s: **%s**", marker, common.Truncate(p.Name, common.MaxNameLength), common.FormatTokenDelta(p.Delta))
	}
	return lines
}

// LastResultEmbed renders the most recently archived game
func LastResultEmbed(record *entities.GameRecord) *discordgo.MessageEmbed {
	embed := GameEndEmbed(&interfaces.GameEndResult{Record: record, Payouts: record.Payouts})
	embed.Title = "📜 Last game"
	if record.GameName != "" {
		embed.Title = fmt.Sprintf("📜 Last game: %s", record.GameName)
	}
	embed.Color = common.ColorInfo
	return embed
}

// TicketsEmbed lists every ticket and its holder
func TicketsEmbed(slots []entities.TicketSlot) *discordgo.MessageEmbed {
	lines := make([]string, len(slots))
	free := 0
	for i, slot := range slots {
		holder := "free"
		if slot.Holder != nil {
			holder = common.Truncate(slot.Holder.Name, common.MaxNameLength)
		} else {
			free++
		}
		lines[i] = fmt.Sprintf("`%s` %s: %s", slot.Code, slot.DisplayName, holder)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎟️ Tickets (%d free)", free),
		Color:       common.ColorInfo,
		Description: common.JoinLines(lines, 4000),
	}
}

// ParticipantsEmbed lists the players of the live game, host first
func ParticipantsEmbed(views []interfaces.ParticipantView) *discordgo.MessageEmbed {
	lines := make([]string, len(views))
	for i, v := range views {
		line := common.Truncate(v.Participant.Name, common.MaxNameLength)
		if v.IsHost {
			line = "👑 " + line
		}
		if v.TicketCode != "" {
			line += fmt.Sprintf(" · %s", entities.TicketDisplayName(v.TicketCode))
		} else {
			line += " · no ticket"
		}
		lines[i] = line
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("👥 Players (%d)", len(views)),
		Color:       common.ColorInfo,
		Description: common.JoinLines(lines, 4000),
	}
}

// HistoryEmbed lists recent draws, oldest first
func HistoryEmbed(entries []entities.DrawEntry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📜 Draw history",
			Color:       common.ColorInfo,
			Description: "No numbers drawn yet.",
		}
	}

	numbers := make([]int, len(entries))
	for i, e := range entries {
		numbers[i] = e.Number
	}
	last := entries[len(entries)-1]

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📜 Last %d draws", len(entries)),
		Color:       common.ColorInfo,
		Description: common.Truncate(common.FormatNumbers(numbers), 4000),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Latest: %d", last.Number),
		},
		Timestamp: last.Time.Format(time.RFC3339),
	}
}

// LifetimeLeaderboardEmbed ranks players by lifetime wins
func LifetimeLeaderboardEmbed(entries []*entities.PlayerStatEntry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "🏆 Hall of fame",
			Color:       common.ColorGold,
			Description: "No games finished in this channel yet.",
		}
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s %s: **%d** wins in %d games",
			rankMarker(i), common.Truncate(e.DisplayName, common.MaxNameLength), e.Wins, e.Participations)
	}
	return &discordgo.MessageEmbed{
		Title:       "🏆 Hall of fame",
		Color:       common.ColorGold,
		Description: common.JoinLines(lines, 4000),
	}
}

func rankMarker(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", i+1)
	}
}

func removeModeLabel(remove bool) string {
	if remove {
		return "removed after draw"
	}
	return "stay in the pool"
}
