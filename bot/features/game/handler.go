package game

import (
	"context"
	"fmt"

	"lotobot/bot/common"
	"lotobot/domain/entities"
	"lotobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) newGame(ctx context.Context, chatID int64, host entities.Participant, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	req := interfaces.CreateGameRequest{
		Name:            common.StringOption(opts, "name", ""),
		RemoveAfterDraw: common.BoolOption(opts, "remove", true),
		Host:            host,
	}
	if start, ok := common.IntOption(opts, "start"); ok {
		req.Start = &start
	}
	if end, ok := common.IntOption(opts, "end"); ok {
		req.End = &end
	}

	session, err := f.controller.CreateGame(ctx, chatID, req)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"host_id": host.PlayerID,
		"range":   fmt.Sprintf("%d-%d", session.StartNumber, session.EndNumber),
	}).Info("Game created from command")
	return common.EmbedReply(false, CreateGameEmbed(session)), nil
}

func (f *Feature) setRange(ctx context.Context, chatID int64, caller entities.Participant, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	start, okStart := common.IntOption(opts, "start")
	end, okEnd := common.IntOption(opts, "end")
	if !okStart || !okEnd {
		return nil, common.NewUserError("Give both start and end", "range without bounds")
	}

	session, err := f.controller.SetRange(ctx, chatID, caller.PlayerID, start, end)
	if err != nil {
		return nil, err
	}
	return common.TextReply(fmt.Sprintf("🔢 Numbers are now %d – %d (%d in the pool).",
		session.StartNumber, session.EndNumber, session.RemainingCount()), false), nil
}

func (f *Feature) startGame(ctx context.Context, chatID int64, caller entities.Participant) (*common.Reply, error) {
	session, err := f.controller.StartGame(ctx, chatID, caller.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.TextReply(fmt.Sprintf("▶️ Game on! %d players hold tickets. The host draws with `/game draw`.",
		len(session.TicketHolders())), false), nil
}

func (f *Feature) draw(ctx context.Context, chatID int64, caller entities.Participant) (*common.Reply, error) {
	result, err := f.controller.Draw(ctx, chatID, caller.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.TextReply(DrawMessage(result), false), nil
}

func (f *Feature) resetDraws(ctx context.Context, chatID int64, caller entities.Participant) (*common.Reply, error) {
	session, err := f.controller.ResetDraws(ctx, chatID, caller.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.TextReply(fmt.Sprintf("🔄 Draws reset. All %d numbers are back in the pool.", session.RemainingCount()), false), nil
}

func (f *Feature) toggleRemove(ctx context.Context, chatID int64, caller entities.Participant) (*common.Reply, error) {
	session, err := f.controller.ToggleRemove(ctx, chatID, caller.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.TextReply(fmt.Sprintf("Drawn numbers now %s.", removeModeLabel(session.RemoveAfterDraw)), false), nil
}

func (f *Feature) endGame(ctx context.Context, chatID int64, caller entities.Participant) (*common.Reply, error) {
	result, err := f.controller.EndGame(ctx, chatID, caller.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, GameEndEmbed(result)), nil
}

func (f *Feature) abandonGame(ctx context.Context, chatID int64, caller entities.Participant) (*common.Reply, error) {
	if err := f.controller.AbandonGame(ctx, chatID, caller.PlayerID); err != nil {
		return nil, err
	}
	return common.TextReply("🗑️ Game abandoned. Nothing was paid out or recorded.", false), nil
}

func (f *Feature) status(ctx context.Context, chatID int64) (*common.Reply, error) {
	status, err := f.controller.GetStatus(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, StatusEmbed(status)), nil
}

func (f *Feature) history(ctx context.Context, chatID int64, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	limit, ok := common.IntOption(opts, "limit")
	if !ok {
		limit = defaultHistoryLimit
	}
	entries, err := f.controller.GetHistory(ctx, chatID, limit)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(true, HistoryEmbed(entries)), nil
}

func (f *Feature) players(ctx context.Context, chatID int64) (*common.Reply, error) {
	views, err := f.controller.GetParticipants(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, ParticipantsEmbed(views)), nil
}

func (f *Feature) claimTicket(ctx context.Context, chatID int64, player entities.Participant, code string) (*common.Reply, error) {
	result, err := f.controller.ClaimTicket(ctx, chatID, player, code)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("🎟️ %s took **%s**", player.Name, result.DisplayName)
	if result.ReleasedCode != "" {
		msg += fmt.Sprintf(" and gave back %s", entities.TicketDisplayName(result.ReleasedCode))
	}
	return common.TextReply(msg+".", false), nil
}

func (f *Feature) releaseTicket(ctx context.Context, chatID int64, player entities.Participant) (*common.Reply, error) {
	code, err := f.controller.ReleaseTicket(ctx, chatID, player.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.TextReply(fmt.Sprintf("🎟️ %s gave back **%s**.", player.Name, entities.TicketDisplayName(code)), false), nil
}

func (f *Feature) listTickets(ctx context.Context, chatID int64) (*common.Reply, error) {
	slots, err := f.controller.ListTickets(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(true, TicketsEmbed(slots)), nil
}

func (f *Feature) check(ctx context.Context, chatID int64, player entities.Participant, numbers string) (*common.Reply, error) {
	result, err := f.controller.CheckTicket(ctx, chatID, player, numbers)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, CheckResultEmbed(player, result)), nil
}

func (f *Feature) wait(ctx context.Context, chatID int64, player entities.Participant, numbers string) (*common.Reply, error) {
	result, err := f.controller.WaitForNumbers(ctx, chatID, player, numbers)
	if err != nil {
		return nil, err
	}
	return common.TextReply(WaitResultMessage(result), true), nil
}

func (f *Feature) unwin(ctx context.Context, chatID int64, player entities.Participant) (*common.Reply, error) {
	win, err := f.controller.UndoLastWin(ctx, chatID, player.PlayerID)
	if err != nil {
		return nil, err
	}
	return common.TextReply(fmt.Sprintf("↩️ Took back %s's win on %s.", player.Name, common.FormatNumbers(win.Numbers)), false), nil
}

func (f *Feature) lastResult(ctx context.Context, chatID int64) (*common.Reply, error) {
	record, err := f.controller.GetLastResult(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, LastResultEmbed(record)), nil
}

func (f *Feature) leaderboard(ctx context.Context, chatID int64) (*common.Reply, error) {
	entries, err := f.controller.LifetimeLeaderboard(ctx, chatID, f.leaderboardSize)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, LifetimeLeaderboardEmbed(entries)), nil
}
