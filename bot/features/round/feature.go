package round

import (
	"context"

	"lotobot/application"
	"lotobot/bot/common"
	"lotobot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// CommandRound is the slash command handled by this feature
const CommandRound = "round"

// Feature handles the round commands
type Feature struct {
	controller      application.GameController
	images          *StandingsImageGenerator
	leaderboardSize int
}

// NewFeature creates a new round feature
func NewFeature(controller application.GameController, leaderboardSize int) *Feature {
	return &Feature{
		controller:      controller,
		images:          NewStandingsImageGenerator(),
		leaderboardSize: leaderboardSize,
	}
}

// HandleCommand handles /round
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	chatID, err := common.ChatID(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	player, err := common.ParticipantFromInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	reply, err := f.Dispatch(context.Background(), chatID, player, i.ApplicationCommandData().Options)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	common.Send(s, i, reply)
}

// Dispatch runs one /round subcommand and returns what to answer
func (f *Feature) Dispatch(ctx context.Context, chatID int64, player entities.Participant, opts []*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	sub, subOpts := common.Subcommand(opts)
	switch sub {
	case "start":
		return f.start(ctx, chatID, player, common.StringOption(common.Options(subOpts), "name", ""))
	case "end":
		return f.end(ctx, chatID)
	case "summary":
		return f.summary(ctx, chatID)
	case "leaderboard":
		return f.leaderboard(ctx, chatID)
	}
	return nil, common.NewUserError("Please pick a /round subcommand", "unknown round subcommand "+sub)
}

func (f *Feature) start(ctx context.Context, chatID int64, owner entities.Participant, name string) (*common.Reply, error) {
	round, err := f.controller.StartRound(ctx, chatID, name, owner)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, RoundStartedEmbed(round)), nil
}

func (f *Feature) end(ctx context.Context, chatID int64) (*common.Reply, error) {
	result, err := f.controller.EndRound(ctx, chatID)
	if err != nil {
		return nil, err
	}

	reply := common.EmbedReply(false, RoundEndEmbed(result))
	if result.Leaderboard != nil {
		f.attachStandings(reply, result.Round.Name, result.Leaderboard.Participants)
	}
	return reply, nil
}

func (f *Feature) summary(ctx context.Context, chatID int64) (*common.Reply, error) {
	summary, err := f.controller.RoundSummary(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return common.EmbedReply(false, SummaryEmbed(summary)), nil
}

func (f *Feature) leaderboard(ctx context.Context, chatID int64) (*common.Reply, error) {
	round, err := f.controller.GetActiveRound(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, entities.NewGameError(entities.KindNotFound, "no round is running, start one with /round start")
	}

	board, err := f.controller.RoundLeaderboard(ctx, chatID, f.leaderboardSize)
	if err != nil {
		return nil, err
	}

	reply := common.EmbedReply(false, LeaderboardEmbed(round, board))
	f.attachStandings(reply, round.Name, board.Participants)
	return reply, nil
}

// attachStandings adds the standings image; the embed alone is still a full answer
func (f *Feature) attachStandings(reply *common.Reply, roundName string, entries []*entities.LedgerEntry) {
	if len(entries) == 0 {
		return
	}
	png, err := f.images.Generate(roundName, entries)
	if err != nil {
		log.WithError(err).WithField("round", roundName).Warn("Failed to render standings image")
		return
	}
	reply.WithImage(StandingsImageName, png)
}
