package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"lotobot/domain/entities"
	"lotobot/domain/interfaces"
	"lotobot/domain/testhelpers"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testChatID int64 = 777

var (
	alice = entities.Participant{PlayerID: 1, Name: "Alice"}
	bob   = entities.Participant{PlayerID: 2, Name: "Bob"}
)

func subcommand(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) []*discordgo.ApplicationCommandInteractionDataOption {
	return []*discordgo.ApplicationCommandInteractionDataOption{{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: opts,
	}}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

func newSession(t *testing.T) *entities.GameSession {
	t.Helper()
	session, err := entities.NewGameSession(testChatID, "Friday", "", 1, 90, false, alice, time.Now())
	require.NoError(t, err)
	return session
}

func TestHandles(t *testing.T) {
	t.Parallel()

	f := NewFeature(new(testhelpers.MockGameController), 10)
	for _, cmd := range []string{"game", "ticket", "check", "wait", "unwin", "lastresult", "leaderboard"} {
		assert.True(t, f.Handles(cmd), cmd)
	}
	assert.False(t, f.Handles("round"))
}

func TestDispatch_NewGame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []*discordgo.ApplicationCommandInteractionDataOption
		request func(*interfaces.CreateGameRequest) bool
	}{
		{
			name: "default range",
			opts: subcommand("new"),
			request: func(req *interfaces.CreateGameRequest) bool {
				return req.Start == nil && req.End == nil && req.RemoveAfterDraw && req.Host == alice
			},
		},
		{
			name: "removal turned off",
			opts: subcommand("new", boolOpt("remove", false)),
			request: func(req *interfaces.CreateGameRequest) bool {
				return !req.RemoveAfterDraw
			},
		},
		{
			name: "custom range and removal",
			opts: subcommand("new", stringOpt("name", "Friday"), intOpt("start", 0), intOpt("end", 50), boolOpt("remove", true)),
			request: func(req *interfaces.CreateGameRequest) bool {
				return req.Name == "Friday" && req.Start != nil && *req.Start == 0 &&
					req.End != nil && *req.End == 50 && req.RemoveAfterDraw
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			controller := new(testhelpers.MockGameController)
			controller.On("CreateGame", mock.Anything, testChatID, mock.MatchedBy(func(req interfaces.CreateGameRequest) bool {
				return tt.request(&req)
			})).Return(newSession(t), nil)

			reply, err := NewFeature(controller, 10).Dispatch(context.Background(), testChatID, alice, CommandGame, tt.opts)
			require.NoError(t, err)
			require.Len(t, reply.Embeds, 1)
			assert.Equal(t, "🎱 Friday", reply.Embeds[0].Title)
			controller.AssertExpectations(t)
		})
	}
}

func TestDispatch_RangeNeedsBothBounds(t *testing.T) {
	t.Parallel()

	controller := new(testhelpers.MockGameController)
	_, err := NewFeature(controller, 10).Dispatch(context.Background(), testChatID, alice, CommandGame,
		subcommand("range", intOpt("start", 5)))

	require.Error(t, err)
	controller.AssertNotCalled(t, "SetRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_Draw(t *testing.T) {
	t.Parallel()

	controller := new(testhelpers.MockGameController)
	controller.On("Draw", mock.Anything, testChatID, alice.PlayerID).Return(&interfaces.DrawResult{
		Number:    42,
		DrawCount: 3,
		Remaining: 87,
		Waiters:   []entities.Waiter{{PlayerID: bob.PlayerID, Name: bob.Name}},
	}, nil)

	reply, err := NewFeature(controller, 10).Dispatch(context.Background(), testChatID, alice, CommandGame, subcommand("draw"))
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "**42**")
	assert.Contains(t, reply.Content, "<@2>")
	assert.False(t, reply.Ephemeral)
}

func TestDispatch_PropagatesDomainErrors(t *testing.T) {
	t.Parallel()

	controller := new(testhelpers.MockGameController)
	controller.On("Draw", mock.Anything, testChatID, bob.PlayerID).Return(nil, entities.ErrPermission)

	_, err := NewFeature(controller, 10).Dispatch(context.Background(), testChatID, bob, CommandGame, subcommand("draw"))
	assert.True(t, errors.Is(err, entities.ErrPermission))
}

func TestDispatch_Tickets(t *testing.T) {
	t.Parallel()

	controller := new(testhelpers.MockGameController)
	controller.On("ClaimTicket", mock.Anything, testChatID, bob, "DO1").
		Return(&interfaces.TicketClaimResult{Code: "do1", DisplayName: "Đỏ số 1", ReleasedCode: "cam2"}, nil)
	controller.On("ReleaseTicket", mock.Anything, testChatID, bob.PlayerID).Return("do1", nil)
	controller.On("ListTickets", mock.Anything, testChatID).Return([]entities.TicketSlot{
		{Code: "cam1", DisplayName: "Cam số 1", Holder: &alice},
		{Code: "cam2", DisplayName: "Cam số 2"},
	}, nil)

	f := NewFeature(controller, 10)
	ctx := context.Background()

	reply, err := f.Dispatch(ctx, testChatID, bob, CommandTicket, subcommand("claim", stringOpt("code", "DO1")))
	require.NoError(t, err)
	assert.Equal(t, "🎟️ Bob took **Đỏ số 1** and gave back Cam số 2.", reply.Content)

	reply, err = f.Dispatch(ctx, testChatID, bob, CommandTicket, subcommand("release"))
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Đỏ số 1")

	reply, err = f.Dispatch(ctx, testChatID, bob, CommandTicket, subcommand("list"))
	require.NoError(t, err)
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, "🎟️ Tickets (1 free)", reply.Embeds[0].Title)
	assert.Contains(t, reply.Embeds[0].Description, "Alice")

	controller.AssertExpectations(t)
}

func TestDispatch_CheckAndWait(t *testing.T) {
	t.Parallel()

	controller := new(testhelpers.MockGameController)
	controller.On("CheckTicket", mock.Anything, testChatID, bob, "1 2 3 4 5").Return(&entities.ClaimResult{
		Matched: []int{1, 2, 3, 4, 5},
		IsWin:   true,
	}, nil)
	controller.On("WaitForNumbers", mock.Anything, testChatID, bob, "7 8").Return(&entities.WaitResult{
		Registered:   []int{7},
		AlreadyDrawn: []int{8},
	}, nil)

	f := NewFeature(controller, 10)
	ctx := context.Background()

	reply, err := f.Dispatch(ctx, testChatID, bob, CommandCheck, []*discordgo.ApplicationCommandInteractionDataOption{stringOpt("numbers", "1 2 3 4 5")})
	require.NoError(t, err)
	assert.Equal(t, "🏆 Bob wins!", reply.Embeds[0].Title)

	reply, err = f.Dispatch(ctx, testChatID, bob, CommandWait, []*discordgo.ApplicationCommandInteractionDataOption{stringOpt("numbers", "7 8")})
	require.NoError(t, err)
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, "pinged when these are drawn: 7")
	assert.Contains(t, reply.Content, "Already drawn: 8")
}

func TestDispatch_HistoryLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  []*discordgo.ApplicationCommandInteractionDataOption
		limit int
	}{
		{"default", subcommand("history"), defaultHistoryLimit},
		{"explicit", subcommand("history", intOpt("limit", 5)), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			controller := new(testhelpers.MockGameController)
			controller.On("GetHistory", mock.Anything, testChatID, tt.limit).Return([]entities.DrawEntry{}, nil)

			reply, err := NewFeature(controller, 10).Dispatch(context.Background(), testChatID, alice, CommandGame, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, "No numbers drawn yet.", reply.Embeds[0].Description)
			controller.AssertExpectations(t)
		})
	}
}

func TestDispatch_EndGame(t *testing.T) {
	t.Parallel()

	record := &entities.GameRecord{
		GameName:      "Friday",
		Winners:       []entities.WinnerRecord{{PlayerID: bob.PlayerID, Name: bob.Name}},
		NumberOfDraws: 12,
		Bet:           5,
		EndedAt:       time.Now(),
	}
	payouts := []entities.PlayerPayout{
		{PlayerID: bob.PlayerID, Name: bob.Name, Delta: 5, Won: true},
		{PlayerID: alice.PlayerID, Name: alice.Name, Delta: -5},
	}
	controller := new(testhelpers.MockGameController)
	controller.On("EndGame", mock.Anything, testChatID, alice.PlayerID).
		Return(&interfaces.GameEndResult{Record: record, Payouts: payouts}, nil)

	reply, err := NewFeature(controller, 10).Dispatch(context.Background(), testChatID, alice, CommandGame, subcommand("end"))
	require.NoError(t, err)

	embed := reply.Embeds[0]
	assert.Equal(t, "🏁 Friday is over", embed.Title)
	assert.Equal(t, "Bob", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[3].Value, "🏆 Bob: **+5**")
	assert.Contains(t, embed.Fields[3].Value, "Alice: **-5**")
}

func TestDispatch_LeaderboardUsesConfiguredSize(t *testing.T) {
	t.Parallel()

	controller := new(testhelpers.MockGameController)
	controller.On("LifetimeLeaderboard", mock.Anything, testChatID, 3).Return([]*entities.PlayerStatEntry{
		{PlayerID: 2, DisplayName: "Bob", Wins: 4, Participations: 6},
	}, nil)

	reply, err := NewFeature(controller, 3).Dispatch(context.Background(), testChatID, alice, CommandLeaderboard, nil)
	require.NoError(t, err)
	assert.Equal(t, "🥇 Bob: **4** wins in 6 games", reply.Embeds[0].Description)
	controller.AssertExpectations(t)
}

func TestDispatch_UnknownSubcommand(t *testing.T) {
	t.Parallel()

	f := NewFeature(new(testhelpers.MockGameController), 10)
	_, err := f.Dispatch(context.Background(), testChatID, alice, CommandGame, nil)
	assert.Error(t, err)

	_, err = f.Dispatch(context.Background(), testChatID, alice, "nope", nil)
	assert.Error(t, err)
}
