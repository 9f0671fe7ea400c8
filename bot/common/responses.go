package common

import (
	"bytes"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Attachment is a file sent along with a reply
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Reply is everything a command answers with
type Reply struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Ephemeral  bool
	Attachment *Attachment
}

// TextReply creates a plain text reply
func TextReply(content string, ephemeral bool) *Reply {
	return &Reply{Content: content, Ephemeral: ephemeral}
}

// EmbedReply creates a reply with embeds
func EmbedReply(ephemeral bool, embeds ...*discordgo.MessageEmbed) *Reply {
	return &Reply{Embeds: embeds, Ephemeral: ephemeral}
}

// WithImage attaches a PNG and shows it in the first embed
func (r *Reply) WithImage(filename string, png []byte) *Reply {
	r.Attachment = &Attachment{Name: filename, ContentType: "image/png", Data: png}
	if len(r.Embeds) > 0 {
		r.Embeds[0].Image = &discordgo.MessageEmbedImage{URL: "attachment://" + filename}
	}
	return r
}

// Send answers the interaction with reply
func Send(s *discordgo.Session, i *discordgo.InteractionCreate, reply *Reply) {
	data := &discordgo.InteractionResponseData{
		Content: reply.Content,
		Embeds:  reply.Embeds,
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if reply.Attachment != nil {
		data.Files = []*discordgo.File{{
			Name:        reply.Attachment.Name,
			ContentType: reply.Attachment.ContentType,
			Reader:      bytes.NewReader(reply.Attachment.Data),
		}}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"channel_id": i.ChannelID,
			"error":      err,
		}).Error("Failed to respond to interaction")
	}
}

// Options indexes command options by name
func Options(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// StringOption returns a string option or def
func StringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name, def string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return def
}

// IntOption returns an integer option and whether it was given
func IntOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (int, bool) {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue()), true
	}
	return 0, false
}

// BoolOption returns a boolean option or def
func BoolOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, def bool) bool {
	if opt, ok := opts[name]; ok {
		return opt.BoolValue()
	}
	return def
}

// Subcommand returns the first option when it is a subcommand, with its options
func Subcommand(opts []*discordgo.ApplicationCommandInteractionDataOption) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(opts) == 0 || opts[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", nil
	}
	return opts[0].Name, opts[0].Options
}
