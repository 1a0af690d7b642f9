package helpers

import (
	"github.com/bwmarrin/discordgo"
)

// Messenger is the part of *discordgo.Session the plugins talk to
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// SessionMembers resolves members from the state cache and falls back to the REST API
type SessionMembers struct {
	Session *discordgo.Session
}

func (m SessionMembers) Member(guildID, userID string) (*discordgo.Member, error) {
	if m.Session.State != nil {
		member, err := m.Session.State.Member(guildID, userID)
		if err == nil {
			return member, nil
		}
	}

	return m.Session.GuildMember(guildID, userID)
}

// InteractionUser returns the user who triggered $i, in guilds and DMs alike
func InteractionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// AccessContextFromInteraction collects caller, guild and roles of $i for the AccessGate
func AccessContextFromInteraction(i *discordgo.Interaction) AccessContext {
	access := AccessContext{GuildID: i.GuildID}

	if user := InteractionUser(i); user != nil {
		access.UserID = user.ID
	}
	if i.Member != nil {
		access.RoleIDs = i.Member.Roles
	}

	return access
}

// TextResponse is an interaction message with $content that pings nobody
func TextResponse(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
}

// RespondText answers $i with a plain message
func RespondText(messenger Messenger, i *discordgo.Interaction, content string) error {
	return RespondData(messenger, i, TextResponse(content))
}

// RespondData answers $i with a message built by the caller
func RespondData(messenger Messenger, i *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	err := messenger.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	return GatewayError(err, "respond to interaction "+i.ID)
}
