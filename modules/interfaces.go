package modules

import "github.com/bwmarrin/discordgo"

type BaseModule interface{}

// Plugin reacts to slash commands
type Plugin interface {
	BaseModule

	// Commands are registered in the configured guild on ready
	Commands() []*discordgo.ApplicationCommand

	Init(session *discordgo.Session)

	Action(
		command string,
		i *discordgo.Interaction,
	)
}

// ExtendedPlugin additionally sees every message and its own message components
type ExtendedPlugin interface {
	Plugin

	// Components lists the custom ids of the message components the plugin sends
	Components() []string

	OnComponent(
		customID string,
		i *discordgo.Interaction,
	)

	OnMessage(
		msg *discordgo.Message,
	)

	Uninit(session *discordgo.Session)
}
