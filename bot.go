package main

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/raven-go"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/helpers"
	"github.com/wickstudio/autoresponder/modules"
)

var initOnce sync.Once

// BotOnReady gets called after the gateway connected.
// Discord sends Ready again after every reconnect, the plugins are only set up once.
func BotOnReady(session *discordgo.Session, event *discordgo.Ready) {
	defer helpers.Recover()

	log := cache.GetLogger()
	config := helpers.GetConfig()

	log.WithField("module", "bot").Infof("Logged in as %s#%s (%s)",
		event.User.Username, event.User.Discriminator, event.User.ID)

	initOnce.Do(func() {
		// Cache the session
		cache.SetSession(session)

		created, err := helpers.NewResponseStore(config.ResponseFile).EnsureDefaults()
		if err != nil {
			helpers.RelaxLog(err)
		} else if created {
			log.WithField("module", "bot").Info("created " + config.ResponseFile + " with the default responses")
		}

		// Load and init all modules
		err = modules.Init(session)
		if err != nil {
			raven.CaptureErrorAndWait(err, nil)
			log.WithField("module", "bot").Fatal("initializing plugins failed: ", err.Error())
		}

		registerCommands(session, config.GuildID)
	})

	setPresence(session, config.Activity)
}

// registerCommands replaces the commands of the configured guild with the ones of the plugins
func registerCommands(session *discordgo.Session, guildID string) {
	commands, err := session.ApplicationCommandBulkOverwrite(session.State.User.ID, guildID, modules.ApplicationCommands())
	if err != nil {
		helpers.RelaxLog(helpers.GatewayError(err, "register commands in guild "+guildID))
		return
	}

	cache.GetLogger().WithField("module", "bot").Infof("registered %d commands in guild %s", len(commands), guildID)
}

func setPresence(session *discordgo.Session, activity string) {
	err := session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusDoNotDisturb),
		Activities: []*discordgo.Activity{
			{
				Name: activity,
				Type: discordgo.ActivityTypeListening,
			},
		},
	})
	helpers.RelaxLog(helpers.GatewayError(err, "update presence"))
}

// BotOnMessageCreate gets called after a new message was sent
// This will be called after *every* message on *every* server so it should die as soon as possible
func BotOnMessageCreate(session *discordgo.Session, message *discordgo.MessageCreate) {
	defer helpers.Recover()

	if message.Message == nil {
		return
	}

	modules.CallExtendedPlugin(message.Message)
}

// BotOnInteractionCreate routes slash commands and menu selections to the plugins
func BotOnInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	defer helpers.Recover()

	if interaction.Interaction == nil {
		return
	}

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		modules.CallCommand(interaction.Interaction)
	case discordgo.InteractionMessageComponent:
		modules.CallComponent(interaction.Interaction)
	}
}
