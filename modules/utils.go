package modules

import (
	"github.com/bwmarrin/discordgo"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/helpers"
	"github.com/wickstudio/autoresponder/metrics"
)

// CallCommand hands a slash command to the plugin that registered it
func CallCommand(i *discordgo.Interaction) {
	// Defer a recovery in case anything panics
	defer helpers.RecoverWith(replyWithError(i))

	name := i.ApplicationCommandData().Name
	metrics.CommandsExecuted.WithLabelValues(name).Inc()

	if plugin, ok := commandCache[name]; ok {
		plugin.Action(name, i)
		return
	}

	cache.GetLogger().WithField("module", "modules").Warn("received unknown command /" + name)
}

// CallComponent hands a message component interaction to the plugin that sent the component
func CallComponent(i *discordgo.Interaction) {
	defer helpers.RecoverWith(replyWithError(i))

	customID := i.MessageComponentData().CustomID
	metrics.CommandsExecuted.WithLabelValues(customID).Inc()

	if plugin, ok := componentCache[customID]; ok {
		plugin.OnComponent(customID, i)
		return
	}

	cache.GetLogger().WithField("module", "modules").Warn("received unknown component " + customID)
}

// CallExtendedPlugin passes a message to all plugins
func CallExtendedPlugin(msg *discordgo.Message) {
	for _, plugin := range PluginExtendedList {
		callOnMessage(plugin, msg)
	}
}

// one plugin panicking must not keep the others from seeing the message
func callOnMessage(plugin ExtendedPlugin, msg *discordgo.Message) {
	defer helpers.Recover()

	plugin.OnMessage(msg)
}

// replyWithError tells the caller of $i that handling failed
func replyWithError(i *discordgo.Interaction) func(err error) {
	return func(err error) {
		target := messenger
		if target == nil {
			if !cache.HasSession() {
				return
			}
			target = cache.GetSession()
		}
		helpers.RelaxLog(helpers.RespondText(target, i, helpers.UserMessage(err)))
	}
}
