package modules

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/helpers"
	"github.com/wickstudio/autoresponder/modules/plugins"
)

var (
	commandCache   map[string]ExtendedPlugin
	componentCache map[string]ExtendedPlugin

	// messenger overrides the cached session when telling the caller about a recovered panic
	messenger helpers.Messenger

	PluginExtendedList = []ExtendedPlugin{
		&plugins.Responses{},
	}
)

// Init initializes the plugins and builds the command and component lookups
func Init(session *discordgo.Session) error {
	err := checkDuplicates()
	if err != nil {
		return err
	}

	commandCache = make(map[string]ExtendedPlugin)
	componentCache = make(map[string]ExtendedPlugin)

	logTemplate := "[EXTENDED-PLUG] %s reacts to [ %s]"
	listeners := ""

	for i := range PluginExtendedList {
		plugin := PluginExtendedList[i]

		for _, cmd := range plugin.Commands() {
			commandCache[cmd.Name] = plugin
			listeners += "/" + cmd.Name + " "
		}
		for _, customID := range plugin.Components() {
			componentCache[customID] = plugin
			listeners += customID + " "
		}

		cache.GetLogger().WithField("module", "modules").Info(fmt.Sprintf(
			logTemplate,
			helpers.Typeof(plugin),
			listeners,
		))
		listeners = ""

		plugin.Init(session)
	}

	cache.GetLogger().WithField("module", "modules").Info(
		"Initializer finished. Loaded " + strconv.Itoa(len(PluginExtendedList)) + " extended plugins",
	)
	return nil
}

// Uninit deintializes the plugins
func Uninit(session *discordgo.Session) {
	logTemplate := "[EXTENDED-PLUG] %s deintializing…"
	for _, plugin := range PluginExtendedList {
		cache.GetLogger().WithField("module", "modules").Info(fmt.Sprintf(
			logTemplate,
			helpers.Typeof(plugin),
		))

		plugin.Uninit(session)
	}

	cache.GetLogger().WithField("module", "modules").Info(
		"Uninit finished. Unitialized " + strconv.Itoa(len(PluginExtendedList)) + " extended plugins",
	)
}

// ApplicationCommands collects the slash commands of all plugins for registration
func ApplicationCommands() []*discordgo.ApplicationCommand {
	commands := make([]*discordgo.ApplicationCommand, 0)
	for _, plugin := range PluginExtendedList {
		commands = append(commands, plugin.Commands()...)
	}
	return commands
}

func checkDuplicates() error {
	cmds := make(map[string]string)
	components := make(map[string]string)

	for _, plugin := range PluginExtendedList {
		t := helpers.Typeof(plugin)

		for _, cmd := range plugin.Commands() {
			if occupant, ok := cmds[cmd.Name]; ok {
				return errors.Errorf("failed to load %s because /%s was already registered by %s", t, cmd.Name, occupant)
			}
			cmds[cmd.Name] = t
		}
		for _, customID := range plugin.Components() {
			if occupant, ok := components[customID]; ok {
				return errors.Errorf("failed to load %s because component %s was already registered by %s", t, customID, occupant)
			}
			components[customID] = t
		}
	}

	return nil
}
