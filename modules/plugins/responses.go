package plugins

import (
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/helpers"
	"github.com/wickstudio/autoresponder/metrics"
)

const (
	responsesAddCommand    = "addresponse"
	responsesRemoveCommand = "removeresponse"
	responsesSelectID      = "removeresponse:select"

	// discord allows 25 options per select menu, values and labels up to 100 characters
	responsesMenuLimit     = 25
	responsesOptionLength  = 100
	responsesResponseLimit = 1800
)

// Responses answers messages matching a trigger and manages the triggers through
// /addresponse and /removeresponse
type Responses struct {
	Store     *helpers.ResponseStore
	Gate      *helpers.AccessGate
	Messenger helpers.Messenger

	// SelfID is the bot's own user id, its messages are never answered
	SelfID string
}

func (r *Responses) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        responsesAddCommand,
			Description: helpers.GetText("plugins.responses.command-description.addresponse"),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "trigger",
					Description: helpers.GetText("plugins.responses.command-description.trigger"),
					Required:    true,
					MaxLength:   responsesOptionLength,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "response",
					Description: helpers.GetText("plugins.responses.command-description.response"),
					Required:    true,
					MaxLength:   responsesResponseLimit,
				},
			},
		},
		{
			Name:        responsesRemoveCommand,
			Description: helpers.GetText("plugins.responses.command-description.removeresponse"),
		},
	}
}

func (r *Responses) Components() []string {
	return []string{responsesSelectID}
}

func (r *Responses) Init(session *discordgo.Session) {
	config := helpers.GetConfig()

	if r.Store == nil {
		r.Store = helpers.NewResponseStore(config.ResponseFile)
	}
	if r.Gate == nil {
		r.Gate = helpers.NewAccessGate(config.GuildID, config.RoleID, helpers.SessionMembers{Session: session})
	}
	if r.Messenger == nil {
		r.Messenger = session
	}
	if r.SelfID == "" && session.State != nil && session.State.User != nil {
		r.SelfID = session.State.User.ID
	}
}

func (r *Responses) Uninit(session *discordgo.Session) {

}

func (r *Responses) Action(command string, i *discordgo.Interaction) {
	access := helpers.AccessContextFromInteraction(i)

	switch command {
	case responsesAddCommand: // /addresponse trigger:<text> response:<text>
		var trigger, response string
		for _, option := range i.ApplicationCommandData().Options {
			switch option.Name {
			case "trigger":
				trigger = option.StringValue()
			case "response":
				response = option.StringValue()
			}
		}

		helpers.RelaxLog(helpers.RespondText(r.Messenger, i, r.AddResponse(access, trigger, response)))
	case responsesRemoveCommand: // /removeresponse
		helpers.RelaxLog(helpers.RespondData(r.Messenger, i, r.RemoveResponse(access)))
	}
}

func (r *Responses) OnComponent(customID string, i *discordgo.Interaction) {
	if customID != responsesSelectID {
		return
	}

	values := i.MessageComponentData().Values
	if len(values) < 1 {
		return
	}

	access := helpers.AccessContextFromInteraction(i)
	helpers.RelaxLog(helpers.RespondText(r.Messenger, i, r.DeleteSelected(access, values[0])))
}

// OnMessage replies to messages whose full text is a trigger
func (r *Responses) OnMessage(msg *discordgo.Message) {
	if msg.Author == nil || msg.Author.ID == r.SelfID {
		return
	}

	response, ok, err := r.Lookup(msg.Content)
	if err != nil {
		helpers.RelaxLog(errors.Wrap(err, "looking up message "+msg.ID))
		return
	}
	if !ok {
		return
	}

	_, err = r.Messenger.ChannelMessageSend(
		msg.ChannelID,
		helpers.GetTextF("plugins.responses.reply", msg.Author.Mention(), response),
	)
	if err != nil {
		helpers.RelaxLog(helpers.GatewayError(err, "send reply to channel "+msg.ChannelID))
		return
	}
	metrics.AutoRepliesSent.Inc()
}

// Lookup reads the responses file and returns the response for $content
func (r *Responses) Lookup(content string) (response string, ok bool, err error) {
	responses, err := r.Store.Load()
	if err != nil {
		return "", false, err
	}

	response, ok = responses.Get(content)
	return response, ok, nil
}

// AddResponse stores $trigger -> $response if $access passes the gate, returns the reply text
func (r *Responses) AddResponse(access helpers.AccessContext, trigger, response string) string {
	err := r.Gate.Authorize(access)
	if err != nil {
		return helpers.UserMessage(err)
	}

	responses, err := r.Store.Load()
	if err != nil {
		helpers.RelaxLog(err)
		return helpers.UserMessage(err)
	}

	err = responses.Put(trigger, response)
	if err != nil {
		return helpers.UserMessage(err)
	}

	err = r.Store.Save(responses)
	if err != nil {
		helpers.RelaxLog(err)
		return helpers.UserMessage(err)
	}

	metrics.ResponsesAdded.Inc()
	cache.GetLogger().WithField("module", "responses").Infof("user %s added response for trigger %q", access.UserID, trigger)

	return helpers.GetTextF("plugins.responses.add-success", trigger, response)
}

// RemoveResponse builds the trigger selection menu if $access passes the gate
func (r *Responses) RemoveResponse(access helpers.AccessContext) *discordgo.InteractionResponseData {
	err := r.Gate.Authorize(access)
	if err != nil {
		return helpers.TextResponse(helpers.UserMessage(err))
	}

	responses, err := r.Store.Load()
	if err != nil {
		helpers.RelaxLog(err)
		return helpers.TextResponse(helpers.UserMessage(err))
	}

	triggers := responses.Triggers()
	if len(triggers) == 0 {
		return helpers.TextResponse(helpers.GetText("plugins.responses.delete-empty"))
	}

	options := make([]discordgo.SelectMenuOption, 0, responsesMenuLimit)
	for _, trigger := range triggers {
		if len(options) >= responsesMenuLimit {
			break
		}
		if utf8.RuneCountInString(trigger) > responsesOptionLength {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: trigger,
			Value: trigger,
		})
	}
	if len(options) == 0 {
		return helpers.TextResponse(helpers.GetTextF("plugins.responses.delete-too-long", humanize.Comma(int64(len(triggers)))))
	}

	content := helpers.GetText("plugins.responses.delete-prompt")
	if omitted := len(triggers) - len(options); omitted > 0 {
		content = helpers.GetTextF("plugins.responses.delete-prompt-truncated", humanize.Comma(int64(omitted)))
	}

	data := helpers.TextResponse(content)
	data.Components = []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    responsesSelectID,
					Placeholder: helpers.GetText("plugins.responses.delete-placeholder"),
					MaxValues:   1,
					Options:     options,
				},
			},
		},
	}
	return data
}

// DeleteSelected removes $trigger picked from the menu, returns the reply text.
// The gate is checked again since anyone in the channel can use the menu.
func (r *Responses) DeleteSelected(access helpers.AccessContext, trigger string) string {
	err := r.Gate.Authorize(access)
	if err != nil {
		return helpers.UserMessage(err)
	}

	err = r.deleteTrigger(trigger)
	switch {
	case err == nil:
	case errors.Cause(err) == helpers.ErrNotFound:
		return helpers.GetTextF("plugins.responses.delete-not-found", trigger)
	default:
		helpers.RelaxLog(err)
		return helpers.UserMessage(err)
	}

	metrics.ResponsesRemoved.Inc()
	cache.GetLogger().WithField("module", "responses").Infof("user %s deleted response for trigger %q", access.UserID, trigger)

	return helpers.GetTextF("plugins.responses.delete-success", trigger)
}

func (r *Responses) deleteTrigger(trigger string) error {
	responses, err := r.Store.Load()
	if err != nil {
		return err
	}

	if !responses.Delete(trigger) {
		return errors.Wrap(helpers.ErrNotFound, trigger)
	}

	return r.Store.Save(responses)
}
