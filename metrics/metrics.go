package metrics

import (
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wickstudio/autoresponder/cache"
)

var (
	// MessagesReceived counts all ever received messages
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoresponder_messages_received_total",
		Help: "Messages received from the gateway.",
	})

	// AutoRepliesSent counts messages that matched a trigger and were answered
	AutoRepliesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoresponder_auto_replies_sent_total",
		Help: "Replies sent for messages matching a trigger.",
	})

	// CommandsExecuted increases after each slash command or menu interaction
	CommandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoresponder_commands_executed_total",
		Help: "Slash commands and menu selections handled, by name.",
	}, []string{"command"})

	// ResponsesAdded counts successful addresponse calls
	ResponsesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoresponder_responses_added_total",
		Help: "Responses added or overwritten.",
	})

	// ResponsesRemoved counts triggers deleted through the menu
	ResponsesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoresponder_responses_removed_total",
		Help: "Responses deleted.",
	})

	// AccessDenied counts refused commands, by reason
	AccessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoresponder_access_denied_total",
		Help: "Commands refused by the access gate, by reason.",
	}, []string{"reason"})

	// Uptime stores the timestamp of the bot's boot
	Uptime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "autoresponder_start_time_seconds",
		Help: "Unix time the bot was started.",
	})
)

// Init starts the metrics http server on $addr, does nothing if $addr is empty
func Init(addr string) {
	Uptime.Set(float64(time.Now().Unix()))

	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	cache.GetLogger().WithField("module", "metrics").Info("Listening on " + addr)
	go func() {
		err := http.ListenAndServe(addr, mux)
		if err != nil {
			cache.GetLogger().WithField("module", "metrics").Error("metrics server stopped: ", err.Error())
		}
	}()
}

// OnMessageCreate listens for said discord event
func OnMessageCreate(session *discordgo.Session, event *discordgo.MessageCreate) {
	MessagesReceived.Inc()
}
