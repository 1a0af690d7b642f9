package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/raven-go"
	"github.com/kz/discordrus"
	"github.com/sirupsen/logrus"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/helpers"
	"github.com/wickstudio/autoresponder/logging"
	"github.com/wickstudio/autoresponder/metrics"
	"github.com/wickstudio/autoresponder/modules"
	"github.com/wickstudio/autoresponder/version"
)

const gatewayIntents = discordgo.IntentGuilds |
	discordgo.IntentGuildMembers |
	discordgo.IntentGuildMessages |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent

// Entrypoint
func main() {
	log := logrus.New()
	log.Out = os.Stdout
	log.Level = logrus.InfoLevel
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339}
	log.Hooks = make(logrus.LevelHooks)
	cache.SetLogger(log)

	// Read config
	config, err := helpers.LoadConfig(".env")
	if err != nil {
		log.WithField("module", "launcher").Fatal("invalid configuration: ", err.Error())
	}

	// Check if the bot is being debugged
	if config.Debug {
		helpers.DEBUG_MODE = true
		log.Level = logrus.DebugLevel
	}

	if config.LogJSONFile != "" {
		fileHook, err := logging.NewLogrusFileHook(config.LogJSONFile, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			log.WithField("module", "launcher").Error("logrus file hook failed, err:", err.Error())
		} else {
			log.Hooks.Add(fileHook)
			defer fileHook.Close()
		}
	}

	if config.LogDiscordWebhook != "" {
		log.Hooks.Add(discordrus.NewHook(
			config.LogDiscordWebhook,
			logrus.ErrorLevel,
			&discordrus.Opts{
				Username:           "Logging",
				DisableTimestamp:   false,
				TimestampFormat:    "Jan 2 15:04:05.00000",
				EnableCustomColors: true,
				CustomLevelColors: &discordrus.LevelColors{
					Error: 13631488,
					Panic: 13631488,
					Fatal: 13631488,
				},
			},
		))
	}

	log.WithField("module", "launcher").Info("Booting autoresponder...")

	// Read i18n
	helpers.LoadTranslations()

	// Show version
	version.DumpInfo()

	// Start metric server
	metrics.Init(config.MetricsAddr)

	if config.SentryDSN != "" {
		log.WithField("module", "launcher").Info("[SENTRY] Calling home...")
		err = raven.SetDSN(config.SentryDSN)
		if err != nil {
			log.WithField("module", "launcher").Fatal("invalid sentry dsn: ", err.Error())
		}
		if version.BOT_VERSION != "UNSET" {
			raven.SetRelease(version.BOT_VERSION)
		}
	}

	// Connect and add event handlers
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		pc, file, line, _ := runtime.Caller(caller)

		files := strings.Split(file, "/")
		file = files[len(files)-1]

		name := runtime.FuncForPC(pc).Name()
		fns := strings.Split(name, ".")
		name = fns[len(fns)-1]

		msg := format
		if strings.Contains(msg, "%") {
			msg = fmt.Sprintf(format, a...)
		}

		switch msgL {
		case discordgo.LogError:
			log.WithField("module", "discordgo").Errorf("%s:%d:%s() %s", file, line, name, msg)
		case discordgo.LogWarning:
			log.WithField("module", "discordgo").Warnf("%s:%d:%s() %s", file, line, name, msg)
		case discordgo.LogInformational:
			log.WithField("module", "discordgo").Infof("%s:%d:%s() %s", file, line, name, msg)
		case discordgo.LogDebug:
			log.WithField("module", "discordgo").Debugf("%s:%d:%s() %s", file, line, name, msg)
		}
	}
	log.WithField("module", "launcher").Info("Connecting to discord...")
	discord, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		raven.CaptureErrorAndWait(err, nil)
		log.WithField("module", "launcher").Fatal("creating discord session failed: ", err.Error())
	}

	discord.Lock()
	discord.Debug = false
	discord.LogLevel = discordgo.LogInformational
	discord.StateEnabled = true
	discord.Identify.Intents = gatewayIntents
	discord.Unlock()

	discord.AddHandler(BotOnReady)
	discord.AddHandler(BotOnMessageCreate)
	discord.AddHandler(BotOnInteractionCreate)
	discord.AddHandler(metrics.OnMessageCreate)

	// Connect to discord
	err = discord.Open()
	if err != nil {
		raven.CaptureErrorAndWait(err, nil)
		log.WithField("module", "launcher").Fatal("connecting to discord failed: ", err.Error())
	}

	// Make a channel that waits for a os signal
	botRuntimeChannel := make(chan os.Signal, 1)
	signal.Notify(botRuntimeChannel, os.Interrupt, syscall.SIGTERM)

	// Wait until the os wants us to shutdown
	<-botRuntimeChannel

	log.WithField("module", "launcher").Info("autoresponder is stopping")
	log.WithField("module", "launcher").Info("Uninitializing plugins...")
	modules.Uninit(discord)
	log.WithField("module", "launcher").Info("Disconnecting bot discord session...")
	discord.Close()
}
