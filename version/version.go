package version

import "github.com/wickstudio/autoresponder/cache"

// Version related vars
// Set by compiler: -ldflags "-X github.com/wickstudio/autoresponder/version.BOT_VERSION=..."
var (
	// BOT_VERSION example: 1.0.2-4-g205bbb8
	BOT_VERSION string = "UNSET"

	// BUILD_TIME example: Fri Jan  6 00:45:46 CET 2017
	BUILD_TIME string = "UNSET"

	// BUILD_USER example: wick
	BUILD_USER string = "UNSET"

	// BUILD_HOST example: buildbox
	BUILD_HOST string = "UNSET"
)

// DumpInfo dumps all above vars
func DumpInfo() {
	log := cache.GetLogger().WithField("module", "version")

	log.Debug("BOT VERSION: " + BOT_VERSION)
	log.Debug("BUILD TIME: " + BUILD_TIME)
	log.Debug("BUILD USER: " + BUILD_USER)
	log.Debug("BUILD HOST: " + BUILD_HOST)
}
