package helpers

import (
	"github.com/pkg/errors"
	"github.com/wickstudio/autoresponder/models"
)

var (
	// ErrStorageCorrupt means the responses file exists but holds no valid response map
	ErrStorageCorrupt = errors.New("responses storage corrupt")
	// ErrStorageUnwritable means the responses file could not be replaced
	ErrStorageUnwritable = errors.New("responses storage unwritable")
	// ErrInvalidTrigger is returned for empty triggers
	ErrInvalidTrigger = models.ErrInvalidTrigger
	// ErrNotFound means a selected trigger vanished before it could be deleted
	ErrNotFound = errors.New("response not found")
	// ErrGatewayTransient wraps failed calls to discord; they are logged, never retried
	ErrGatewayTransient = errors.New("discord request failed")
)

// GatewayError wraps an error returned by discordgo, nil stays nil
func GatewayError(err error, action string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrGatewayTransient, "%s: %v", action, err)
}

// UserMessage turns any handler error into the single line the caller gets to see
func UserMessage(err error) string {
	if denied, ok := errors.Cause(err).(*AccessDenied); ok {
		return GetText("plugins.responses.denied." + string(denied.Reason))
	}

	switch errors.Cause(err) {
	case ErrStorageCorrupt:
		return GetText("plugins.responses.errors.storage-corrupt")
	case ErrStorageUnwritable:
		return GetText("plugins.responses.errors.storage-unwritable")
	case ErrInvalidTrigger:
		return GetText("plugins.responses.errors.invalid-trigger")
	}

	return GetText("bot.errors.general")
}
