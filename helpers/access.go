package helpers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/metrics"
)

// DenyReason names why the AccessGate refused a caller, doubles as the i18n key suffix
type DenyReason string

const (
	DenyWrongGuild  DenyReason = "wrong-guild"
	DenyNotAMember  DenyReason = "not-a-member"
	DenyMissingRole DenyReason = "missing-role"
)

// AccessDenied is returned by AccessGate.Authorize
type AccessDenied struct {
	Reason DenyReason
}

func (e *AccessDenied) Error() string {
	return "access denied: " + string(e.Reason)
}

// AccessContext identifies who invoked a command, and where
type AccessContext struct {
	UserID  string
	GuildID string
	RoleIDs []string
}

// MemberResolver looks up the current member entry of a user in a guild
type MemberResolver interface {
	Member(guildID, userID string) (*discordgo.Member, error)
}

// AccessGate allows callers that are members of one guild and hold one role
type AccessGate struct {
	GuildID string
	RoleID  string
	Members MemberResolver
}

func NewAccessGate(guildID, roleID string, members MemberResolver) *AccessGate {
	return &AccessGate{GuildID: guildID, RoleID: roleID, Members: members}
}

// Authorize returns nil if the caller may change the responses, an *AccessDenied otherwise
func (g *AccessGate) Authorize(access AccessContext) error {
	if access.GuildID == "" || access.GuildID != g.GuildID {
		return g.deny(access, DenyWrongGuild)
	}

	if g.Members == nil || access.UserID == "" {
		return g.deny(access, DenyNotAMember)
	}
	member, err := g.Members.Member(access.GuildID, access.UserID)
	if err != nil || member == nil {
		if err != nil {
			cache.GetLogger().WithField("module", "access").Debugf("resolving member %s in guild %s failed: %s",
				access.UserID, access.GuildID, err.Error())
		}
		return g.deny(access, DenyNotAMember)
	}

	for _, roleID := range access.RoleIDs {
		if roleID == g.RoleID {
			return nil
		}
	}

	return g.deny(access, DenyMissingRole)
}

func (g *AccessGate) deny(access AccessContext, reason DenyReason) error {
	metrics.AccessDenied.WithLabelValues(string(reason)).Inc()
	cache.GetLogger().WithField("module", "access").Infof("denied user %s in guild %s: %s",
		access.UserID, access.GuildID, reason)
	return &AccessDenied{Reason: reason}
}
