package helpers

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wickstudio/autoresponder/metrics"
)

const (
	testGuildID = "111111111111111111"
	testRoleID  = "222222222222222222"
	testUserID  = "333333333333333333"
)

// fakeMembers resolves every user listed in it
type fakeMembers map[string]*discordgo.Member

func (f fakeMembers) Member(guildID, userID string) (*discordgo.Member, error) {
	if member, ok := f[guildID+"/"+userID]; ok {
		return member, nil
	}
	return nil, errors.New("unknown member")
}

func newTestGate() *AccessGate {
	return NewAccessGate(testGuildID, testRoleID, fakeMembers{
		testGuildID + "/" + testUserID: {User: &discordgo.User{ID: testUserID}},
	})
}

func denyReason(t *testing.T, err error) DenyReason {
	t.Helper()
	require.Error(t, err)
	denied, ok := err.(*AccessDenied)
	require.True(t, ok, "expected *AccessDenied, got %T", err)
	return denied.Reason
}

func TestAuthorizeAllowed(t *testing.T) {
	err := newTestGate().Authorize(AccessContext{
		UserID:  testUserID,
		GuildID: testGuildID,
		RoleIDs: []string{"1", testRoleID},
	})
	assert.NoError(t, err)
}

func TestAuthorizeWrongGuildRegardlessOfRole(t *testing.T) {
	gate := newTestGate()

	for _, guildID := range []string{"999999999999999999", ""} {
		err := gate.Authorize(AccessContext{
			UserID:  testUserID,
			GuildID: guildID,
			RoleIDs: []string{testRoleID},
		})
		assert.Equal(t, DenyWrongGuild, denyReason(t, err), "guild %q", guildID)
	}
}

func TestAuthorizeNotAMember(t *testing.T) {
	gate := newTestGate()

	err := gate.Authorize(AccessContext{
		UserID:  "444444444444444444",
		GuildID: testGuildID,
		RoleIDs: []string{testRoleID},
	})
	assert.Equal(t, DenyNotAMember, denyReason(t, err))

	gate.Members = nil
	err = gate.Authorize(AccessContext{UserID: testUserID, GuildID: testGuildID, RoleIDs: []string{testRoleID}})
	assert.Equal(t, DenyNotAMember, denyReason(t, err))
}

func TestAuthorizeMissingRole(t *testing.T) {
	gate := newTestGate()

	for _, roles := range [][]string{nil, {}, {"1", "2"}, {testGuildID}} {
		err := gate.Authorize(AccessContext{
			UserID:  testUserID,
			GuildID: testGuildID,
			RoleIDs: roles,
		})
		assert.Equal(t, DenyMissingRole, denyReason(t, err), "roles %v", roles)
	}
}

func TestAuthorizeCountsDenials(t *testing.T) {
	counter := metrics.AccessDenied.WithLabelValues(string(DenyMissingRole))
	before := testutil.ToFloat64(counter)

	newTestGate().Authorize(AccessContext{UserID: testUserID, GuildID: testGuildID})

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestUserMessage(t *testing.T) {
	LoadTranslations()

	assert.Equal(t, "This command is not enabled in this guild.", UserMessage(&AccessDenied{Reason: DenyWrongGuild}))
	assert.Equal(t, "I could not find your membership in this guild.", UserMessage(&AccessDenied{Reason: DenyNotAMember}))
	assert.Equal(t, "You do not have the required role to use this command.", UserMessage(&AccessDenied{Reason: DenyMissingRole}))
	assert.Equal(t, GetText("plugins.responses.errors.storage-corrupt"), UserMessage(ErrStorageCorrupt))
	assert.Equal(t, GetText("plugins.responses.errors.storage-unwritable"), UserMessage(ErrStorageUnwritable))
	assert.Equal(t, GetText("plugins.responses.errors.storage-corrupt"), UserMessage(pkgerrors.Wrap(ErrStorageCorrupt, "parse responses.json")))
	assert.Equal(t, GetText("plugins.responses.errors.invalid-trigger"), UserMessage(ErrInvalidTrigger))
	assert.Equal(t, GetText("bot.errors.general"), UserMessage(errors.New("boom")))
}

func TestGatewayError(t *testing.T) {
	LoadTranslations()

	assert.NoError(t, GatewayError(nil, "send"))

	err := GatewayError(errors.New("503 Service Unavailable"), "send message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send message")
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, ErrGatewayTransient, pkgerrors.Cause(err))
	assert.Equal(t, GetText("bot.errors.general"), UserMessage(err))
}
