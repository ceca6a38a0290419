package app

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/jwtx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret-0123456789abcdef0123456789"
	refreshSecret = "refresh-secret-0123456789abcdef012345678"
)

func keyConfig(env string) Config {
	return Config{
		Env:           env,
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		SessionIssuer: "contentdeck",
		MasterKey:     base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32))),
	}
}

func TestInitKeysSeparatesAccessAndRefresh(t *testing.T) {
	keys, err := InitKeys(keyConfig("prod"), slogx.Discard())
	require.NoError(t, err)

	now := time.Now()
	access, err := keys.AccessSigner.Sign(jwtx.NewSessionClaims("user-1", jwtx.KindAccess, "", "contentdeck", time.Minute, now))
	require.NoError(t, err)
	refresh, err := keys.RefreshSigner.Sign(jwtx.NewSessionClaims("user-1", jwtx.KindRefresh, "", "contentdeck", time.Hour, now))
	require.NoError(t, err)

	_, err = keys.AccessVerifier.Verify(access)
	require.NoError(t, err)
	_, err = keys.RefreshVerifier.Verify(refresh)
	require.NoError(t, err)

	_, err = keys.AccessVerifier.Verify(refresh)
	require.Error(t, err, "refresh token must not pass as an access token")
	_, err = keys.RefreshVerifier.Verify(access)
	require.Error(t, err, "access token must not pass as a refresh token")
}

func TestInitKeysSealerUsesMasterKey(t *testing.T) {
	cfg := keyConfig("prod")

	first, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	second, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)

	sealed, err := first.Sealer.SealString("rt-value")
	require.NoError(t, err)

	opened, err := second.Sealer.OpenString(sealed)
	require.NoError(t, err, "the same master key must open values sealed before a restart")
	require.Equal(t, "rt-value", opened)
}

func TestInitKeysProdRequiresSecrets(t *testing.T) {
	cases := map[string]func(*Config){
		"missing access secret":  func(c *Config) { c.AccessSecret = "" },
		"missing refresh secret": func(c *Config) { c.RefreshSecret = "" },
		"missing master key":     func(c *Config) { c.MasterKey = "" },
		"same secrets":           func(c *Config) { c.RefreshSecret = c.AccessSecret },
		"short secret":           func(c *Config) { c.AccessSecret = "short" },
		"master key not base64":  func(c *Config) { c.MasterKey = "not base64!" },
		"short master key":       func(c *Config) { c.MasterKey = base64.StdEncoding.EncodeToString([]byte("short")) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := keyConfig("prod")
			mutate(&cfg)

			_, err := InitKeys(cfg, slogx.Discard())
			require.Error(t, err)
		})
	}
}

func TestInitKeysDevGeneratesMissingSecrets(t *testing.T) {
	cfg := Config{Env: "dev", SessionIssuer: "contentdeck"}

	keys, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)

	token, err := keys.AccessSigner.Sign(jwtx.NewSessionClaims("user-1", jwtx.KindAccess, "", "contentdeck", time.Minute, time.Now()))
	require.NoError(t, err)
	_, err = keys.AccessVerifier.Verify(token)
	require.NoError(t, err)

	sealed, err := keys.Sealer.SealString("rt-value")
	require.NoError(t, err)
	opened, err := keys.Sealer.OpenString(sealed)
	require.NoError(t, err)
	require.Equal(t, "rt-value", opened)
}
