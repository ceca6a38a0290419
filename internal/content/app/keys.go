package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/contentdeck/pkg/cryptox"
	"github.com/aussiebroadwan/contentdeck/pkg/jwtx"
)

// sealPurpose separates the Reddit token key from anything else derived from
// the same master key.
const sealPurpose = "reddit-refresh-token"

// SessionKeys is the key material for session tokens and sealed credentials.
type SessionKeys struct {
	AccessSigner    jwtx.Signer
	AccessVerifier  jwtx.Verifier
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier
	Sealer          *cryptox.Sealer
}

// InitKeys builds the signers, verifiers and sealer from configuration.
//
// In prod every secret must be configured. Elsewhere a missing secret is
// replaced by a random one, which logs everybody out and makes linked Reddit
// accounts unreadable on restart.
func InitKeys(cfg Config, logger *slog.Logger) (*SessionKeys, error) {
	access, err := secret(cfg, "JWT_ACCESS_SECRET", cfg.AccessSecret, logger)
	if err != nil {
		return nil, err
	}
	refresh, err := secret(cfg, "JWT_REFRESH_SECRET", cfg.RefreshSecret, logger)
	if err != nil {
		return nil, err
	}
	if string(access) == string(refresh) {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	accessSigner, err := jwtx.NewSignerHS256(access)
	if err != nil {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET: %w", err)
	}
	refreshSigner, err := jwtx.NewSignerHS256(refresh)
	if err != nil {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET: %w", err)
	}

	master, err := masterKey(cfg, logger)
	if err != nil {
		return nil, err
	}
	sealer, err := cryptox.NewSealer(master, sealPurpose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token sealer: %w", err)
	}

	return &SessionKeys{
		AccessSigner:    accessSigner,
		AccessVerifier:  jwtx.NewVerifierHS256(access, cfg.SessionIssuer, jwtx.KindAccess),
		RefreshSigner:   refreshSigner,
		RefreshVerifier: jwtx.NewVerifierHS256(refresh, cfg.SessionIssuer, jwtx.KindRefresh),
		Sealer:          sealer,
	}, nil
}

func secret(cfg Config, name, value string, logger *slog.Logger) ([]byte, error) {
	if value != "" {
		return []byte(value), nil
	}
	if cfg.IsProd() {
		return nil, fmt.Errorf("%s is required in prod", name)
	}

	generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	logger.Warn("secret not configured, using an ephemeral one", "name", name)
	return []byte(generated), nil
}

func masterKey(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.MasterKey == "" {
		if cfg.IsProd() {
			return nil, errors.New("MASTER_KEY is required in prod")
		}
		logger.Warn("MASTER_KEY not configured, linked reddit accounts will not survive a restart")
		return nil, nil
	}

	key, err := base64.StdEncoding.DecodeString(cfg.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("MASTER_KEY must be base64: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("MASTER_KEY must decode to at least 32 bytes, got %d", len(key))
	}
	return key, nil
}
