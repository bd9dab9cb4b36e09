package bootstrap

import (
	"fmt"
	"log"

	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/token"
)

// initializeTokenProvider loads the RSA keypair and builds the token
// provider. Without configured keys a throwaway pair is generated;
// tokens then die with the process, which is only acceptable outside
// production (Validate rejects that combination).
func initializeTokenProvider(cfg *config.Config) (*token.Provider, error) {
	var keys token.Keys
	var err error

	if cfg.JWTPrivateKeyPEM == "" && cfg.JWTPublicKeyPEM == "" {
		keys, err = token.GenerateKeys()
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing keys: %w", err)
		}
		log.Printf("Warning: no JWT keypair configured, generated an ephemeral one (tokens will not survive restarts)")
	} else {
		keys, err = token.ParseKeys([]byte(cfg.JWTPrivateKeyPEM), []byte(cfg.JWTPublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to load signing keys: %w", err)
		}
		log.Printf("JWT signing keys loaded (issuer: %s, ttl: %s)", cfg.JWTIssuer, cfg.JWTExpiration)
	}

	return token.NewProvider(keys, cfg.JWTIssuer, cfg.JWTExpiration, cfg.JWTClockSkew), nil
}
