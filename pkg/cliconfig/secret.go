package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretFileName is the file name for a stored shared secret.
const DefaultSecretFileName = "secret"

// GetSecretFilePath returns the default path for the secret file.
// Location: $XDG_DATA_HOME/netlenium/secret (or ~/.local/share/netlenium/secret)
func GetSecretFilePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, GlobalConfigDir, DefaultSecretFileName)
}

// LoadSecretFromPath loads a secret from a file, trimming whitespace.
// A missing file is not an error and yields "".
func LoadSecretFromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveSecret fills cfg.Secret from a secret file. An explicit
// cfg.SecretFile (which must exist) is read unless secret was set by a
// layer of equal or higher precedence. With neither configured, the
// default secret file is tried and may be absent.
func ResolveSecret(cfg *CLIConfig) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if cfg.SecretFile != "" && (cfg.Secret == "" || outranks(cfg.Sources["secretFile"], cfg.Sources["secret"])) {
		data, err := os.ReadFile(cfg.SecretFile)
		if err != nil {
			return fmt.Errorf("reading secret file: %w", err)
		}
		if secret := strings.TrimSpace(string(data)); secret != "" {
			cfg.Secret = secret
			cfg.Sources["secret"] = cfg.Sources["secretFile"]
		}
		return nil
	}
	if cfg.Secret != "" {
		return nil
	}

	secret, err := LoadSecretFromPath(GetSecretFilePath())
	if err != nil {
		return err
	}
	if secret != "" {
		cfg.Secret = secret
		cfg.Sources["secret"] = SourceFile
	}
	return nil
}

// sourceRank orders config sources by precedence.
var sourceRank = map[string]int{
	SourceDefault: 0,
	SourceFile:    0,
	SourceGlobal:  1,
	SourceLocal:   2,
	SourceEnv:     3,
	SourceFlag:    4,
}

// outranks reports whether source a takes precedence over source b.
func outranks(a, b string) bool {
	return sourceRank[a] > sourceRank[b]
}

// MaskSecret hides all but the last two characters of a secret.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-2) + secret[len(secret)-2:]
}
