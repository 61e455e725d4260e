package cfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// VaultSecretsPath is the path where Vault Agent writes secret files
const VaultSecretsPath = "/vault/secrets"

// Loader reads settings and collects every problem it finds so a bad
// deployment reports all of them at once.
type Loader struct {
	errs []error
}

func NewLoader() *Loader {
	loadVaultSecrets(VaultSecretsPath)
	return &Loader{}
}

func (l *Loader) HasErrors() bool {
	return len(l.errs) > 0
}

func (l *Loader) Error() error {
	return errors.Join(l.errs...)
}

func (l *Loader) fail(format string, args ...any) {
	l.errs = append(l.errs, fmt.Errorf(format, args...))
}

// loadVaultSecrets exports the *.env files rendered by Vault Agent. Variables
// already set in the environment win.
func loadVaultSecrets(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.env"))
	if err != nil || len(matches) == 0 {
		return
	}
	_ = godotenv.Load(matches...)
}

func (l *Loader) requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		l.fail("missing env: %s", key)
	}
	return value
}

// lookup returns the trimmed value of key and whether it is set to
// something non-blank.
func lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (l *Loader) getEnvWithDefault(key, defaultValue string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return defaultValue
}

func (l *Loader) getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		l.fail("invalid duration for %s: %s", key, value)
		return defaultValue
	}
	return d
}

func (l *Loader) getEnvFloat64OrDefault(key string, defaultValue float64) float64 {
	value, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		l.fail("invalid float for %s: %s", key, value)
		return defaultValue
	}
	return f
}

func (l *Loader) getEnvBoolWithDefault(key string, defaultValue bool) bool {
	value, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		l.fail("invalid bool for %s: %s", key, value)
		return defaultValue
	}
	return b
}
