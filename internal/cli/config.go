package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerAddr   string
	HealthURL    string
	Identity     string
	IdentityFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerAddr:   getEnvOrDefault("SEABATTLE_ADDR", "localhost:5555"),
		HealthURL:    getEnvOrDefault("SEABATTLE_HEALTH_URL", "http://localhost:8080"),
		Identity:     os.Getenv("SEABATTLE_IDENTITY"),
		IdentityFile: getEnvOrDefault("SEABATTLE_IDENTITY_FILE", defaultIdentityFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadIdentity loads the identity from file if not already set
func (c *Config) LoadIdentity() error {
	if c.Identity != "" {
		return nil
	}

	data, err := os.ReadFile(c.IdentityFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No identity file is fine
		}
		return err
	}

	c.Identity = string(data)
	return nil
}

// SaveIdentity saves the identity to the identity file
func (c *Config) SaveIdentity(identity string) error {
	c.Identity = identity

	dir := filepath.Dir(c.IdentityFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.IdentityFile, []byte(identity), 0600)
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".seabattle/identity"
	}
	return filepath.Join(home, ".seabattle", "identity")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
