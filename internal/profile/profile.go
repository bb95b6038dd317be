package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where posawiki stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the url of your posawiki instance.
	InstanceURL string
	// Secret signs curator API tokens
	Secret string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// FromEnv loads configuration overrides from POSAWIKI_* environment variables.
func (p *Profile) FromEnv() {
	getEnv := func(key string) string {
		return os.Getenv("POSAWIKI_" + key)
	}

	if v := getEnv("MODE"); v != "" {
		p.Mode = v
	}
	if v := getEnv("DRIVER"); v != "" {
		p.Driver = v
	}
	if v := getEnv("DSN"); v != "" {
		p.DSN = v
	}
	if v := getEnv("DATA"); v != "" {
		p.Data = v
	}
	if v := getEnv("INSTANCE_URL"); v != "" {
		p.InstanceURL = v
	}
	if v := getEnv("SECRET"); v != "" {
		p.Secret = v
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported database driver %q", p.Driver)
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "posawiki")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/posawiki"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("posawiki_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for postgres driver")
	}

	return nil
}
