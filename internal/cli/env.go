package cli

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileVar names an env file that takes precedence over --env.
const EnvFileVar = "TEXTLENS_ENV_FILE"

var ErrEnvFileNotFound = errors.New("env file not found")

// EnvLoader loads .env files with a predictable override order.
type EnvLoader struct {
	value       *string
	defaultPath string
}

type envCandidate struct {
	source string
	path   string
}

// AddEnvFlag registers an --env flag and returns an EnvLoader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	value := fs.String("env", defaultPath, description)
	return &EnvLoader{
		value:       value,
		defaultPath: defaultPath,
	}
}

// Load applies the first readable env file from candidates and returns its
// path. Values in the file override the process environment.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	for _, candidate := range l.candidates() {
		if err := godotenv.Overload(candidate.path); err != nil {
			if candidate.source == EnvFileVar {
				log.Printf("Warning: failed to load %s=%s", EnvFileVar, candidate.path)
			}
			continue
		}
		log.Printf("Loaded environment from %s: %s", candidate.source, candidate.path)
		return candidate.path, nil
	}

	return "", fmt.Errorf("%w: %s", ErrEnvFileNotFound, l.requested())
}

// candidates lists env files in load order: $TEXTLENS_ENV_FILE, the --env
// value, its basename, the default path and $XDG_CONFIG_HOME/textlens/.env.
func (l *EnvLoader) candidates() []envCandidate {
	var out []envCandidate
	seen := map[string]struct{}{}
	add := func(source, path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, envCandidate{source: source, path: path})
	}

	add(EnvFileVar, os.Getenv(EnvFileVar))

	requested := l.requested()
	add("--env", requested)
	if base := filepath.Base(requested); base != "." && base != requested {
		add("basename fallback", base)
	}
	add("fallback", l.defaultPath)

	if dir, err := os.UserConfigDir(); err == nil {
		add("user config", filepath.Join(dir, "textlens", ".env"))
	}
	return out
}

func (l *EnvLoader) requested() string {
	if l.value != nil {
		if requested := strings.TrimSpace(*l.value); requested != "" {
			return requested
		}
	}
	return l.defaultPath
}
