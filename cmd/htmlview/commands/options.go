package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/livefir/htmlview"
	"github.com/livefir/htmlview/internal/logger"
)

// flags holds the options shared by all commands
type flags struct {
	configPath string
	dryRun     bool
	seed       uint64
	positional []string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{seed: 1}
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" && i+1 < len(args):
			f.configPath = args[i+1]
			i++
		case args[i] == "--seed" && i+1 < len(args):
			if _, err := fmt.Sscanf(args[i+1], "%d", &f.seed); err != nil {
				return nil, fmt.Errorf("invalid seed %q: %w", args[i+1], err)
			}
			i++
		case args[i] == "--dry-run":
			f.dryRun = true
		case strings.HasPrefix(args[i], "--"):
			return nil, fmt.Errorf("unknown flag: %s", args[i])
		default:
			f.positional = append(f.positional, args[i])
		}
	}
	return f, nil
}

// setup loads the config (defaults when no file is given) and builds a logger
func (f *flags) setup() (*htmlview.Config, *zap.Logger, error) {
	config := htmlview.DefaultConfig()
	if f.configPath != "" {
		loaded, err := htmlview.LoadConfig(f.configPath)
		if err != nil {
			return nil, nil, err
		}
		config = loaded
	}

	log, err := logger.New(config.LogLevel, config.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return config, log, nil
}
