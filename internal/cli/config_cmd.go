package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iceforge/skadimon/internal/config"
	"github.com/iceforge/skadimon/internal/errors"
	"github.com/iceforge/skadimon/internal/ui"
	"github.com/iceforge/skadimon/internal/util"
	"gopkg.in/yaml.v3"
)

// configInitCommand writes a default config file.
func configInitCommand(out io.Writer, global, force bool) error {
	path := config.ConfigFileName
	if global {
		p, err := config.GlobalConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg := config.DefaultConfig()
	if urlFlag != "" {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(urlFlag), "/")
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.WriteDefault(path, cfg, force); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Wrote %s\n", successMark(), path)
	return nil
}

// configSetCommand changes one key in the active config file. The file is
// restored if the new value doesn't validate.
func configSetCommand(out io.Writer, key, value string) error {
	if !config.IsKey(key) {
		suggestion := "Known keys: " + strings.Join(config.Keys, ", ")
		if similar := util.SuggestSimilar(key, config.Keys, 3); len(similar) > 0 {
			suggestion = "Did you mean " + strings.Join(similar, " or ") + "?"
		}
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a config key", key), suggestion)
	}

	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'skadimon config init' first")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to read "+path, "")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't set %s in %s", key, path), "")
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if restoreErr := os.WriteFile(path, original, 0644); restoreErr != nil {
			return errors.WrapWithCode(restoreErr, errors.ErrConfig,
				"Invalid value, and restoring "+path+" failed", "Check the file by hand")
		}
		return err
	}

	fmt.Fprintf(out, "%s %s = %s\n", successMark(), key, value)
	return nil
}

// configShowCommand prints the effective configuration as YAML.
func configShowCommand(out io.Writer) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	source := s.path
	if source == "" {
		source = "defaults (no config file)"
	}
	fmt.Fprintf(out, "# %s\n", source)

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s.cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return enc.Close()
}

func successMark() string {
	return lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(ui.SymbolSuccess)
}
