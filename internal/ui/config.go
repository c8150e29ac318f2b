package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/config"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  mitplan config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath(), a.catalog)
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string, c *catalog.Catalog) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg, c)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Planner.DefaultTimeline = promptValue(reader, out, "Default timeline (id or file)", cfg.Planner.DefaultTimeline)
	cfg.Planner.SnapThreshold = promptInt(reader, out, "Snap threshold (seconds)", cfg.Planner.SnapThreshold)
	cfg.Planner.Party = promptParty(reader, out, cfg.Planner.Party, c)
	cfg.LLM.Provider = promptValue(reader, out, fmt.Sprintf("LLM provider (%s)", strings.Join(llm.Providers(), ", ")), cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, out, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, out, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config, c *catalog.Catalog) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[planner]")
	fmt.Fprintf(out, "  default_timeline = %s\n", cfg.Planner.DefaultTimeline)
	fmt.Fprintf(out, "  snap_threshold   = %d\n", cfg.Planner.SnapThreshold)
	fmt.Fprintf(out, "  party            = %s\n", catalog.Party(cfg.Planner.Party).String(c))
	fmt.Fprintln(out, "\n[llm]")
	fmt.Fprintf(out, "  provider         = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(out, "  model            = %s\n", cfg.LLM.Model)
	fmt.Fprintf(out, "  base_url         = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintf(out, "  max_retries      = %d\n", cfg.LLM.MaxRetries)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level            = %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(out, "  file             = %s\n", cfg.Log.File)
	}
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

// promptParty asks for slot=JOB overrides and merges them into current.
func promptParty(reader *bufio.Reader, out io.Writer, current map[string]string, c *catalog.Catalog) map[string]string {
	for {
		value := promptValue(reader, out, "Party changes (slot=JOB, empty to keep)", "")
		if value == "" {
			return current
		}
		changes, err := catalog.ParseParty(value)
		if err == nil {
			merged := catalog.Party(current).Clone()
			for slot, job := range changes {
				merged[slot] = job
			}
			if err = merged.Validate(c); err == nil {
				return merged
			}
		}
		fmt.Fprintf(out, "  %v. Jobs: %s\n", err, strings.Join(sortedJobs(c), ", "))
	}
}

func sortedJobs(c *catalog.Catalog) []string {
	ids := c.JobIDs()
	sort.Strings(ids)
	return ids
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
