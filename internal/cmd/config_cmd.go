package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/config"
	"github.com/pomokit/pomo/internal/ui"
	"github.com/pomokit/pomo/pkg/shell"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `View and modify the pomo configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration the daemon and CLI will use: the config
file merged over the built-in defaults.`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configForceFlag bool

func init() {
	configInitCmd.Flags().BoolVar(&configForceFlag, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.FilePath()
	if err != nil {
		return err
	}

	if shell.FileExists(path) && !configForceFlag {
		ok, err := ui.PromptYesNo(fmt.Sprintf("Overwrite %s?", path), false)
		if err != nil {
			return err
		}
		if !ok {
			ui.Info("Aborted")
			return nil
		}
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	ui.Success("Wrote default configuration")
	ui.KeyValue("File", path)
	ui.Info("Restart the daemon to pick up edits to this file")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, err := config.FilePath()
	if err != nil {
		return err
	}

	ui.Header("Pomo Configuration")
	if shell.FileExists(path) {
		ui.KeyValue("File", path)
	} else {
		ui.KeyValue("File", ui.Dim(fmt.Sprintf("%s (missing, showing defaults)", path)))
	}
	ui.NewLine()

	onOff := func(b bool) string {
		if b {
			return ui.Green("on")
		}
		return ui.Dim("off")
	}

	table := ui.NewTable([]string{"setting", "value"})
	table.AddRow([]string{"timer.work_minutes", fmt.Sprintf("%d", cfg.Timer.WorkMinutes)})
	table.AddRow([]string{"timer.break_minutes", fmt.Sprintf("%d", cfg.Timer.BreakMinutes)})
	table.AddRow([]string{"timer.long_break_minutes", fmt.Sprintf("%d", cfg.Timer.LongBreakMinutes)})
	table.AddRow([]string{"timer.auto_cycle", onOff(cfg.Timer.AutoCycle)})
	table.AddRow([]string{"sound.enabled", onOff(cfg.Sound.Enabled)})
	table.AddRow([]string{"sound.completion_sound", cfg.Sound.CompletionSound})
	table.AddRow([]string{"notifications.enabled", onOff(cfg.Notifications.Enabled)})
	table.AddRow([]string{"focus.enabled", onOff(cfg.Focus.Enabled)})
	table.AddRow([]string{"focus.enable_shortcut", cfg.Focus.EnableShortcut})
	table.AddRow([]string{"focus.disable_shortcut", cfg.Focus.DisableShortcut})
	table.AddRow([]string{"metrics.enabled", onOff(cfg.Metrics.Enabled)})
	table.AddRow([]string{"metrics.port", fmt.Sprintf("%d", cfg.Metrics.Port)})
	table.Render()

	if err := cfg.Validate(); err != nil {
		ui.NewLine()
		ui.Warningf("Configuration is invalid: %v", err)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.FilePath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
