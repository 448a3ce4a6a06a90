package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pomokit/pomo/internal/launchagent"
	"github.com/pomokit/pomo/internal/ui"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage the launchd agent",
	Long: `Manage the launchd agent that keeps the pomo daemon running.

Once installed, launchd starts the daemon at login and restarts it if
it exits. The agent runs this binary with the hidden daemon command.`,
}

var agentInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and load the launch agent",
	RunE:  runAgentInstall,
}

var agentUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Unload and remove the launch agent",
	RunE:  runAgentUninstall,
}

var agentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the launch agent status",
	RunE:  runAgentStatus,
}

var agentYesFlag bool

func init() {
	agentUninstallCmd.Flags().BoolVarP(&agentYesFlag, "yes", "y", false, "skip the confirmation prompt")
	agentCmd.AddCommand(agentInstallCmd)
	agentCmd.AddCommand(agentUninstallCmd)
	agentCmd.AddCommand(agentStatusCmd)
	rootCmd.AddCommand(agentCmd)
}

func runAgentInstall(cmd *cobra.Command, args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate the pomo binary: %w", err)
	}

	if err := launchagent.Install(exe); err != nil {
		return err
	}

	plistPath, err := launchagent.PlistPath()
	if err != nil {
		return err
	}

	ui.Success("Launch agent installed")
	ui.KeyValue("Plist", plistPath)
	ui.KeyValue("Binary", exe)
	ui.Info("The daemon now starts at login and restarts if it exits")
	return nil
}

func runAgentUninstall(cmd *cobra.Command, args []string) error {
	if !agentYesFlag {
		ok, err := ui.PromptYesNo("Remove the pomo launch agent?", false)
		if err != nil {
			return err
		}
		if !ok {
			ui.Info("Aborted")
			return nil
		}
	}

	if err := launchagent.Uninstall(); err != nil {
		return err
	}

	ui.Success("Launch agent removed")
	ui.Info("A daemon that is already running keeps running until it exits")
	return nil
}

func runAgentStatus(cmd *cobra.Command, args []string) error {
	status, err := launchagent.GetStatus()
	if err != nil {
		return err
	}

	ui.Header("Launch Agent")
	ui.KeyValue("Label", launchagent.Label)
	ui.KeyValue("Plist", status.PlistPath)

	if !status.Installed {
		ui.KeyValue("Installed", ui.Red("no"))
		ui.NewLine()
		ui.Info("Run 'pomo agent install' to install it")
		return nil
	}
	ui.KeyValue("Installed", ui.Green("yes"))

	if status.Loaded {
		ui.KeyValue("Loaded", ui.Green("yes"))
		if status.PID > 0 {
			ui.KeyValue("Daemon PID", fmt.Sprintf("%d", status.PID))
		}
	} else {
		ui.KeyValue("Loaded", ui.Yellow("no"))
		ui.NewLine()
		ui.Info("Run 'pomo agent install' to load it again")
	}
	return nil
}
