package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"

	"github.com/barysiuk/reincheck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the reincheck configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty configuration file",
	Long: `Write a fresh ~/.reincheck/config.json.

Fails if a config file already exists; use 'reincheck setup' to
generate one from a preset instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager()
		if err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}
		if _, err := os.Stat(mgr.ConfigPath()); err == nil {
			return fmt.Errorf("config already exists at %s", mgr.ConfigPath())
		}
		if err := mgr.Save(&config.Config{Agents: []config.AgentRecord{}}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Created %s\n", mgr.ConfigPath())
		return nil
	},
}

var configFmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format the configuration file",
	Long: `Normalize the config file's formatting in place, preserving any
comments. With --check, report whether it is already formatted without
rewriting it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager()
		if err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		path := mgr.ConfigPath()
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		formatted, err := hujson.Format(data)
		if err != nil {
			return fmt.Errorf("formatting config: %w", err)
		}

		if check, _ := cmd.Flags().GetBool("check"); check {
			if !bytes.Equal(data, formatted) {
				return fmt.Errorf("%s is not formatted", path)
			}
			fmt.Fprintf(os.Stdout, "%s is formatted\n", path)
			return nil
		}

		if bytes.Equal(data, formatted) {
			return nil
		}
		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Formatted %s\n", path)
		return nil
	},
}

func init() {
	configFmtCmd.Flags().Bool("check", false, "Report formatting status without rewriting")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configFmtCmd)
	rootCmd.AddCommand(configCmd)
}
