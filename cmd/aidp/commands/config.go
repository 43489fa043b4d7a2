package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aidp/internal/config"
	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage aidp configuration",
	Long: `Manage aidp configuration stored in ~/.config/aidp/config.yaml.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  aidp config

  # Get a specific value
  aidp config get aider_bin

  # Set a value
  aidp config set aider_bin /usr/local/bin/aider

See Also: aidp doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys (e.g. backup.retention).`,
	Example: `  # Get the aider executable
  aidp config get aider_bin

  # Get the backup retention count
  aidp config get backup.retention

See Also: aidp config set, aidp config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

Known keys: aider_bin, profiles_dir, backup.retention, version.`,
	Example: `  # Point aidp at a different aider binary
  aidp config set aider_bin /usr/local/bin/aider

  # Keep the last ten backups
  aidp config set backup.retention 10

See Also: aidp config get, aidp config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Example: `  # List all configuration
  aidp config list

See Also: aidp config get, aidp config set`,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

If no configuration file exists yet, one is created with the current
values first.`,
	Example: `  # Open config in default editor
  aidp config edit

  # Open with specific editor
  EDITOR=nano aidp config edit

See Also: aidp config list`,
	RunE: runConfigEdit,
}

func runConfigGet(_ *cobra.Command, args []string) error {
	key := args[0]

	if !viper.IsSet(key) {
		fmt.Println("not set")
		return nil
	}

	fmt.Println(viper.GetString(key))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	switch key {
	case "backup.retention", "version":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return aidperrors.NewUserError(
				errors.Newf("%s must be a positive integer, got %q", key, value),
				"")
		}
		viper.Set(key, n)

	case "aider_bin", "profiles_dir":
		if value == "" {
			return errors.Newf("%s cannot be empty", key)
		}
		viper.Set(key, value)

	default:
		return aidperrors.NewUserError(
			errors.Newf("unknown configuration key %q", key),
			"Known keys: aider_bin, profiles_dir, backup.retention, version")
	}

	if err := writeConfig(); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigList(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(configSnapshot())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Print(string(data))
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	configPath := config.DefaultConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeConfig(); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}

	return nil
}

// configSnapshot captures the current viper state as a plain map.
func configSnapshot() map[string]any {
	return map[string]any{
		"version":      viper.GetInt("version"),
		"aider_bin":    viper.GetString("aider_bin"),
		"profiles_dir": viper.GetString("profiles_dir"),
		"backup": map[string]any{
			"retention": viper.GetInt("backup.retention"),
		},
	}
}

// writeConfig writes the current viper configuration to the config file.
func writeConfig() error {
	configPath := config.DefaultConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(configPath, configSnapshot()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}
