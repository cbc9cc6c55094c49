package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/prefstore/pkg/prefs"
)

var (
	// Global flags
	appID     string
	rootDir   string
	codecName string
)

var rootCmd = &cobra.Command{
	Use:   "prefstore",
	Short: "Inspect and edit on-disk application preferences",
	Long: `prefstore - a maintenance tool for preference files.

Preference files live in the OS config directory, one subdirectory per
application:
  macOS:   ~/Library/Application Support/<app-id>/
  Linux:   ~/.config/<app-id>/
  Windows: %AppData%/<app-id>/

Examples:
  # Where do this app's preferences live?
  prefstore path com.example.editor

  # Read and write single keys
  prefstore -a com.example.editor get app window.size
  prefstore -a com.example.editor set app window.maximized true

  # Render a whole file
  prefstore -a com.example.editor dump app --output yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&appID, "app", "a", "", "application identifier (e.g. com.example.editor)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "preferences root directory (default: OS config directory)")
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", "toml", "file format: toml, json, or msgpack")
}

// codecByName maps the --codec flag to a Codec.
func codecByName(name string) (prefs.Codec, error) {
	switch name {
	case "toml":
		return prefs.TOML{}, nil
	case "json":
		return prefs.JSON{}, nil
	case "msgpack":
		return prefs.Msgpack{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want toml, json, or msgpack)", name)
	}
}

// openStore builds a filesystem-backed store from the global flags.
func openStore(ctx context.Context) (*prefs.Store, error) {
	if appID == "" {
		return nil, fmt.Errorf("--app is required")
	}
	codec, err := codecByName(codecName)
	if err != nil {
		return nil, err
	}
	root := rootDir
	if root == "" {
		root, err = prefs.DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	backend, err := prefs.NewFS(prefs.FSOptions{Root: root, Ext: codec.Ext()})
	if err != nil {
		return nil, err
	}
	return prefs.New(ctx, prefs.Options{
		AppID:   appID,
		Backend: backend,
		Codec:   codec,
	})
}

// walkKey follows a dotted key path down to its parent group and leaf name.
func walkKey(root *prefs.Group, key string) (*prefs.Group, string, error) {
	parts := strings.Split(key, ".")
	g := root
	for _, part := range parts[:len(parts)-1] {
		next := g.Group(part)
		if next == nil {
			return nil, "", fmt.Errorf("no group %q in key %q", part, key)
		}
		g = next
	}
	return g, parts[len(parts)-1], nil
}
