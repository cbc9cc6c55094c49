package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haivivi/prefstore/pkg/prefs"
)

var pathCmd = &cobra.Command{
	Use:   "path <app-id>",
	Short: "Print the preferences directory for an app",
	Long: `Print the directory where an application's preference files live.

Examples:
  prefstore path com.example.editor
  prefstore path com.example.editor --root /tmp/prefs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootDir
		if root == "" {
			var err error
			root, err = prefs.DefaultRoot()
			if err != nil {
				return err
			}
		}
		fmt.Println(filepath.Join(root, args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
