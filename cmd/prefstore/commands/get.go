package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <dotted.key>",
	Short: "Read a single preference",
	Long: `Read one preference value from a file by its dotted key path.

Examples:
  prefstore -a com.example.editor get app window.size
  prefstore -a com.example.editor get app lang`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		file, err := store.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		if file == nil {
			return fmt.Errorf("no preferences file %q", args[0])
		}
		g, leaf, err := walkKey(file.Root(), args[1])
		if err != nil {
			return err
		}
		if sub := g.Group(leaf); sub != nil {
			return fmt.Errorf("%q is a group, not a value", args[1])
		}
		v, ok := g.Value(leaf)
		if !ok {
			return fmt.Errorf("no value %q", args[1])
		}
		fmt.Println(v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
