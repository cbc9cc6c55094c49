package commands

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/haivivi/prefstore/pkg/prefs"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Render a whole preferences file",
	Long: `Render every key in a preferences file to stdout.

The --output format is independent of the on-disk --codec, so a msgpack
file can be inspected as yaml.

Examples:
  prefstore -a com.example.editor dump app
  prefstore -a com.example.editor --codec msgpack dump app --output yaml`,
	Args: cobra.ExactArgs(1),
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

		switch dumpOutput {
		case "toml", "json":
			codec, err := codecByName(dumpOutput)
			if err != nil {
				return err
			}
			data, err := codec.Encode(file.Root())
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			if dumpOutput == "json" {
				fmt.Println()
			}
			return nil
		case "yaml":
			data, err := yaml.Marshal(yamlTree(file.Root()))
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		default:
			return fmt.Errorf("unknown output format %q (want toml, json, or yaml)", dumpOutput)
		}
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "toml", "output format: toml, json, or yaml")
	rootCmd.AddCommand(dumpCmd)
}

// yamlTree converts a group to an order-preserving yaml.MapSlice.
func yamlTree(g *prefs.Group) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, g.Len())
	for _, name := range g.Names() {
		if sub := g.Group(name); sub != nil {
			out = append(out, yaml.MapItem{Key: name, Value: yamlTree(sub)})
			continue
		}
		v, _ := g.Value(name)
		out = append(out, yaml.MapItem{Key: name, Value: v.Any()})
	}
	return out
}
