package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/prefstore/pkg/prefs"
)

var setType string

var setCmd = &cobra.Command{
	Use:   "set <file> <dotted.key> <value>",
	Short: "Write a single preference",
	Long: `Write one preference value into a file by its dotted key path.
Intermediate groups are created as needed, and the file is saved.

The value literal is typed by inspection: true/false become bool,
bare integers int, numbers with a decimal point float, comma-separated
numbers a vector, anything else a string. Use --type to force a type.

Examples:
  prefstore -a com.example.editor set app lang en
  prefstore -a com.example.editor set app window.maximized true
  prefstore -a com.example.editor set app window.size 800,600
  prefstore -a com.example.editor set app nickname --type string true`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		file, err := store.Open(ctx, args[0])
		if err != nil {
			return err
		}
		g := file.Root()
		parts := strings.Split(args[1], ".")
		for _, part := range parts[:len(parts)-1] {
			g = g.GroupMut(part)
			if g == nil {
				return fmt.Errorf("%q names a value, not a group", part)
			}
		}
		if err := setValue(g, parts[len(parts)-1], args[2], setType); err != nil {
			return err
		}
		return store.SaveIfChanged(ctx)
	},
}

func init() {
	setCmd.Flags().StringVar(&setType, "type", "auto", "value type: auto, bool, int, float, string, or vector")
	rootCmd.AddCommand(setCmd)
}

// setValue parses a literal and stores it under name.
func setValue(g *prefs.Group, name, literal, typ string) error {
	switch typ {
	case "bool":
		v, err := strconv.ParseBool(literal)
		if err != nil {
			return fmt.Errorf("parse bool %q: %w", literal, err)
		}
		g.SetBool(name, v)
	case "int":
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return fmt.Errorf("parse int %q: %w", literal, err)
		}
		g.SetInt(name, v)
	case "float":
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return fmt.Errorf("parse float %q: %w", literal, err)
		}
		g.SetFloat(name, v)
	case "string":
		g.SetString(name, literal)
	case "vector":
		return setVector(g, name, literal)
	case "auto":
		return setAuto(g, name, literal)
	default:
		return fmt.Errorf("unknown type %q", typ)
	}
	return nil
}

func setAuto(g *prefs.Group, name, literal string) error {
	if v, err := strconv.ParseBool(literal); err == nil && (literal == "true" || literal == "false") {
		g.SetBool(name, v)
		return nil
	}
	if v, err := strconv.ParseInt(literal, 10, 64); err == nil {
		g.SetInt(name, v)
		return nil
	}
	if v, err := strconv.ParseFloat(literal, 64); err == nil {
		g.SetFloat(name, v)
		return nil
	}
	if strings.Contains(literal, ",") {
		if err := setVector(g, name, literal); err == nil {
			return nil
		}
	}
	g.SetString(name, literal)
	return nil
}

// setVector parses "x,y" or "x,y,z" into an integer or float vector.
func setVector(g *prefs.Group, name, literal string) error {
	parts := strings.Split(literal, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return fmt.Errorf("vector %q: want 2 or 3 components", literal)
	}

	ints := make([]int64, 0, 3)
	allInt := true
	for _, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			allInt = false
			break
		}
		ints = append(ints, v)
	}
	if allInt {
		return setIntVector(g, name, ints)
	}

	floats := make([]float64, 0, 3)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("vector %q: %w", literal, err)
		}
		floats = append(floats, v)
	}
	if len(floats) == 2 {
		g.SetVec2(name, [2]float64{floats[0], floats[1]})
	} else {
		g.SetVec3(name, [3]float64{floats[0], floats[1], floats[2]})
	}
	return nil
}

func setIntVector(g *prefs.Group, name string, v []int64) error {
	signed := true
	unsigned := true
	for _, c := range v {
		if c < math.MinInt32 || c > math.MaxInt32 {
			signed = false
		}
		if c < 0 || c > math.MaxUint32 {
			unsigned = false
		}
	}
	switch {
	case signed && len(v) == 2:
		g.SetIVec2(name, [2]int32{int32(v[0]), int32(v[1])})
	case signed:
		g.SetIVec3(name, [3]int32{int32(v[0]), int32(v[1]), int32(v[2])})
	case unsigned && len(v) == 2:
		g.SetUVec2(name, [2]uint32{uint32(v[0]), uint32(v[1])})
	case unsigned:
		g.SetUVec3(name, [3]uint32{uint32(v[0]), uint32(v[1]), uint32(v[2])})
	default:
		return fmt.Errorf("integer vector component out of range: %v", v)
	}
	return nil
}
