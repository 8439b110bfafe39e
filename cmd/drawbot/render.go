package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mastercactapus/drawbot/coord"
	"github.com/mastercactapus/drawbot/gcode"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [movements.json]",
	Short: "Render a movement list to G-code on stdout",
	Long: `Render reads a JSON movement list (from a file or stdin) and prints the
complete program, including the flavor preamble and footer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("flavor", "GRBL", "Controller flavor (GRBL or Marlin).")
	renderCmd.Flags().Float32("xdim", 0, "Bed width to clamp to (0 disables clamping).")
	renderCmd.Flags().Float32("ydim", 0, "Bed height to clamp to (0 disables clamping).")
	renderCmd.Flags().Bool("relative", false, "Interpret movements as relative offsets.")
}

func runRender(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("flavor")
	xdim, _ := cmd.Flags().GetFloat32("xdim")
	ydim, _ := cmd.Flags().GetFloat32("ydim")
	relative, _ := cmd.Flags().GetBool("relative")

	flavor, err := gcode.ParseFlavor(name)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	mode := gcode.Absolute
	if relative {
		mode = gcode.Relative
	}
	var bed *coord.Vec2D
	if xdim > 0 && ydim > 0 {
		bed = &coord.Vec2D{X: xdim, Y: ydim}
	}

	lines, err := renderMovements(in, flavor, bed, mode)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, ln := range lines {
		fmt.Fprintln(out, ln)
	}
	return nil
}

func renderMovements(r io.Reader, flavor gcode.Flavor, bed *coord.Vec2D, mode gcode.Position) ([]string, error) {
	var movements []gcode.Movement
	err := json.NewDecoder(r).Decode(&movements)
	if err != nil {
		return nil, fmt.Errorf("decode movements: %w", err)
	}
	if bed != nil {
		movements = gcode.ClampMovements(movements, *bed, mode)
	}
	ops, _, err := gcode.Translate(movements, mode)
	if err != nil {
		return nil, err
	}
	return gcode.Program(ops, flavor)
}
