package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var opts hostOptions

var rootCmd = &cobra.Command{
	Use:   "orbitview",
	Short: "Interactive orbit camera viewer",
	Long: `orbitview opens a window and drives a camera with orbit controls.

  Left mouse    orbit        Middle mouse / wheel  zoom
  Right mouse   pan          Arrow keys            pan
  R             reset view   Space                 toggle auto-rotate
  Esc           quit

A reference grid marks the XZ plane with red, green and blue X, Y and Z axes.
The background tint follows the camera's polar and azimuthal angles.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.autoRotateSet = cmd.Flags().Changed("auto-rotate")
		opts.dampingSet = cmd.Flags().Changed("damping")
		return run(opts)
	},
	SilenceUsage: true,
	Version:      "0.1.0",
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML settings file for the orbit controls")
	f.BoolVarP(&opts.watch, "watch", "w", false, "reload the settings file when it changes")
	f.StringVar(&opts.title, "title", "", "window title")
	f.IntVar(&opts.width, "width", 1280, "initial window width in pixels")
	f.IntVar(&opts.height, "height", 720, "initial window height in pixels")
	f.BoolVar(&opts.ortho, "ortho", false, "use an orthographic camera instead of a perspective one")
	f.BoolVar(&opts.autoRotate, "auto-rotate", false, "orbit automatically while idle")
	f.BoolVar(&opts.damping, "damping", true, "enable inertial damping")
	f.Float64Var(&opts.tickRate, "tick-rate", 60, "controller updates per second")
	f.BoolVar(&opts.vsync, "vsync", true, "present with vertical sync")
	f.IntVar(&opts.grid, "grid", 20, "reference grid cells per side (0 shows only the axes)")
	f.BoolVar(&opts.profile, "profile", false, "log frame and view-change statistics every second")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
