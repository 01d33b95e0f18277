// Package main is the entry point for kitecal, the calibration file tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kite/config"
	"kite/internal/buildinfo"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kitecal:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "kitecal",
		Short:   "Inspect and generate kite touch calibration files",
		Version: buildinfo.Short(),
	}

	root.AddCommand(
		genCmd(),
		checkCmd(),
		showCmd(),
	)

	return root
}

func genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <path>",
		Short: "Write a calibration file with default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			f := config.Default()
			if err := applyOverrides(cmd, &f); err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, f); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing file")
	addTouchFlags(cmd)
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Parse and validate a calibration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return err
			}
			if _, err := config.Load(path); err != nil {
				return err
			}
			fmt.Println(path, "ok")
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			f, err := config.Load(path)
			if err != nil {
				return err
			}
			cal := f.Calibration()
			fmt.Printf("x: %g .. %g\n", cal.XLow, cal.XHigh)
			fmt.Printf("y: %g .. %g\n", cal.YLow, cal.YHigh)
			fmt.Printf("r threshold: %g ohm\n", f.Touch.RThreshold)
			return nil
		},
	}
}

func addTouchFlags(cmd *cobra.Command) {
	cmd.Flags().Float32("x-low", 0, "panel x reading at the left edge")
	cmd.Flags().Float32("x-high", 0, "panel x reading at the right edge")
	cmd.Flags().Float32("y-low", 0, "panel y reading at the bottom edge")
	cmd.Flags().Float32("y-high", 0, "panel y reading at the top edge")
	cmd.Flags().Float32("r-threshold", 0, "contact resistance gate in ohms")
}

func applyOverrides(cmd *cobra.Command, f *config.File) error {
	set := map[string]*float32{
		"x-low":       &f.Touch.XLow,
		"x-high":      &f.Touch.XHigh,
		"y-low":       &f.Touch.YLow,
		"y-high":      &f.Touch.YHigh,
		"r-threshold": &f.Touch.RThreshold,
	}
	for name, dst := range set {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetFloat32(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
