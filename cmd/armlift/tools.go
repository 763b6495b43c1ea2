package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/solution"
	"github.com/katalvlaran/armlift/tour"
)

func newScoreCmd(a *app) *cobra.Command {
	var (
		image  string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "score SOLUTION",
		Short: "Score a solution file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := solution.Load(args[0])
			if err != nil {
				return err
			}
			img, err := a.image(image)
			if err != nil {
				return err
			}
			score, err := solution.Score(path, img, strict)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", score)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "CSV image x,y,r,g,b (blank image when empty)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject forbidden steps, bad endpoints and missing pixels")
	return cmd
}

func newPatchCmd(a *app) *cobra.Command {
	var (
		image string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "patch PIECE...",
		Short: "Chain partial solutions into one closed path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pieces := make([][]arm.Config, len(args))
			for i, name := range args {
				p, err := solution.Load(name)
				if err != nil {
					return err
				}
				pieces[i] = p
			}
			path, err := solution.Patch(pieces...)
			if err != nil {
				return err
			}
			img, err := a.image(image)
			if err != nil {
				return err
			}
			return a.write(cmd, out, path, img)
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "CSV image x,y,r,g,b (blank image when empty)")
	cmd.Flags().StringVarP(&out, "out", "o", "submission.csv", "output solution file")
	return cmd
}

func newReverseCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse IN OUT",
		Short: "Write a solution in reverse order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := solution.Load(args[0])
			if err != nil {
				return err
			}
			return solution.Save(args[1], solution.Reverse(path))
		},
	}
}

func newSplitCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "split TOUR",
		Short: "Cut an LKH tour at the four lattice corners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tour.ReadLKHFile(args[0])
			if err != nil {
				return err
			}
			parts, err := tour.Split(t)
			if err != nil {
				return err
			}
			if outDir != "" {
				if err = os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}
			for k, p := range parts {
				fmt.Fprintf(cmd.OutOrStdout(), "part %d: %d points (%s) -> (%s)\n", k, len(p), p[0], p[len(p)-1])
				if outDir == "" {
					continue
				}
				if err = writePart(filepath.Join(outDir, fmt.Sprintf("part-%d.tour", k)), fmt.Sprintf("part-%d", k), p); err != nil {
					return err
				}
			}
			a.log.Debug("tour split", "tour", args[0], "out_dir", outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write every part as an LKH tour into this directory")
	return cmd
}

func writePart(name, label string, p tour.Tour) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = tour.WriteLKH(f, label, p); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}
