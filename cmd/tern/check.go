package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tern/internal/diag"
	"tern/internal/diagfmt"
	"tern/internal/driver"
	"tern/internal/ir"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Canonicalize a tern project and report problems",
	Long:  `Load serialized syntax trees from a project (tern.toml) or a directory, resolve and canonicalize every module, and print whatever problems the pass collected`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("manifest", "", "explicit path to tern.toml")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse export surfaces of unchanged clean modules (experimental)")
	checkCmd.Flags().Bool("with-notes", false, "include problem notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("emit-ir", false, "dump the canonical form of every checked module")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	manifest, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	emitIR, err := cmd.Flags().GetBool("emit-ir")
	if err != nil {
		return fmt.Errorf("failed to get emit-ir flag: %w", err)
	}

	maxProblems, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts := driver.Options{
		Root:        root,
		Manifest:    manifest,
		Jobs:        jobs,
		MaxProblems: maxProblems,
	}
	if useDiskCache {
		cache, cacheErr := driver.OpenDiskCache("tern")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	res, err := driver.Check(cmd.Context(), opts)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	if format == "json" {
		merged := diag.NewBag(maxProblems * len(res.Modules))
		for i := range res.Modules {
			merged.Merge(res.Modules[i].Problems)
		}
		jsonErr := diagfmt.JSON(cmd.OutOrStdout(), merged, nil, diagfmt.JSONOpts{
			PathMode:     pathMode,
			IncludeNotes: withNotes,
		})
		if jsonErr != nil {
			return jsonErr
		}
	} else {
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		renderCheckPretty(res, useColor, quiet, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	}

	if emitIR {
		for i := range res.Modules {
			if res.Modules[i].Module == nil {
				continue
			}
			fmt.Println()
			ir.Dump(os.Stdout, res.Modules[i].Module)
		}
	}

	if res.HasErrors() {
		// Problems are already printed; keep cobra from re-reporting.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func renderCheckPretty(res *driver.Result, useColor, quiet bool, opts diagfmt.PrettyOpts) {
	headerPaint := color.New(color.Bold)
	okPaint := color.New(color.FgGreen, color.Bold)
	badPaint := color.New(color.FgRed, color.Bold)
	for _, p := range []*color.Color{headerPaint, okPaint, badPaint} {
		if useColor {
			p.EnableColor()
		} else {
			p.DisableColor()
		}
	}

	total := 0
	failing := 0
	for i := range res.Modules {
		mod := &res.Modules[i]
		total += mod.Problems.Len()
		if mod.Problems.HasErrors() {
			failing++
		}
		if mod.Problems.Len() == 0 {
			if !quiet {
				suffix := ""
				if mod.Cached {
					suffix = " (cached)"
				}
				fmt.Printf("%s ok%s\n", headerPaint.Sprint(mod.Name), suffix)
			}
			continue
		}
		fmt.Printf("%s:\n", headerPaint.Sprint(mod.Name))
		diagfmt.Pretty(os.Stdout, mod.Problems, nil, opts)
	}

	if quiet {
		return
	}
	if total == 0 {
		fmt.Printf("%s: %d modules clean\n", okPaint.Sprint("ok"), len(res.Modules))
		return
	}
	if failing == 0 {
		fmt.Printf("%s: %d warnings across %d modules\n", okPaint.Sprint("ok"), total, len(res.Modules))
		return
	}
	fmt.Printf("%s: %d problems, %d of %d modules failing\n",
		badPaint.Sprint("check failed"), total, failing, len(res.Modules))
}
