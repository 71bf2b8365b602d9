package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Blaco/qc-scale-tool/cmd/qcscale/ui"
	"github.com/Blaco/qc-scale-tool/internal/config"
	"github.com/Blaco/qc-scale-tool/internal/exitcode"
	"github.com/Blaco/qc-scale-tool/internal/qcfile"
	"github.com/Blaco/qc-scale-tool/internal/scale"
	"github.com/Blaco/qc-scale-tool/internal/vrdfile"
)

// runScale is the whole pipeline: resolve inputs, settle the scale,
// rewrite the QC, then rescale the VRD. The QC is committed before the
// VRD phase starts, so a VRD failure leaves the QC changes in place.
func runScale(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	styles := ui.NewStyles(ui.ResolveTheme(cfg.UI.Theme))

	qcPath, err := resolveQCFile(dir, styles)
	if err != nil {
		return err
	}
	qcText, err := readInput(qcPath)
	if err != nil {
		return err
	}

	ctrl := scale.NewController(cfg, logger)
	previous := ctrl.PreviousScale(qcText)
	factors, err := resolveFactors(ctrl, previous, styles)
	if err != nil {
		return err
	}
	if factors.Advisory {
		fmt.Println(styles.Warning.Render(fmt.Sprintf(
			"scales below %v tend to surface rounding artifacts; proceeding anyway", cfg.Limits.RoundingAdvise)))
	}

	rewriter := qcfile.NewRewriter(cfg, logger)

	if flex := rewriter.DetectFlexFile(qcText); flex != "" {
		fmt.Println(styles.Warning.Render(fmt.Sprintf(
			"%s: $scale does not affect flex animation data; the model may need %s rebuilt", qcPath, flex)))
		if !flagYes {
			ok, err := ui.Confirm("Continue anyway?", styles)
			if err != nil {
				return err
			}
			if !ok {
				return exitcode.Newf(exitcode.Declined, "declined to continue past flex animation warning")
			}
		}
	}

	qcOut, qcReport, err := rewriter.Rewrite(qcText, factors)
	if err != nil {
		return err
	}
	if err := writeFile(qcPath, qcOut); err != nil {
		return err
	}
	fmt.Print(ui.RenderQCReport(qcReport, factors, styles))

	if err := maybeRewriteModelName(rewriter, qcPath, factors, cfg, styles); err != nil {
		return err
	}

	return rescaleVRD(cfg, qcPath, factors, styles)
}

// maybeRewriteModelName runs the optional, user-confirmed $modelname
// suffix step. A missing directive is reported and skipped, never fatal.
func maybeRewriteModelName(rewriter *qcfile.Rewriter, qcPath string, f scale.Factors, cfg config.Config, styles ui.Styles) error {
	if !flagSuffix || !cfg.QC.SuffixEnabled {
		return nil
	}
	if !flagYes {
		ok, err := ui.Confirm(fmt.Sprintf("Rename the compiled model with a _x%s suffix?", f.DisplayNewScale()), styles)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	text, err := readInput(qcPath)
	if err != nil {
		return err
	}
	out, change, err := rewriter.RewriteModelName(text, f.New)
	if err != nil {
		return err
	}
	if change == nil {
		fmt.Println(styles.Muted.Render("no $modelname directive found; suffix step skipped"))
		return nil
	}
	if err := writeFile(qcPath, out); err != nil {
		return err
	}
	fmt.Println(styles.Success.Render(fmt.Sprintf("$modelname %s -> %s", change.Before, change.After)))
	return nil
}

// rescaleVRD runs the secondary-file phase. Failures here are isolated:
// the QC rewrite is already on disk and stays.
func rescaleVRD(cfg config.Config, qcPath string, f scale.Factors, styles ui.Styles) error {
	vrdPath := resolveVRDFile(qcPath)
	if vrdPath == "" {
		fmt.Println(styles.Muted.Render("no companion VRD file found; helper offsets not touched"))
		return nil
	}

	text, err := readInput(vrdPath)
	if err != nil {
		return err
	}

	rescaler := vrdfile.NewRescaler(cfg, logger)
	out, report, err := rescaler.Rescale(text, f.Previous, f.New)
	if err != nil {
		if errors.Is(err, vrdfile.ErrMarkerDesync) {
			return exitcode.New(exitcode.MarkerDesync, fmt.Errorf(
				"%s was edited after its marker block was written; delete the %s comment block and re-run to capture a fresh baseline: %w",
				vrdPath, cfg.VRD.SentinelTag, err))
		}
		return err
	}
	if err := writeFile(vrdPath, out); err != nil {
		return err
	}
	fmt.Print(ui.RenderVRDReport(report, styles))
	return nil
}

// resolveQCFile finds the script to rewrite: the --qc flag, the only .qc
// file in dir, or an interactive pick among several.
func resolveQCFile(dir string, styles ui.Styles) (string, error) {
	if flagQC != "" {
		if _, err := os.Stat(flagQC); err != nil {
			return "", exitcode.Newf(exitcode.NoQCFiles, "QC file %s: %v", flagQC, err)
		}
		return flagQC, nil
	}

	candidates, err := filesWithExt(dir, ".qc")
	if err != nil {
		return "", err
	}
	switch {
	case len(candidates) == 0:
		return "", exitcode.Newf(exitcode.NoQCFiles, "no .qc files in %s", dir)
	case len(candidates) == 1:
		return filepath.Join(dir, candidates[0]), nil
	case flagYes:
		return "", exitcode.Newf(exitcode.Failure, "multiple .qc files in %s; use --qc to pick one", dir)
	}

	choice, ok, err := ui.PickFile(candidates, styles)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", exitcode.Newf(exitcode.Declined, "no QC file selected")
	}
	return filepath.Join(dir, choice), nil
}

// resolveVRDFile finds the companion helper-offset file: the --vrd flag,
// the QC's sibling of the same base name, or any lone .vrd next to it.
// "" means there is nothing to rescale.
func resolveVRDFile(qcPath string) string {
	if flagVRD != "" {
		return flagVRD
	}

	sibling := strings.TrimSuffix(qcPath, filepath.Ext(qcPath)) + ".vrd"
	if _, err := os.Stat(sibling); err == nil {
		return sibling
	}

	dir := filepath.Dir(qcPath)
	candidates, err := filesWithExt(dir, ".vrd")
	if err != nil || len(candidates) != 1 {
		return ""
	}
	return filepath.Join(dir, candidates[0])
}

func filesWithExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, exitcode.Newf(exitcode.Unreadable, "cannot list %s: %v", dir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// resolveFactors settles the new scale, either from --scale or by
// prompting until the controller accepts.
func resolveFactors(ctrl *scale.Controller, previous float64, styles ui.Styles) (scale.Factors, error) {
	if flagScale != "" {
		f, err := ctrl.Parse(flagScale, previous)
		if err != nil {
			return scale.Factors{}, exitcode.New(exitcode.Failure, err)
		}
		return f, nil
	}

	question := fmt.Sprintf("Current scale is %v. New scale?", previous)
	value, ok, err := ui.Ask(question, func(in string) error {
		_, err := ctrl.Parse(in, previous)
		return err
	}, styles)
	if err != nil {
		return scale.Factors{}, err
	}
	if !ok {
		return scale.Factors{}, exitcode.Newf(exitcode.Declined, "scale entry canceled")
	}
	return ctrl.Parse(value, previous)
}

// readInput loads a whole input file, mapping the failure modes onto the
// exit-code taxonomy before anything is mutated.
func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", exitcode.Newf(exitcode.Unreadable, "cannot open %s: %v", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", exitcode.Newf(exitcode.EmptyFile, "%s is empty", path)
	}
	return string(data), nil
}

// writeFile overwrites an input in place, keeping its permission bits.
func writeFile(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}
