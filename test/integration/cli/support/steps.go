package support

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
	"github.com/disintegration/imaging"

	"github.com/framestamp/framestamp/cmd/framestamp/cmd"
)

// RegisterSteps wires all step definitions for the CLI suite.
func (testCtx *TestContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a directory with frames "([^"]*)"$`, testCtx.aDirectoryWithFrames)
	sc.Step(`^a corrupt frame "([^"]*)"$`, testCtx.aCorruptFrame)
	sc.Step(`^I run framestamp "([^"]*)"$`, testCtx.iRunFramestamp)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the export directory should contain (\d+) files$`, testCtx.theExportDirShouldContainFiles)
	sc.Step(`^the export directory should contain "([^"]*)"$`, testCtx.theExportDirShouldContain)
	sc.Step(`^the export directory should not contain "([^"]*)"$`, testCtx.theExportDirShouldNotContain)
}

// aDirectoryWithFrames creates solid-color PNG frames with the given
// comma-separated names.
func (testCtx *TestContext) aDirectoryWithFrames(names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		img := image.NewRGBA(image.Rect(0, 0, 320, 240))
		draw.Draw(img, img.Bounds(),
			&image.Uniform{color.RGBA{R: 40, G: 80, B: 120, A: 255}}, image.Point{}, draw.Src)
		if err := imaging.Save(img, filepath.Join(testCtx.FramesDir, name)); err != nil {
			return fmt.Errorf("failed to write frame %s: %w", name, err)
		}
	}
	return nil
}

// aCorruptFrame writes a file with an image extension but garbage content.
func (testCtx *TestContext) aCorruptFrame(name string) error {
	return os.WriteFile(filepath.Join(testCtx.FramesDir, name), []byte("not an image"), 0o600)
}

// iRunFramestamp executes the CLI in-process. The tokens ${FRAMES} and
// ${OUT} expand to the scenario's frame and export directories.
func (testCtx *TestContext) iRunFramestamp(command string) error {
	command = strings.ReplaceAll(command, "${FRAMES}", testCtx.FramesDir)
	command = strings.ReplaceAll(command, "${OUT}", testCtx.ExportDir)

	buf := new(bytes.Buffer)
	root := cmd.GetRootCommand()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(strings.Fields(command))

	testCtx.LastError = root.Execute()
	testCtx.LastOutput = buf.String()
	return nil
}

func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastError != nil {
		return fmt.Errorf("expected success, got error: %w\noutput: %s", testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastError == nil {
		return fmt.Errorf("expected failure, command succeeded\noutput: %s", testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldContain(expectedText string) error {
	if !strings.Contains(testCtx.LastOutput, expectedText) {
		return fmt.Errorf("output does not contain %q:\n%s", expectedText, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theExportDirShouldContainFiles(count int) error {
	entries, err := os.ReadDir(testCtx.ExportDir)
	if err != nil {
		return fmt.Errorf("failed to read export directory: %w", err)
	}
	if len(entries) != count {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		return fmt.Errorf("expected %d files, found %d: %s", count, len(entries), strings.Join(names, ", "))
	}
	return nil
}

func (testCtx *TestContext) theExportDirShouldContain(name string) error {
	if _, err := os.Stat(filepath.Join(testCtx.ExportDir, name)); err != nil {
		return fmt.Errorf("expected export file %s: %w", name, err)
	}
	return nil
}

func (testCtx *TestContext) theExportDirShouldNotContain(name string) error {
	if _, err := os.Stat(filepath.Join(testCtx.ExportDir, name)); err == nil {
		return fmt.Errorf("unexpected export file %s", name)
	}
	return nil
}
