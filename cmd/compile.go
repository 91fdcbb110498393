package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"project-forge/internal/builder"
	"project-forge/internal/config"
	"project-forge/internal/detect"
	"project-forge/internal/logger"
	"project-forge/internal/runner"
	"project-forge/internal/state"
	"project-forge/internal/toolchain"
)

// compileConfigPath overrides the tuning file location; by default
// forge.yaml in the project directory is used when present.
var compileConfigPath string

// assumeYes answers yes to every confirmation prompt (toolchain installs and
// the run-after-build offer), for non-interactive use.
var assumeYes bool

// noRun skips the run offer after a successful build.
var noRun bool

// compileCmd is the smart compiler: it classifies the project directory,
// ensures the toolchain, builds, and offers to run the result. The process
// exits non-zero when any stage fails.
var compileCmd = &cobra.Command{
	Use:   "compile [dir]",
	Short: "Detect a project's language, build it, and offer to run the result",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if code := runCompile(dir); code != 0 {
			os.Exit(code)
		}
	},
}

// runCompile drives the detect → toolchain → build → run pipeline for one
// project directory and returns the process exit status. Each stage prints a
// status line before the next begins, so a failure's context is always
// visible without debug flags.
func runCompile(dir string) int {
	cfgPath := compileConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, config.DefaultFileName)
	}
	cfg := config.Load(cfgPath)

	// Stage 1: classification. A detection failure aborts before any build.
	logger.Step("==> Detecting project type in %s\n", dir)
	projectType, err := detect.Detect(afero.NewOsFs(), dir, cfg.Detect.ExtraExclusions...)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return 1
	}
	logger.Info("[INFO] Detected %s project\n", detect.DescriptorFor(projectType).Name)

	// Stage 2: toolchain. Interpreted/web/container types pass through.
	logger.Step("==> Checking toolchain\n")
	statePath := state.DefaultPath()
	st := state.Load(statePath)
	guard := toolchain.NewGuard(cfg.PackageManager, assumeYes, st)
	err = guard.Ensure(projectType)
	state.Save(statePath, st)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return 1
	}

	// Stage 3: build. Failures come back as a structured result, never a panic.
	logger.Step("==> Building\n")
	result := builder.New(cfg).Build(projectType, dir)
	if !result.Success {
		logger.Error("[ERROR] Build failed: %s\n", result.Err)
		return 1
	}
	logger.Info("[INFO] Build succeeded\n")

	// Stage 4: run, gated on explicit confirmation. Never happens silently.
	if noRun {
		return 0
	}
	if !assumeYes && !promptYesNo(describeRun(result)) {
		return 0
	}
	logger.Step("==> Running\n")
	return runner.New().Run(result)
}

// describeRun phrases the run offer for the result's runtime kind.
func describeRun(res builder.Result) string {
	switch res.Kind {
	case builder.KindInterpreter:
		return fmt.Sprintf("Run it now (%s %s)?", res.Interpreter, res.Artifact)
	case builder.KindDevServer:
		return fmt.Sprintf("Start the dev server (%s)?", res.Artifact)
	case builder.KindBrowser:
		return fmt.Sprintf("Open %s in your browser?", res.Artifact)
	case builder.KindContainer:
		return "Build and run the container now?"
	default:
		return fmt.Sprintf("Run %s now?", res.Artifact)
	}
}

// promptYesNo asks a yes/no question on the terminal and blocks for the
// answer. Anything other than y/yes is a refusal.
func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// init sets up CLI flags and registers the command.
func init() {
	compileCmd.Flags().StringVarP(&compileConfigPath, "config", "c", "", "Path to forge.yaml tuning file")
	compileCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes on all prompts")
	compileCmd.Flags().BoolVar(&noRun, "no-run", false, "Do not offer to run after a successful build")
	rootCmd.AddCommand(compileCmd)
}
