package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/gategrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// flags collects every flag value of one Parse call.
type flags struct {
	configPaths        []string
	sceneFile          string
	backendURL         string
	namespace          string
	sceneID            string
	insecureSkipVerify bool
	timeout            time.Duration
	width              int
	height             int
	pins               map[string]string
	logFormat          string
	logLevel           string
	healthcheckPort    int

	outPath    string
	scriptPath string
	save       bool
}

// result is filled by the subcommand that ran.
type result struct {
	config *app.Config
	task   *app.Task
}

// Parse processes command-line arguments. It returns the application config
// and the task to run, a boolean indicating if the program should exit
// cleanly (help or version output), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, *app.Task, bool, error) {
	slog.Debug("CLI parser started.")

	f := &flags{}
	res := &result{}
	root := newRootCommand(f, res)
	// cobra falls back to os.Args on a nil slice.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			return nil, nil, false, exitErr
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if res.task == nil {
		slog.Debug("No task selected, exiting.")
		return nil, nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "task", res.task.Kind)
	return res.config, res.task, false, nil
}

func newRootCommand(f *flags, res *result) *cobra.Command {
	root := &cobra.Command{
		Use:   "gategrid",
		Short: "gategrid - a headless digital logic circuit editor",
		Long: `gategrid builds logic circuits from gate and wire records, evaluates
their signals, and drives the interactive editor from scripted input.

A scene comes either from an HCL scene file or from a socket.io backend
(--backend-url).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&f.configPaths, "config", "c", nil, "HCL config files or directories with editor settings and custom gates.")
	pf.StringVar(&f.backendURL, "backend-url", "", "socket.io URL of a remote scene backend.")
	pf.StringVar(&f.namespace, "namespace", "", "socket.io namespace of the scene backend.")
	pf.StringVar(&f.sceneID, "scene", "", "Scene id. Defaults to the id in the scene file.")
	pf.BoolVar(&f.insecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification for the backend.")
	pf.DurationVar(&f.timeout, "timeout", 10*time.Second, "Timeout of each backend request.")
	pf.IntVar(&f.width, "width", 0, "Canvas width in pixels. 0 keeps the configured value.")
	pf.IntVar(&f.height, "height", 0, "Canvas height in pixels. 0 keeps the configured value.")
	pf.StringToStringVar(&f.pins, "set", nil, "Pin source gates, e.g. --set A=true,B=false.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.IntVar(&f.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")

	root.AddCommand(
		checkCmd(f, res),
		renderCmd(f, res),
		replayCmd(f, res),
	)
	return root
}

func checkCmd(f *flags, res *result) *cobra.Command {
	return &cobra.Command{
		Use:   "check [SCENE_FILE]",
		Short: "Build the graph and print its evaluated signals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(f, res, args, app.Task{Kind: app.TaskCheck})
		},
	}
}

func renderCmd(f *flags, res *result) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [SCENE_FILE] --out FILE.png",
		Short: "Render one editor frame to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(f, res, args, app.Task{Kind: app.TaskRender, OutPath: f.outPath})
		},
	}
	cmd.Flags().StringVarP(&f.outPath, "out", "o", "", "Output PNG path.")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func replayCmd(f *flags, res *result) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [SCENE_FILE] --script FILE.hcl",
		Short: "Feed a scripted event sequence into the editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(f, res, args, app.Task{
				Kind:       app.TaskReplay,
				ScriptPath: f.scriptPath,
				OutPath:    f.outPath,
				Save:       f.save,
			})
		},
	}
	cmd.Flags().StringVarP(&f.scriptPath, "script", "s", "", "Replay script path.")
	cmd.Flags().StringVarP(&f.outPath, "out", "o", "", "Optional PNG path for the final frame.")
	cmd.Flags().BoolVar(&f.save, "save", false, "Write the edited scene back to the scene file.")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

// finish validates the collected flags into res.
func finish(f *flags, res *result, args []string, task app.Task) error {
	if len(args) > 0 {
		f.sceneFile = args[0]
	}

	pins := make(map[string]bool, len(f.pins))
	for id, raw := range f.pins {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return usageError("invalid --set value for '%s': %q is not a boolean", id, raw)
		}
		pins[id] = v
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths:        f.configPaths,
		SceneFile:          f.sceneFile,
		BackendURL:         f.backendURL,
		Namespace:          f.namespace,
		SceneID:            f.sceneID,
		InsecureSkipVerify: f.insecureSkipVerify,
		Timeout:            f.timeout,
		Width:              f.width,
		Height:             f.height,
		Pins:               pins,
		LogFormat:          strings.ToLower(f.logFormat),
		LogLevel:           strings.ToLower(f.logLevel),
		HealthcheckPort:    f.healthcheckPort,
	})
	if err != nil {
		return usageError("%v", err)
	}

	res.config = cfg
	res.task = &task
	return nil
}
