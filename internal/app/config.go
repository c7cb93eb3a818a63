package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl files or directories with editor settings and gate definitions

	// Exactly one scene source is used: a local HCL scene file or a remote
	// socket.io backend.
	SceneFile          string `validate:"required_without=BackendURL,excluded_with=BackendURL"`
	BackendURL         string `validate:"omitempty,url"`
	Namespace          string
	SceneID            string
	InsecureSkipVerify bool
	Timeout            time.Duration

	// Width and Height override the configured canvas size when non-zero.
	Width  int `validate:"gte=0"`
	Height int `validate:"gte=0"`

	// Pins fixes the held value of source gates by id.
	Pins map[string]bool

	LogFormat       string `validate:"oneof=text json"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	HealthcheckPort int    `validate:"gte=0,lte=65535"`
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(&cfg); err != nil {
		return nil, describeValidation(err)
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("timeout cannot be negative")
	}
	return &cfg, nil
}

// describeValidation turns validator errors into one readable error.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required_without":
			msgs = append(msgs, fmt.Errorf("%s is required unless %s is set", fe.Field(), fe.Param()))
		case "excluded_with":
			msgs = append(msgs, fmt.Errorf("%s cannot be combined with %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Errorf("invalid %s '%v': must be one of [%s]", fe.Field(), fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Errorf("invalid %s '%v': failed '%s' check", fe.Field(), fe.Value(), fe.Tag()))
		}
	}
	return errors.Join(msgs...)
}

// TaskKind selects what Run does with the scene.
type TaskKind string

const (
	// TaskCheck builds the graph and prints a signal report.
	TaskCheck TaskKind = "check"
	// TaskRender draws one frame to a PNG file.
	TaskRender TaskKind = "render"
	// TaskReplay feeds a scripted event sequence into the editor.
	TaskReplay TaskKind = "replay"
)

// Task is one unit of work for Run.
type Task struct {
	Kind       TaskKind `validate:"oneof=check render replay"`
	OutPath    string   `validate:"required_if=Kind render"`
	ScriptPath string   `validate:"required_if=Kind replay"`
	// Save writes the scene back to the scene file after a replay.
	Save bool
}
