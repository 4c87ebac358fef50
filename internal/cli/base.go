package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/soham247/stellar-portfolio/internal/version"
	"github.com/spf13/pflag"
)

// Commands understood by Execute.
const (
	CommandStart       = "start"
	CommandVersion     = "version"
	CommandCheckConfig = "check-config"
	CommandList        = "list-submissions"
)

// Configurable represents a type that can be configured via flags and config files
type Configurable interface {
	AddFlags(fs *pflag.FlagSet)
	LoadConfigWithFlagSet(fs *pflag.FlagSet) error
}

// CommandHandler represents a command that can be executed
type CommandHandler interface {
	Start(config Configurable) error
}

// Lister is implemented by handlers that can print the contact form
// submissions recorded under config.
type Lister interface {
	ListSubmissions(config Configurable, w io.Writer) error
}

// BaseCLI provides common CLI functionality
type BaseCLI struct {
	stdout io.Writer
	stderr io.Writer
}

// NewBaseCLI creates a new BaseCLI instance
func NewBaseCLI(stdout, stderr io.Writer) *BaseCLI {
	return &BaseCLI{
		stdout: stdout,
		stderr: stderr,
	}
}

// CommandArgs represents parsed command line arguments
type CommandArgs struct {
	Command string
	Config  Configurable
}

// ParseArgsStandard provides standard argument parsing for version/check/start commands
func (c *BaseCLI) ParseArgsStandard(args []string, configFactory func() Configurable) (*CommandArgs, error) {
	return c.ParseArgsStandardWithFlagSet(args, configFactory, pflag.CommandLine)
}

// ParseArgsStandardWithFlagSet provides standard argument parsing with a custom flag set
func (c *BaseCLI) ParseArgsStandardWithFlagSet(args []string, configFactory func() Configurable, fs *pflag.FlagSet) (*CommandArgs, error) {
	versionFlag := fs.Bool("version", false, "Show version and exit")
	checkFlag := fs.Bool("check-config", false, "Load and validate the configuration, then exit")
	listFlag := fs.Bool("list-submissions", false, "Print the recorded contact form submissions, then exit")

	cfg := configFactory()
	cfg.AddFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFlags, err)
	}

	if *versionFlag {
		return &CommandArgs{Command: CommandVersion, Config: cfg}, nil
	}

	// Load configuration using the same flag set
	if err := cfg.LoadConfigWithFlagSet(fs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if *checkFlag {
		return &CommandArgs{Command: CommandCheckConfig, Config: cfg}, nil
	}
	if *listFlag {
		return &CommandArgs{Command: CommandList, Config: cfg}, nil
	}
	return &CommandArgs{Command: CommandStart, Config: cfg}, nil
}

// Execute runs the specified command using standard patterns
func (c *BaseCLI) Execute(cmdArgs *CommandArgs, handler CommandHandler) error {
	switch cmdArgs.Command {
	case CommandVersion:
		fmt.Fprintln(c.stdout, version.String())
		return nil
	case CommandCheckConfig:
		fmt.Fprintln(c.stdout, "configuration is valid")
		return nil
	case CommandList:
		lister, ok := handler.(Lister)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmdArgs.Command)
		}
		return lister.ListSubmissions(cmdArgs.Config, c.stdout)
	case CommandStart:
		return handler.Start(cmdArgs.Config)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmdArgs.Command)
	}
}

// StandardMain provides a complete main function implementation for simple services
func StandardMain(configFactory func() Configurable, handler CommandHandler) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)

	cmdArgs, err := cli.ParseArgsStandard(os.Args[1:], configFactory)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := cli.Execute(cmdArgs, handler); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
