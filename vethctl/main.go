package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/vethctl/shared/logger"
	"github.com/canonical/vethctl/shared/subprocess"
	"github.com/canonical/vethctl/shared/version"
	"github.com/canonical/vethctl/veth"
)

// errSilent is returned by commands which report their result through the exit status only.
var errSilent = errors.New("silent failure")

type cmdGlobal struct {
	conf    *config
	manager veth.Interface

	flagConfig  string
	flagBackend string
	flagIPPath  string
	flagTimeout time.Duration
	flagLogFile string
	flagDebug   bool
	flagVerbose bool
}

func main() {
	app, _ := newApp()

	err := app.Execute()
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func newApp() (*cobra.Command, *cmdGlobal) {
	app := &cobra.Command{}
	app.Use = "vethctl"
	app.Short = "Manage virtual ethernet pairs"
	app.Long = `Manage virtual ethernet pairs

vethctl creates, removes and inspects veth interfaces using the ip command
from iproute2, or rtnetlink directly with --backend=netlink.`
	app.SilenceUsage = true
	app.SilenceErrors = true
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	// Global flags
	globalCmd := cmdGlobal{}
	app.PersistentPreRunE = globalCmd.PreRun
	app.PersistentFlags().StringVar(&globalCmd.flagConfig, "config", "", "Path to the configuration file"+"``")
	app.PersistentFlags().StringVar(&globalCmd.flagBackend, "backend", "", "Backend to manage links with (iproute2 or netlink)"+"``")
	app.PersistentFlags().StringVar(&globalCmd.flagIPPath, "ip-path", "", "Path to the ip command"+"``")
	app.PersistentFlags().DurationVar(&globalCmd.flagTimeout, "timeout", veth.IPCmdTimeout, "Timeout for ip commands"+"``")
	app.PersistentFlags().StringVar(&globalCmd.flagLogFile, "logfile", "", "Path to the log file"+"``")
	app.PersistentFlags().BoolVarP(&globalCmd.flagDebug, "debug", "d", false, "Show all debug messages")
	app.PersistentFlags().BoolVarP(&globalCmd.flagVerbose, "verbose", "v", false, "Show all information messages")

	// Version handling
	app.SetVersionTemplate("{{.Version}}\n")
	app.Version = version.Version

	// create sub-command
	createCmd := cmdCreate{global: &globalCmd}
	app.AddCommand(createCmd.Command())

	// remove sub-command
	removeCmd := cmdRemove{global: &globalCmd}
	app.AddCommand(removeCmd.Command())

	// exists sub-command
	existsCmd := cmdExists{global: &globalCmd}
	app.AddCommand(existsCmd.Command())

	// list sub-command
	listCmd := cmdList{global: &globalCmd}
	app.AddCommand(listCmd.Command())

	// set-address sub-command
	setAddressCmd := cmdSetAddress{global: &globalCmd}
	app.AddCommand(setAddressCmd.Command())

	return app, &globalCmd
}

// PreRun loads the configuration, sets up logging and picks the backend.
func (c *cmdGlobal) PreRun(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(c.flagConfig)
	if err != nil {
		return err
	}

	// Flags take precedence over the configuration file.
	flags := cmd.Flags()
	if flags.Changed("backend") {
		conf.Backend = c.flagBackend
	}

	if flags.Changed("ip-path") {
		conf.IPPath = c.flagIPPath
	}

	if flags.Changed("timeout") {
		conf.Timeout = c.flagTimeout.String()
	}

	if flags.Changed("logfile") {
		conf.LogFile = c.flagLogFile
	}

	err = conf.Validate()
	if err != nil {
		return err
	}

	c.conf = conf

	err = logger.InitLogger(conf.LogFile, c.flagVerbose, c.flagDebug)
	if err != nil {
		return fmt.Errorf("Failed to setup logging: %w", err)
	}

	// Tests provide their own manager.
	if c.manager != nil {
		return nil
	}

	c.manager, err = c.newManager()
	if err != nil {
		return err
	}

	logger.Debug("Using backend", logger.Ctx{"backend": conf.Backend})

	return nil
}

func (c *cmdGlobal) newManager() (veth.Interface, error) {
	switch c.conf.Backend {
	case backendNetlink:
		return veth.NewNetlinkManager()
	default:
		m := veth.NewManager(subprocess.NewExecRunner())
		m.IPPath = c.conf.IPPath
		m.Timeout = c.conf.timeout()

		return m, nil
	}
}

// checkPrivileges warns when link changes are bound to be refused by the kernel.
func (c *cmdGlobal) checkPrivileges() {
	if !hasNetAdmin() {
		logger.Warn("Missing CAP_NET_ADMIN, changing links will likely fail")
	}
}

// CheckArgs checks the number of arguments and prints the help on mismatch.
// It returns true when the caller should return immediately with the returned error.
func (c *cmdGlobal) CheckArgs(cmd *cobra.Command, args []string, minArgs int, maxArgs int) (bool, error) {
	if len(args) < minArgs || (maxArgs != -1 && len(args) > maxArgs) {
		_ = cmd.Help()

		if len(args) == 0 {
			return true, nil
		}

		return true, fmt.Errorf("Invalid number of arguments")
	}

	return false, nil
}
