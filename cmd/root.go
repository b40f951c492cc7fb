package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ev-energy/app"
	"github.com/kilianp07/ev-energy/config"
	coremon "github.com/kilianp07/ev-energy/core/monitoring"
	"github.com/kilianp07/ev-energy/infra/logger"
	"github.com/kilianp07/ev-energy/infra/monitoring"
)

const defaultConfigPath = "config.yaml"

// cli holds the state shared by the subcommands of one invocation.
type cli struct {
	cfgPath  string
	cfg      *config.Config
	closeLog func() error
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:               "ev-energy",
		Short:             "Electric vehicle energy consumption model",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", defaultConfigPath, "configuration file")
	root.AddCommand(
		newDriveCmd(c),
		newOptimizeCmd(c),
		newCurveCmd(c),
		newRouteCmd(c),
		newDemoCmd(c),
	)
	return root, c
}

// Execute runs the CLI. Failures are reported to the configured monitor
// before returning.
func Execute() error {
	root, c := newRootCmd()
	cmd, err := root.ExecuteC()
	if err != nil {
		name := root.Name()
		if cmd != nil {
			name = cmd.Name()
		}
		coremon.CaptureException(err, map[string]string{"command": name})
	}
	coremon.Flush(2 * time.Second)
	c.close()
	return err
}

// setup loads the configuration and configures logging and monitoring. A
// missing default config file is not an error: the built-in defaults apply.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	closeLog, err := logger.Configure(cfg.Logging)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	c.closeLog = closeLog
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)
	return nil
}

func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		if _, err := os.Stat(c.cfgPath); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(c.cfgPath)
}

func (c *cli) service(ov app.Override) (*app.Service, error) {
	return app.New(c.cfg, ov)
}

func (c *cli) close() {
	if c.closeLog == nil {
		return
	}
	if err := c.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
	c.closeLog = nil
}

// closeService releases the service, reporting failures on the command's
// error stream.
func closeService(cmd *cobra.Command, svc *app.Service) {
	if err := svc.Close(); err != nil {
		if _, ferr := fmt.Fprintf(cmd.ErrOrStderr(), "error while closing metrics: %v\n", err); ferr != nil {
			fmt.Println("failed to write to stderr:", ferr)
		}
	}
}
