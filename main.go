/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/application/entrypoint"
	"github.com/snyk/sonar-ls/application/server"
)

func main() {
	c := config.New()
	defer entrypoint.OnPanicRecover(c)

	if err := newRootCommand(c, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	logLevel     string
	logPath      string
	configFile   string
	reportErrors bool
}

func newRootCommand(c *config.Config, out io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "sonar-ls",
		Short:        "Language server for Sonar issues, coverage and issue workflow",
		Version:      config.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configure(c, cmd.Flags(), f)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			entrypoint.ApplyDefaultCPUCap(c.Logger())
			server.Start(c)
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.logLevel, "loglevel", "l", "info", "sets the log-level to <trace|debug|info|warn|error|fatal>")
	pf.StringVarP(&f.configFile, "config", "c", "", "provide the full path of a config file to use")
	pf.StringVar(&f.logPath, "logPath", "", "sets the log file; logs go to stderr otherwise")
	pf.BoolVar(&f.reportErrors, "reportErrors", false, "enables error reporting")

	root.AddCommand(newIssuesCommand(c, out))
	return root
}

// configure applies the config file and environment first, so explicit flags win.
func configure(c *config.Config, fs *pflag.FlagSet, f *flags) error {
	if err := c.Load(f.configFile); err != nil {
		return err
	}
	c.SetLogLevel(f.logLevel)
	if fs.Changed("logPath") {
		c.SetLogPath(f.logPath)
	}
	if fs.Changed("reportErrors") {
		c.SetErrorReportingEnabled(f.reportErrors)
	}
	c.ConfigureLogging()
	c.Logger().Info().Str("version", config.Version).Msg("sonar-ls")
	return nil
}
