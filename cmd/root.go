/*
 * Copyright (c) 2021 ugradid community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ugradid/ugradid-period/core"
	"github.com/ugradid/ugradid-period/db"
	dbCmd "github.com/ugradid/ugradid-period/db/cmd"
	"github.com/ugradid/ugradid-period/reporting"
	reportingAPI "github.com/ugradid/ugradid-period/reporting/api/v1"
	reportingCmd "github.com/ugradid/ugradid-period/reporting/cmd"
)

var stdOutWriter io.Writer = os.Stdout

// shutdownTimeout bounds the time in-flight HTTP requests get after a stop signal
const shutdownTimeout = 10 * time.Second

const validityFlag = "validity"

// signals is replaced in tests to stop the server
var signals = func() (<-chan os.Signal, func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	return c, func() { signal.Stop(c) }
}

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "period",
		Short: "Calendar period algebra, chunking and named reporting periods",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := system.Load(cmd); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
	addFlagSets(cmd)
	return cmd
}

func createTokenCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [subject]",
		Short: "Creates a bearer token for the HTTP API, signed with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := system.Load(cmd); err != nil {
				return err
			}
			authenticator, err := core.NewTokenAuthenticator(system.Config.HTTP.Auth.Secret)
			if err != nil {
				return err
			}
			validity, _ := cmd.Flags().GetDuration(validityFlag)
			token, err := authenticator.CreateToken(args[0], validity)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}
	cmd.Flags().Duration(validityFlag, 24*time.Hour, "How long the token is valid, 0 for no expiry.")
	cmd.PersistentFlags().AddFlagSet(core.FlagSet())
	return cmd
}

func createServerCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the period server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load all config and add generic options
			if err := system.Load(cmd); err != nil {
				return err
			}
			return startServer(system)
		},
	}
	addFlagSets(cmd)
	return cmd
}

func startServer(system *core.System) error {
	logrus.Info("Starting server")

	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}

	defer func() {
		if err := system.Shutdown(); err != nil {
			logrus.Error("Error shutting down system:", err)
		}
	}()

	// start engines
	if err := system.Start(); err != nil {
		return err
	}

	// init HTTP interfaces and routes
	echoServer, err := system.EchoCreator(
		system.Config.HTTP,
		core.HTTPAuthenticatorProvider(system.Config.HTTP.Auth.Secret),
		system.Config.Strictmode)
	if err != nil {
		return err
	}

	for _, r := range system.Routers {
		r.Routes(echoServer)
	}

	stop, release := signals()
	defer release()
	errs := make(chan error, 1)
	go func() {
		errs <- echoServer.Start(system.Config.HTTP.Address)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logrus.Infof("Received %s, stopping server", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return echoServer.Shutdown(ctx)
	}
}

// CreateSystem creates the system and registers all default engines.
func CreateSystem() *core.System {
	system := core.NewSystem()

	// Create instances
	databaseInstance := db.NewDatabaseInstance()
	reportingInstance := reporting.NewReportingInstance(databaseInstance)

	// Register HTTP routes
	system.RegisterRoutes(&reportingAPI.Wrapper{Service: reportingInstance, Registry: reportingInstance})

	// Register engines, the database first so it's opened before and closed after its users
	system.RegisterEngine(databaseInstance)
	system.RegisterEngine(reportingInstance)

	return system
}

// CreateCommand creates the root command with all sub commands, writing to stdout.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	addSubCommands(system, command)
	return command
}

func addSubCommands(system *core.System, root *cobra.Command) {
	// Register server commands
	root.AddCommand(createServerCommand(system))
	root.AddCommand(createPrintConfigCommand(system))
	root.AddCommand(createTokenCommand(system))

	// Register period commands
	commands := reportingCmd.Cmds(system)
	for _, leaf := range reportingCmd.Leaves(commands) {
		addFlagSets(leaf)
	}
	root.AddCommand(commands...)
}

// Execute registers all engines into the system and executes the root command.
func Execute(system *core.System) error {
	command := CreateCommand(system)
	command.SilenceUsage = true

	// blocking main call
	return command.Execute()
}

func addFlagSets(cmd *cobra.Command) {
	cmd.PersistentFlags().AddFlagSet(core.FlagSet())
	cmd.PersistentFlags().AddFlagSet(dbCmd.FlagSet())
	cmd.PersistentFlags().AddFlagSet(reportingCmd.FlagSet())
}
