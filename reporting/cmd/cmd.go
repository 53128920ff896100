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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ugradid/ugradid-period/calendar"
	"github.com/ugradid/ugradid-period/core"
	"github.com/ugradid/ugradid-period/period"
	"github.com/ugradid/ugradid-period/reporting"
	"github.com/ugradid/ugradid-period/reporting/log"
)

const (
	// ConfTolerance is used as --reporting.tolerance config flag
	ConfTolerance = "reporting.tolerance"
	// ConfPartialFirst is used as --reporting.chunks.partialfirst config flag
	ConfPartialFirst = "reporting.chunks.partialfirst"
	// ConfPartialLast is used as --reporting.chunks.partiallast config flag
	ConfPartialLast = "reporting.chunks.partiallast"
	// ConfRoundUpLast is used as --reporting.chunks.roundup config flag
	ConfRoundUpLast = "reporting.chunks.roundup"
	// ConfStrict is used as --reporting.chunks.strict config flag
	ConfStrict = "reporting.chunks.strict"
	// ConfHolidays is used as --reporting.holidays config flag
	ConfHolidays = "reporting.holidays"
)

const formatFlag = "format"

const sizeFlag = "size"

const overwriteFlag = "overwrite"

// FlagSet contains flags relevant for the reporting engine
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("reporting", pflag.ContinueOnError)

	defs := reporting.DefaultConfig()
	flagSet.Int(ConfTolerance, defs.Tolerance,
		fmt.Sprintf("Percentage by which month and longer chunk names stretch their day bounds, default: %d", defs.Tolerance))
	flagSet.Bool(ConfPartialFirst, defs.PartialFirst, "Keep the partial chunk at the start of a divided period.")
	flagSet.Bool(ConfPartialLast, defs.PartialLast, "Keep the partial chunk at the end of a divided period.")
	flagSet.Bool(ConfRoundUpLast, defs.RoundUpLast, "Extend the partial chunk at the end to a whole chunk.")
	flagSet.Bool(ConfStrict, defs.Strict, "Fail when dividing a period yields no chunks.")
	flagSet.StringSlice(ConfHolidays, defs.Holidays, "ISO dates that are no trading days, e.g. 2015-12-25.")

	return flagSet
}

// Cmds returns the period commands. Each command runs the full engine lifecycle of system,
// which must have a reporting engine registered.
func Cmds(system *core.System) []*cobra.Command {
	return []*cobra.Command{
		describeCommand(system),
		chunksCommand(system),
		gapsCommand(system),
		combineCommand(system),
		namedCommand(system),
	}
}

// Leaves returns the runnable commands of cmds, the ones that need the config flags.
func Leaves(cmds []*cobra.Command) []*cobra.Command {
	var result []*cobra.Command
	for _, c := range cmds {
		if c.HasSubCommands() {
			result = append(result, Leaves(c.Commands())...)
			continue
		}
		result = append(result, c)
	}
	return result
}

func describeCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [from] [to]",
		Short: "Describes the period spanned by one or two date specs, e.g. 2015-3Q or last_month",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := ""
			if len(args) == 2 {
				to = args[1]
			}
			p, err := period.Parse(args[0], to)
			if err != nil {
				return err
			}
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				desc, err := engine.Describe(p)
				if err != nil {
					return err
				}
				return printResult(cmd, desc, describeText(desc))
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func chunksCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks [phrase]",
		Short: "Divides a period into calendar aligned chunks, e.g. 'from 2015 to 2016 per quarter'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, size, err := period.ParsePhrase(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if name, _ := cmd.Flags().GetString(sizeFlag); name != "" {
				if size, err = calendar.ParseChunk(name); err != nil {
					return err
				}
			}
			if !size.Valid() {
				return errors.New("chunk size is required, use 'per <size>' or --size")
			}
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				chunks, err := engine.Chunks(p, size)
				if err != nil {
					return err
				}
				return printResult(cmd, chunks, periodsText(chunks))
			})
		},
	}
	cmd.Flags().String(sizeFlag, "", "Chunk size, overrides the 'per' clause of the phrase.")
	addFormatFlag(cmd)
	return cmd
}

func gapsCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps [period] [covered]...",
		Short: "Lists the parts of a period not covered by the other periods",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periods, err := parsePeriods(args)
			if err != nil {
				return err
			}
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				gaps := engine.Gaps(periods[0], periods[1:])
				return printResult(cmd, gaps, periodsText(gaps))
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func combineCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine [intersection|union|difference] [a] [b]",
		Short: "Combines two periods",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := reporting.ParseOperation(args[0])
			if err != nil {
				return err
			}
			periods, err := parsePeriods(args[1:])
			if err != nil {
				return err
			}
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				result := engine.Combine(op, periods[0], periods[1])
				return printResult(cmd, result, periodsText(result))
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func namedCommand(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "named",
		Short: "Named period commands",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lists all named periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				entries, err := engine.List()
				if err != nil {
					return err
				}
				lines := make([]string, len(entries))
				for i, entry := range entries {
					lines[i] = fmt.Sprintf("%s\t%s", entry.Name, entry.Period)
				}
				return printResult(cmd, entries, lines)
			})
		},
	}
	addFormatFlag(list)

	get := &cobra.Command{
		Use:   "get [name]",
		Short: "Prints the period bound to a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				p, err := engine.Find(args[0])
				if err != nil {
					return err
				}
				entry := reporting.NamedPeriod{Name: args[0], Period: p}
				return printResult(cmd, entry, []string{p.String()})
			})
		},
	}
	addFormatFlag(get)

	set := &cobra.Command{
		Use:   "set [name] [period]",
		Short: "Binds a name to a period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			periods, err := parsePeriods(args[1:])
			if err != nil {
				return err
			}
			overwrite, _ := cmd.Flags().GetBool(overwriteFlag)
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				if err := engine.Save(args[0], periods[0], overwrite); err != nil {
					return err
				}
				cmd.Printf("%s is %s\n", args[0], periods[0])
				return nil
			})
		},
	}
	set.Flags().Bool(overwriteFlag, false, "Replace the period currently bound to the name.")

	del := &cobra.Command{
		Use:   "delete [name]",
		Short: "Removes a named period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, system, func(engine *reporting.Reporting) error {
				if err := engine.Delete(args[0]); err != nil {
					return err
				}
				cmd.Printf("%s deleted\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, get, set, del)
	return cmd
}

// withEngine loads the config, configures and starts system and runs fn with its reporting engine.
func withEngine(cmd *cobra.Command, system *core.System, fn func(engine *reporting.Reporting) error) error {
	engine := findEngine(system)
	if engine == nil {
		return errors.New("no reporting engine registered")
	}
	if err := system.Load(cmd); err != nil {
		return err
	}
	if err := system.Configure(); err != nil {
		return err
	}
	defer func() {
		if err := system.Shutdown(); err != nil {
			log.Logger().WithError(err).Error("Error shutting down system")
		}
	}()
	if err := system.Start(); err != nil {
		return err
	}
	return fn(engine)
}

func findEngine(system *core.System) *reporting.Reporting {
	var result *reporting.Reporting
	system.VisitEngines(func(engine core.Engine) {
		if r, ok := engine.(*reporting.Reporting); ok {
			result = r
		}
	})
	return result
}

func parsePeriods(args []string) ([]period.Period, error) {
	result := make([]period.Period, len(args))
	for i, arg := range args {
		if err := result[i].UnmarshalText([]byte(arg)); err != nil {
			return nil, fmt.Errorf("invalid period '%s': %w", arg, err)
		}
	}
	return result, nil
}
