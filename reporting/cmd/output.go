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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ugradid/ugradid-period/period"
	"github.com/ugradid/ugradid-period/reporting"
	"gopkg.in/yaml.v3"
)

const (
	textFormat = "text"
	jsonFormat = "json"
	yamlFormat = "yaml"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String(formatFlag, textFormat, "Output format: text, json or yaml.")
}

// printResult writes value in the requested format, lines are used for the text format
func printResult(cmd *cobra.Command, value interface{}, lines []string) error {
	format, _ := cmd.Flags().GetString(formatFlag)
	switch format {
	case textFormat, "":
		for _, line := range lines {
			cmd.Println(line)
		}
		return nil
	case jsonFormat:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	case yamlFormat:
		data, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
		return nil
	}
	return fmt.Errorf("invalid output format: '%s'", format)
}

func periodsText(periods []period.Period) []string {
	lines := make([]string, len(periods))
	for i, p := range periods {
		lines[i] = p.String()
	}
	return lines
}

func describeText(desc reporting.Description) []string {
	lines := []string{
		fmt.Sprintf("period:       %s", desc.Period),
		fmt.Sprintf("first:        %s", desc.First),
		fmt.Sprintf("last:         %s", desc.Last),
		fmt.Sprintf("days:         %d", desc.Days),
		fmt.Sprintf("months:       %.2f", desc.Months),
		fmt.Sprintf("years:        %.2f", desc.Years),
		fmt.Sprintf("chunk:        %s", desc.Chunk),
		fmt.Sprintf("chunk name:   %s", desc.ChunkName),
		fmt.Sprintf("trading days: %d", desc.TradingDays),
	}
	if desc.Name != "" {
		lines = append(lines, fmt.Sprintf("name:         %s", desc.Name))
	}
	return lines
}
