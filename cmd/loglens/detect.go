package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the detected log format for an input",
	RunE:  runDetect,
}

var detectFlagInput string

func init() {
	detectCmd.Flags().StringVar(&detectFlagInput, "input", "", "input file (default stdin)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	var text string
	if detectFlagInput == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	} else {
		b, err := os.ReadFile(detectFlagInput)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		text = string(b)
	}

	fmt.Println(parsers.DetectFormat(text))
	return nil
}
