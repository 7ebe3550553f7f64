package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <command> [field=hexvalue ...]",
	Short: "Build one command frame and write it to the port",
	Long: `Builds a frame from the named command table entry and writes it.
Field values are hex encoded, e.g.:

  beewire send at command=4944
  beewire send tx dest_addr_long=0013a20040a01234 dest_addr=fffe data=68690a`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	params := make(map[string][]byte, len(args)-1)
	for _, arg := range args[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("argument %q is not field=hexvalue", arg)
		}
		raw, err := hex.DecodeString(value)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		params[name] = raw
	}

	frame, err := engine.Build(args[0], params)
	if err != nil {
		return err
	}

	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()

	if _, err := port.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	log.Info().Str("command", args[0]).Int("bytes", len(frame)).Msg("frame sent")
	return nil
}
