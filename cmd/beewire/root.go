package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"beewire/protocol"
	"beewire/serial"
	"beewire/tables"
)

var (
	flagDevice    string
	flagBaud      int
	flagTimeout   int
	flagEscaped   bool
	flagVariant   string
	flagTablePath string
	flagVerbose   bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "beewire",
	Short: "Talk to XBee radio modules in API mode",
	Long: `beewire frames, sends and decodes XBee API-mode traffic over a
serial port. Frame tables for ZigBee (S2) and Series 1 firmware are
built in; other variants can be supplied as TOML table files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDevice, "device", "d", "/dev/ttyUSB0", "serial device path")
	rootCmd.PersistentFlags().IntVarP(&flagBaud, "baud", "b", 9600, "baud rate")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "serial read timeout in milliseconds (0 = blocking; a nonzero value makes an idle monitor exit)")
	rootCmd.PersistentFlags().BoolVar(&flagEscaped, "api2", false, "use API mode 2 (escaped) framing")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "zigbee", "built-in frame tables: zigbee or series1")
	rootCmd.PersistentFlags().StringVar(&flagTablePath, "tables", "", "TOML frame table file (overrides --variant)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// newEngine assembles the codec engine from the selected tables.
func newEngine() (*protocol.Engine, error) {
	var (
		commands  protocol.CommandTable
		responses protocol.ResponseTable
		err       error
	)
	switch {
	case flagTablePath != "":
		commands, responses, err = tables.Load(flagTablePath)
		if err != nil {
			return nil, err
		}
	case flagVariant == "zigbee":
		commands, responses = tables.ZigBee()
	case flagVariant == "series1":
		commands, responses = tables.Series1()
	default:
		return nil, fmt.Errorf("unknown table variant %q", flagVariant)
	}
	return protocol.NewEngine(commands, responses, protocol.FrameCodec{Escaped: flagEscaped})
}

func openPort() (serial.Port, error) {
	cfg := serial.DefaultConfig(flagDevice)
	cfg.Baud = flagBaud
	cfg.ReadTimeout = flagTimeout
	return serial.Open(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
