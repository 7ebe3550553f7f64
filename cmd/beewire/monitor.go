package main

import (
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"beewire/dispatch"
	"beewire/protocol"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Decode and log every frame arriving on the port",
	RunE:  runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	port, err := openPort()
	if err != nil {
		return err
	}
	// Drop whatever accumulated before we attached, so the reader does
	// not start mid-frame.
	if err := port.Flush(); err != nil {
		return err
	}

	reader := protocol.NewFrameReader(port, engine.Codec())
	router := dispatch.NewRouter(engine, reader,
		dispatch.WithLogger(log),
		dispatch.WithErrorObserver(func(err error) {
			log.Warn().Err(err).Msg("bad frame")
		}),
	)

	router.Register("monitor", logFrame, func(*protocol.Message) bool { return true })

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("stopping")
		router.Stop()
	}()

	log.Info().Str("device", flagDevice).Int("baud", flagBaud).Msg("monitoring")
	return router.Run()
}

func logFrame(name string, msg *protocol.Message) {
	ev := log.Info().Str("frame", msg.Name)
	for field, value := range msg.Fields {
		ev = ev.Str(field, hex.EncodeToString(value))
	}
	for field, block := range msg.Blocks {
		ev = ev.Int(field+"_records", block.Count())
	}
	ev.Msg("frame")
}
