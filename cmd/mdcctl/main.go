// Command mdcctl controls Samsung displays over the MDC protocol.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moffa90/go-mdc/mdc"
	"github.com/moffa90/go-mdc/transport"
)

var (
	tcpAddr   string
	serialDev string
	baudRate  int
	displayID uint8
	timeout   = 3 * time.Second
	retries   = 2
	debug     bool
)

func main() {
	cmd := &cobra.Command{
		Use:           "mdcctl",
		Short:         "Control Samsung displays over MDC",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&tcpAddr, "tcp", "", "Display address host[:port], port defaults to 1515")
	pf.StringVar(&serialDev, "serial", "", "Serial device of the display chain")
	pf.IntVar(&baudRate, "baud", 9600, "Serial baud rate")
	pf.Uint8Var(&displayID, "id", 0, "Display address on the chain (0xFE broadcasts)")
	pf.DurationVar(&timeout, "timeout", timeout, "Response timeout per attempt")
	pf.IntVar(&retries, "retries", retries, "Retry attempts for transient failures")
	pf.BoolVar(&debug, "debug", false, "Log every exchange")

	cmd.AddCommand(statusCommand())
	cmd.AddCommand(powerCommand())
	cmd.AddCommand(panelCommand())
	cmd.AddCommand(volumeCommand())
	cmd.AddCommand(muteCommand())
	cmd.AddCommand(inputCommand())
	cmd.AddCommand(serialNumberCommand())
	cmd.AddCommand(versionCommand())
	cmd.AddCommand(rawCommand())

	if err := cmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}

// connect opens the stream selected by the transport flags and builds
// the session and display handle around it.
func connect() (*mdc.Display, io.Closer, error) {
	var conn mdc.Conn
	var closer io.Closer

	switch {
	case tcpAddr != "" && serialDev != "":
		return nil, nil, errors.New("--tcp and --serial are mutually exclusive")
	case tcpAddr != "":
		c, err := transport.Dial(tcpAddr)
		if err != nil {
			return nil, nil, err
		}
		conn, closer = c, c
	case serialDev != "":
		c, err := transport.OpenSerial(serialDev, transport.SerialConfig{BaudRate: baudRate})
		if err != nil {
			return nil, nil, err
		}
		conn, closer = c, c
	default:
		return nil, nil, errors.New("either --tcp or --serial is required")
	}

	opts := []mdc.Option{
		mdc.WithTimeout(timeout),
		mdc.WithRetries(retries),
	}
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			closer.Close()
			return nil, nil, fmt.Errorf("building logger: %w", err)
		}
		opts = append(opts, mdc.WithLogger(&zapLogger{s: logger.Sugar()}))
	}

	sess := mdc.NewSession(conn, opts...)
	return mdc.NewDisplay(sess, displayID), closer, nil
}

// zapLogger adapts a zap SugaredLogger to the mdc.Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
