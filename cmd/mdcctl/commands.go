package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-mdc/protocol"
)

func parseOnOff(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "status",
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			st, err := display.Status(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("power:  %s\n", st.Power)
			fmt.Printf("volume: %d\n", st.Volume)
			fmt.Printf("muted:  %t\n", st.Muted)
			fmt.Printf("input:  %s\n", st.Input)
			return nil
		},
	}
}

func powerCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "power [on|off]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := context.Background()
			if len(args) == 0 {
				status, err := display.Power(ctx)
				if err != nil {
					return err
				}
				fmt.Println(status)
				return nil
			}
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return display.SetPower(ctx, on)
		},
	}
}

func panelCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "panel [on|off]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := context.Background()
			if len(args) == 0 {
				status, err := display.Panel(ctx)
				if err != nil {
					return err
				}
				fmt.Println(status)
				return nil
			}
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return display.SetPanel(ctx, on)
		},
	}
}

func volumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "volume [LEVEL]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := context.Background()
			if len(args) == 0 {
				level, err := display.Volume(ctx)
				if err != nil {
					return err
				}
				fmt.Println(level)
				return nil
			}
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid volume %q", args[0])
			}
			return display.SetVolume(ctx, level)
		},
	}
}

func muteCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "mute [on|off]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := context.Background()
			if len(args) == 0 {
				muted, err := display.Muted(ctx)
				if err != nil {
					return err
				}
				fmt.Println(muted)
				return nil
			}
			muted, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return display.SetMuted(ctx, muted)
		},
	}
}

// inputsByName maps CLI argument spellings to input source values.
var inputsByName = map[string]protocol.InputSource{
	"s-video":      protocol.InputSVideo,
	"component":    protocol.InputComponent,
	"av":           protocol.InputAV,
	"pc":           protocol.InputPC,
	"dvi":          protocol.InputDVI,
	"bnc":          protocol.InputBNC,
	"magicinfo":    protocol.InputMagicInfo,
	"hdmi1":        protocol.InputHDMI1,
	"hdmi2":        protocol.InputHDMI2,
	"displayport":  protocol.InputDisplayPort,
	"displayport2": protocol.InputDisplayPort2,
	"tv":           protocol.InputTV,
	"hdbase-t":     protocol.InputHDBaseT,
}

func inputCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "input [SOURCE]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := context.Background()
			if len(args) == 0 {
				src, err := display.InputSource(ctx)
				if err != nil {
					return err
				}
				fmt.Println(src)
				return nil
			}
			src, ok := inputsByName[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown input source %q", args[0])
			}
			return display.SetInputSource(ctx, src)
		},
	}
}

func serialNumberCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "serial-number",
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			serial, err := display.SerialNumber(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(serial)
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "version",
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			version, err := display.SoftwareVersion(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(version)
			return nil
		},
	}
}

func rawCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "raw CMD [PAYLOAD]",
		Short: "Send an arbitrary command byte with a hex payload",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			code, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 8)
			if err != nil {
				return fmt.Errorf("invalid command byte %q", args[0])
			}
			var payload []byte
			if len(args) == 2 {
				payload, err = hex.DecodeString(args[1])
				if err != nil {
					return fmt.Errorf("invalid hex payload %q", args[1])
				}
			}

			display, closer, err := connect()
			if err != nil {
				return err
			}
			defer closer.Close()

			values, err := display.Raw(context.Background(), byte(code), payload)
			if err != nil {
				return err
			}
			fmt.Printf("% 02X\n", values)
			return nil
		},
	}
}
