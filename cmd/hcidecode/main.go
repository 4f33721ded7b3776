// hcidecode renders Bluetooth HCI traffic for humans: single packets
// from the command line, binary or text capture files, and live
// serial links through a pty proxy.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/maxble/blehci/decode"
	"github.com/maxble/blehci/hci/uart"
)

func main() {
	app := cli.NewApp()
	app.Name = "hcidecode"
	app.Usage = "decode Bluetooth HCI packets, capture files, and live serial traffic"
	app.Version = "1.0.0"
	app.Commands = []cli.Command{
		packetCommand(),
		fileCommand(),
		sniffCommand(),
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func packetCommand() cli.Command {
	return cli.Command{
		Name:      "packet",
		Usage:     "decode a single packet given as hex, type byte first",
		ArgsUsage: "HEX",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("expected exactly one hex packet argument", 1)
			}
			b, err := decode.ParsePacket(c.Args().First())
			if err != nil {
				return err
			}
			s, err := decode.NewDecoder(nil).Packet(b)
			if err != nil {
				return err
			}
			fmt.Print(s)
			return nil
		},
	}
}

func fileCommand() cli.Command {
	return cli.Command{
		Name:      "file",
		Usage:     "decode a capture file, binary by default",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "text, t",
				Usage: "treat the file as text with one hex packet per line",
			},
			cli.StringSliceFlag{
				Name:  "tag",
				Usage: "only decode text lines starting with this prefix (repeatable)",
			},
			cli.StringFlag{
				Name:  "c2h-tag",
				Usage: "prefix marking controller-to-host lines",
			},
			cli.StringFlag{
				Name:  "h2c-tag",
				Usage: "prefix marking host-to-controller lines",
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "write decoded output to `FILE` instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("expected exactly one capture file argument", 1)
			}
			in, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer in.Close()

			d := decode.NewDecoder(nil)
			var s string
			if c.Bool("text") || len(c.StringSlice("tag")) > 0 ||
				c.String("c2h-tag") != "" || c.String("h2c-tag") != "" {
				s, err = d.Text(in, decode.TextOptions{
					Leading: c.StringSlice("tag"),
					C2HTag:  c.String("c2h-tag"),
					H2CTag:  c.String("h2c-tag"),
				})
			} else {
				s, err = d.Stream(in)
			}
			if err != nil {
				return err
			}

			out, closer, err := output(c.String("output"))
			if err != nil {
				return err
			}
			defer closer()
			_, err = io.WriteString(out, s)
			return err
		},
	}
}

func sniffCommand() cli.Command {
	return cli.Command{
		Name:  "sniff",
		Usage: "proxy a serial port through a pty and decode the traffic",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:     "port, p",
				Usage:    "serial `PORT` of the controller",
				Required: true,
			},
			cli.IntFlag{
				Name:  "baud, b",
				Usage: "serial baud rate",
				Value: uart.DefaultBaud,
			},
			cli.StringFlag{
				Name:  "mode, m",
				Usage: "directions to decode: bidirectional, c2h, or h2c",
				Value: "bidirectional",
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "write decoded output to `FILE` instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			mode, err := decode.ParseSniffMode(c.String("mode"))
			if err != nil {
				return err
			}
			out, closer, err := output(c.String("output"))
			if err != nil {
				return err
			}
			defer closer()

			s, err := decode.NewSniffer(c.String("port"), c.Int("baud"), out,
				decode.WithSniffMode(mode))
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintf(os.Stderr, "proxying %s on %s, ctrl-c to stop\n",
				c.String("port"), s.ProxyPort())
			s.Start()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
}

func output(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
