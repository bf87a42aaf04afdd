package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	stomp "github.com/mqwire/stomp-go"
	"github.com/mqwire/stomp-go/frame"
	"github.com/mqwire/stomp-go/stats"
)

var (
	uriFlag      string
	loginFlag    string
	passcodeFlag string
	verboseFlag  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stomp",
		Short: "Send and receive messages over STOMP brokers",
	}
	rootCmd.PersistentFlags().StringVarP(&uriFlag, "uri", "u", "", "Broker URI (tcp://host:port or failover:(...); default from ~/.stomp.toml)")
	rootCmd.PersistentFlags().StringVar(&loginFlag, "login", "", "Broker login")
	rootCmd.PersistentFlags().StringVar(&passcodeFlag, "passcode", "", "Broker passcode")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log connection events")

	rootCmd.AddCommand(
		sendCmd(),
		listenCmd(),
		pingCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// sendCmd
// ---------------------------------------------------------------------------

func sendCmd() *cobra.Command {
	var (
		headers    []string
		asMap      bool
		asBytes    bool
		useStdin   bool
		transacted bool
	)

	cmd := &cobra.Command{
		Use:   "send <destination> [body]",
		Short: "Send a message to a destination",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination := args[0]

			if asMap && asBytes {
				return fmt.Errorf("--map and --bytes are mutually exclusive")
			}

			var body []byte
			switch {
			case useStdin:
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				body = data
			case len(args) > 1:
				body = []byte(args[1])
			default:
				return fmt.Errorf("body required (or use --stdin)")
			}

			props, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			out, err := buildFrame(asMap, asBytes, body, props)
			if err != nil {
				return err
			}

			c, err := connectClient()
			if err != nil {
				return err
			}
			defer c.Disconnect()

			if transacted {
				tx, err := c.BeginTx()
				if err != nil {
					return err
				}
				if err := tx.SendFrame(destination, out); err != nil {
					tx.Abort()
					return err
				}
				if err := tx.Commit(); err != nil {
					return err
				}
			} else if err := c.SendFrame(destination, out); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "sent %d bytes to %s\n", len(out.Body), destination)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header name:value (can be repeated)")
	cmd.Flags().BoolVar(&asMap, "map", false, "Treat body as a JSON object and send it as a map message")
	cmd.Flags().BoolVar(&asBytes, "bytes", false, "Send body as bytes with a content-length header")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read body from stdin")
	cmd.Flags().BoolVarP(&transacted, "transacted", "t", false, "Wrap the send in a transaction")

	return cmd
}

// ---------------------------------------------------------------------------
// listenCmd
// ---------------------------------------------------------------------------

func listenCmd() *cobra.Command {
	var (
		ack     bool
		headers []string
	)

	cmd := &cobra.Command{
		Use:   "listen <destination>",
		Short: "Subscribe to a destination and print messages until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination := args[0]

			props, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			c, err := connectClient()
			if err != nil {
				return err
			}

			if err := c.Subscribe(destination, props...); err != nil {
				c.Disconnect()
				return err
			}
			fmt.Fprintf(os.Stderr, "listening on %s (ctrl-c to stop)\n", destination)

			sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(sigCtx)
			g.Go(func() error {
				for {
					msg, err := c.ReadFrame()
					if err != nil {
						return err
					}
					printMessage(msg)
					if ack {
						if err := c.AckFrame(msg); err != nil {
							return err
						}
					}
				}
			})
			g.Go(func() error {
				<-gctx.Done()
				return c.Disconnect()
			})

			err = g.Wait()
			if sigCtx.Err() != nil {
				// Interrupted by the user; the read error is expected.
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&ack, "ack", false, "Acknowledge each message after printing")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra subscribe header name:value (can be repeated)")

	return cmd
}

// ---------------------------------------------------------------------------
// pingCmd
// ---------------------------------------------------------------------------

func pingCmd() *cobra.Command {
	var (
		count       int
		destination string
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Connect, send test messages, and report operation timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := stats.NewLog()
			c, err := connectClient(stomp.WithRecorder(rec))
			if err != nil {
				return err
			}
			defer c.Disconnect()

			for i := 1; i <= count; i++ {
				if err := c.Send(destination, fmt.Sprintf("ping %d", i)); err != nil {
					return err
				}
			}

			ep, _ := c.Endpoint()
			fmt.Printf("broker %s, state %s\n", ep, c.State())
			for _, obs := range rec.Observations() {
				fmt.Printf("  %-16s %.6fs\n", obs.Command, obs.Seconds())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 1, "Number of test messages to send")
	cmd.Flags().StringVarP(&destination, "destination", "d", "/queue/stomp-ping", "Destination for test messages")

	return cmd
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func connectClient(extra ...stomp.ClientOption) (*stomp.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	uri := cfg.Broker.URI
	if uriFlag != "" {
		uri = uriFlag
	}
	login := cfg.Broker.Login
	passcode := cfg.Broker.Passcode
	if loginFlag != "" {
		login = loginFlag
	}
	if passcodeFlag != "" {
		passcode = passcodeFlag
	}

	opts := []stomp.ClientOption{stomp.WithLogger(cliLogger())}
	if login != "" || passcode != "" {
		opts = append(opts, stomp.WithCredentials(login, passcode))
	}
	opts = append(opts, extra...)
	return stomp.NewClient(uri, opts...)
}

func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseHeaders(raw []string) ([]frame.Header, error) {
	var out []frame.Header
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("header %q must be name:value", h)
		}
		out = append(out, frame.Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return out, nil
}

func buildFrame(asMap, asBytes bool, body []byte, props []frame.Header) (*frame.Frame, error) {
	switch {
	case asMap:
		var m map[string]any
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, fmt.Errorf("--map body must be a JSON object: %w", err)
		}
		mm, err := frame.NewMapMessage(m, props...)
		if err != nil {
			return nil, err
		}
		return mm.Frame, nil
	case asBytes:
		return frame.NewBytesMessage(body, props...), nil
	default:
		return frame.NewTextMessage(string(body), props...), nil
	}
}

func printMessage(msg frame.Message) {
	switch m := msg.(type) {
	case *frame.MapMessage:
		body, _ := json.Marshal(m.Map)
		fmt.Printf("[%s] map %s\n", destinationOf(m.Wire()), body)
	case *frame.Frame:
		fmt.Printf("[%s] %s\n", destinationOf(m), m.Body)
	}
}

func destinationOf(f *frame.Frame) string {
	d, _ := f.Headers.Get(frame.HdrDestination)
	if d == "" {
		d = f.Command
	}
	return d
}
