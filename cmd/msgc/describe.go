package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/msgc/internal/compiler"
	"github.com/danmuck/msgc/internal/protocol/codec"
	"github.com/danmuck/msgc/internal/protocol/frame"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/spf13/cobra"
)

var (
	flagFlags    []string
	flagMaxBytes int
	flagMaxMsg   int
	flagKind     string
	flagKeep     string
)

var describeCmd = &cobra.Command{
	Use:   "describe <capture>",
	Short: "Decode a capture of concatenated messages and describe each one",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().AddFlagSet(compileFlags())
	describeCmd.Flags().StringSliceVar(&flagFlags, "flag", nil, "context flag set to true for guards (repeatable)")
	describeCmd.Flags().IntVar(&flagMaxBytes, "max", 256, "maximum describe line length")
	describeCmd.Flags().IntVar(&flagMaxMsg, "max-message", frame.DefaultLimits().MaxMessageBytes, "largest message accepted from the capture")
	describeCmd.Flags().StringVar(&flagKind, "kind", "", "decode every message as this <name>/<class> instead of peeking the tag")
	describeCmd.Flags().StringVar(&flagKeep, "keep", "", "copy the messages that decode cleanly to this capture file")
}

// streamOptions control how a capture is split, decoded and rendered.
type streamOptions struct {
	layout frame.Layout
	limits frame.Limits
	flags  codec.Flags
	max    int
	// kind forces every message to one discriminant; -1 peeks the tag.
	kind int
	// keep receives the messages that decoded without error.
	keep io.Writer
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sf, err := os.Open(cfg.Schema)
	if err != nil {
		return fmt.Errorf("open schema: %w", err)
	}
	defer sf.Close()
	s, err := compiler.Check(sf, cfg)
	if err != nil {
		return err
	}
	c, err := codec.New(s, cfg.DispatchOptions())
	if err != nil {
		return err
	}
	opts := streamOptions{
		limits: frame.Limits{MaxMessageBytes: flagMaxMsg},
		flags:  codec.Flags{},
		max:    flagMaxBytes,
		kind:   -1,
	}
	if opts.layout, err = frame.LayoutFor(c.Schema()); err != nil {
		return err
	}
	for _, name := range flagFlags {
		opts.flags[name] = true
	}
	if flagKind != "" {
		if opts.kind, err = lookupKind(c, flagKind); err != nil {
			return err
		}
	}

	capture, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer capture.Close()

	if flagKeep != "" {
		kept, err := os.Create(flagKeep)
		if err != nil {
			return fmt.Errorf("create %s: %w", flagKeep, err)
		}
		defer kept.Close()
		opts.keep = kept
	}
	return describeStream(cmd.OutOrStdout(), capture, c, opts)
}

func lookupKind(c *codec.Codec, full string) (int, error) {
	name, class, ok := strings.Cut(full, "/")
	if ok {
		if m, found := c.Schema().Lookup(name, schema.Class(class)); found {
			return m.Discriminant, nil
		}
	}
	return 0, fmt.Errorf("unknown message %q", full)
}

func describeStream(out io.Writer, in io.Reader, c *codec.Codec, opts streamOptions) error {
	r := frame.NewReader(in, opts.layout, opts.limits)
	for i := 0; ; i++ {
		msg, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		var rec *codec.Record
		if opts.kind >= 0 {
			rec, err = c.DecodeKind(opts.kind, msg, opts.flags)
		} else {
			rec, err = c.Decode(msg, opts.flags)
		}
		if err != nil {
			fmt.Fprintf(out, "%d: %v\n", i, err)
			continue
		}
		if opts.keep != nil {
			if err := frame.WriteMessage(opts.keep, msg, opts.layout, opts.limits); err != nil {
				return fmt.Errorf("message %d: keep: %w", i, err)
			}
		}
		fmt.Fprintf(out, "%d: %s\n", i, c.Describe(rec, opts.max))
	}
}
