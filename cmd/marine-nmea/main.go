package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"marine-nmea/internal/config"
	"marine-nmea/internal/gps"
	"marine-nmea/internal/nmea"
	"marine-nmea/internal/replay"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("marine-nmea: %v", err)
	}
}

type options struct {
	configPath  string
	summaryPath string
	snapshot    bool

	fs *pflag.FlagSet
}

func parseFlags(args []string) (options, []string, error) {
	var opts options
	fs := pflag.NewFlagSet("marine-nmea", pflag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML config")
	fs.StringVar(&opts.summaryPath, "summary", "", "Print a summary of the capture log at this path and exit")
	fs.BoolVar(&opts.snapshot, "snapshot", false, "Print the final position snapshot as JSON on exit (serial source)")

	// Overrides; applied only when set on the command line.
	fs.String("source", "", "Input source: file, stdin, serial, replay")
	fs.String("device", "", "Serial device (empty = auto-detect)")
	fs.Int("baud", 0, "Serial baud rate")
	fs.String("format", "", "Output format: json or text")
	fs.StringSlice("tags", nil, "Only emit these message tags, e.g. GGA,RMC")
	fs.Bool("include-malformed", false, "Emit malformed and unknown sentences")
	fs.IntP("workers", "w", 0, "Batch decode workers (0 = GOMAXPROCS)")
	fs.String("record", "", "Record received sentences to this capture log")
	fs.Float64("speed", 0, "Replay speed multiplier")
	fs.Bool("loop", false, "Loop replay")
	fs.String("catalogue", "", "Extra accessor catalogue YAML merged over the built-in one")

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	opts.fs = fs
	return opts, fs.Args(), nil
}

// applyOverrides copies explicitly set flags onto cfg.
func applyOverrides(fs *pflag.FlagSet, cfg *config.Config, files []string) {
	if fs.Changed("source") {
		cfg.Input.Source, _ = fs.GetString("source")
	}
	if fs.Changed("device") {
		cfg.Input.Device, _ = fs.GetString("device")
	}
	if fs.Changed("baud") {
		cfg.Input.Baud, _ = fs.GetInt("baud")
	}
	if fs.Changed("format") {
		cfg.Output.Format, _ = fs.GetString("format")
	}
	if fs.Changed("tags") {
		cfg.Output.Tags, _ = fs.GetStringSlice("tags")
	}
	if fs.Changed("include-malformed") {
		cfg.Output.IncludeMalformed, _ = fs.GetBool("include-malformed")
	}
	if fs.Changed("workers") {
		cfg.Decode.Workers, _ = fs.GetInt("workers")
	}
	if fs.Changed("record") {
		cfg.Record.Path, _ = fs.GetString("record")
		cfg.Record.Enable = cfg.Record.Path != ""
	}
	if fs.Changed("speed") {
		cfg.Replay.Speed, _ = fs.GetFloat64("speed")
	}
	if fs.Changed("loop") {
		cfg.Replay.Loop, _ = fs.GetBool("loop")
	}
	if fs.Changed("catalogue") {
		cfg.CataloguePath, _ = fs.GetString("catalogue")
	}
	if len(files) > 0 {
		if !fs.Changed("source") {
			cfg.Input.Source = config.SourceFile
		}
		cfg.Input.Path = files[0]
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, files, err := parseFlags(args)
	if err != nil {
		return err
	}

	if opts.summaryPath != "" {
		return printLogSummary(stdout, opts.summaryPath)
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
	}
	applyOverrides(opts.fs, &cfg, files)
	if err := cfg.Validate(); err != nil {
		return err
	}

	cat := nmea.DefaultCatalogue()
	if cfg.CataloguePath != "" {
		extra, err := nmea.LoadCatalogueFile(cfg.CataloguePath)
		if err != nil {
			return fmt.Errorf("catalogue load failed: %w", err)
		}
		cat = cat.Merge(extra)
		log.Printf("catalogue merged path=%s kinds=%d", cfg.CataloguePath, len(extra.Kinds()))
	}

	out := newEmitter(stdout, cfg, cat)
	defer func() {
		if err := out.flush(); err != nil {
			log.Printf("output flush failed: %v", err)
		}
	}()

	var rec *replay.Writer
	if cfg.Record.Enable {
		rec, err = replay.CreateWriter(cfg.Record.Path)
		if err != nil {
			return fmt.Errorf("record open failed: %w", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("record close failed path=%s: %v", cfg.Record.Path, err)
			}
		}()
		log.Printf("recording path=%s", cfg.Record.Path)
	}
	record := func(now time.Time, line string) {
		if rec == nil {
			return
		}
		if err := rec.WriteLine(now, line); err != nil {
			log.Printf("record write failed: %v", err)
		}
	}

	switch cfg.Input.Source {
	case config.SourceFile:
		paths := files
		if len(paths) == 0 {
			paths = []string{cfg.Input.Path}
		}
		for _, p := range paths {
			if err := decodeFile(ctx, p, cfg.Decode.Workers, out, record); err != nil {
				return err
			}
		}
	case config.SourceStdin:
		if err := decodeStream(ctx, stdin, out, record); err != nil {
			return err
		}
	case config.SourceReplay:
		if err := replayFile(ctx, cfg, out); err != nil {
			return err
		}
	case config.SourceSerial:
		if err := readSerial(ctx, cfg, opts.snapshot, stdout, out, record); err != nil {
			return err
		}
	}

	emitted, skipped := out.counts()
	log.Printf("done source=%s emitted=%d skipped=%d", cfg.Input.Source, emitted, skipped)
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1024*1024)
	var lines []string
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, s.Err()
}

func decodeFile(ctx context.Context, path string, workers int, out *emitter, record func(time.Time, string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	decoded, err := nmea.DecodeAll(ctx, lines, workers)
	if err != nil {
		return err
	}
	now := time.Now()
	for i, c := range decoded {
		record(now, lines[i])
		if err := out.emit(c); err != nil {
			return err
		}
	}
	log.Printf("decoded path=%s lines=%d", path, len(lines))
	return nil
}

func decodeStream(ctx context.Context, r io.Reader, out *emitter, record func(time.Time, string)) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1024*1024)
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		record(time.Now(), line)
		if err := out.emit(nmea.DecodeMessage(line)); err != nil {
			return err
		}
	}
	return s.Err()
}

func replayFile(ctx context.Context, cfg config.Config, out *emitter) error {
	recs, err := replay.ReadFile(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("replay load failed: %w", err)
	}
	log.Printf("replay path=%s records=%d speed=%g loop=%t", cfg.Input.Path, len(recs), cfg.Replay.Speed, cfg.Replay.Loop)
	return replay.Play(ctx, recs, cfg.Replay.Speed, cfg.Replay.Loop, nil, func(line string) error {
		if err := out.emit(nmea.DecodeMessage(line)); err != nil {
			return err
		}
		// Replays are watched live; do not hold output in the buffer.
		return out.flush()
	})
}

func readSerial(ctx context.Context, cfg config.Config, printSnapshot bool, stdout io.Writer, out *emitter, record func(time.Time, string)) error {
	svc := gps.New(gps.Config{
		Enable: true,
		Device: cfg.Input.Device,
		Baud:   cfg.Input.Baud,
		OnSentence: func(now time.Time, line string, c nmea.Classified) {
			record(now, line)
			if err := out.emit(c); err != nil {
				log.Printf("output failed: %v", err)
				return
			}
			if err := out.flush(); err != nil {
				log.Printf("output flush failed: %v", err)
			}
		},
	})
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Close()

	select {
	case <-ctx.Done():
	case <-svc.Done():
	}
	svc.Close()

	snap := svc.Snapshot()
	log.Printf("gps stopped valid=%t sentences=%d malformed=%d last_error=%q", snap.Valid, snap.Sentences, snap.Malformed, snap.LastError)
	if printSnapshot {
		if err := out.flush(); err != nil {
			return err
		}
		return writeJSON(stdout, snap)
	}
	return nil
}
