package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"marine-nmea/internal/config"
	"marine-nmea/internal/nmea"
)

// emitter writes decoded sentences in the configured format. It is safe for
// use from the serial reader goroutine and the main goroutine.
type emitter struct {
	mu sync.Mutex

	w   *bufio.Writer
	enc *json.Encoder

	format           string
	filter           map[nmea.Kind]bool
	includeMalformed bool
	cat              *nmea.Catalogue

	emitted int
	skipped int
}

func newEmitter(w io.Writer, cfg config.Config, cat *nmea.Catalogue) *emitter {
	bw := bufio.NewWriter(w)
	return &emitter{
		w:                bw,
		enc:              json.NewEncoder(bw),
		format:           cfg.Output.Format,
		filter:           cfg.TagFilter(),
		includeMalformed: cfg.Output.IncludeMalformed,
		cat:              cat,
	}
}

func (e *emitter) emit(c nmea.Classified) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch v := c.(type) {
	case nmea.Message:
		if e.filter != nil && !e.filter[v.Kind] {
			e.skipped++
			return nil
		}
		e.emitted++
		if e.format == config.FormatText {
			_, err := e.w.WriteString(e.textMessage(v) + "\n")
			return err
		}
		return e.enc.Encode(e.cat.Record(v))
	case *nmea.Error:
		if !e.includeMalformed {
			e.skipped++
			return nil
		}
		e.emitted++
		if e.format == config.FormatText {
			_, err := fmt.Fprintf(e.w, "ERROR reason=%s original=%s\n", strconv.Quote(v.Reason), strconv.Quote(v.Original))
			return err
		}
		return e.enc.Encode(v)
	default:
		return fmt.Errorf("unexpected classification %T", c)
	}
}

func (e *emitter) flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.w.Flush()
}

func (e *emitter) counts() (emitted, skipped int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emitted, e.skipped
}

// textMessage renders m as "TAG SENDER key=value ...", in catalogue order.
func (e *emitter) textMessage(m nmea.Message) string {
	var b strings.Builder
	b.WriteString(m.Tag())
	if m.Sender() != "" {
		b.WriteByte(' ')
		b.WriteString(m.Sender())
	}
	for _, bind := range e.cat.Bindings(m.Kind) {
		v, ok := bind.Resolve(m.Sentence)
		if !ok {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(bind.Name)
		b.WriteByte('=')
		b.WriteString(formatValue(v, bind.Extract))
	}
	return b.String()
}

func formatValue(v any, kind nmea.Extraction) string {
	var s string
	switch x := v.(type) {
	case rune:
		if kind == nmea.ExtractChar {
			s = string(x)
		} else {
			s = strconv.FormatInt(int64(x), 10)
		}
	case time.Time:
		s = x.Format(time.DateOnly)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \"=") {
		return strconv.Quote(s)
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
