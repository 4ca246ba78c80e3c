package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"marine-nmea/internal/nmea"
	"marine-nmea/internal/replay"
)

type logSummary struct {
	Segments    int
	Sentences   int
	Malformed   int
	Unknown     int
	MaxDuration time.Duration
	KindCounts  map[nmea.Kind]int
	Talkers     map[string]int
}

func summarizeCaptureLog(records []replay.Record) logSummary {
	s := logSummary{KindCounts: map[nmea.Kind]int{}, Talkers: map[string]int{}}
	if len(records) == 0 {
		return s
	}

	origin := time.Duration(0)
	hasSentences := false
	segments := 0

	for _, r := range records {
		if r.Start {
			segments++
			origin = r.At
			continue
		}
		hasSentences = true

		s.Sentences++
		at := r.At - origin
		if at < 0 {
			at = 0
		}
		if at > s.MaxDuration {
			s.MaxDuration = at
		}

		sent, err := nmea.Parse(r.Line)
		if err != nil {
			s.Malformed++
			continue
		}
		m, ok := nmea.Classify(sent).(nmea.Message)
		if !ok {
			s.Unknown++
			continue
		}
		s.KindCounts[m.Kind]++
		s.Talkers[m.Sender()]++
	}
	if segments == 0 && hasSentences {
		segments = 1
	}
	s.Segments = segments

	return s
}

func printLogSummary(w io.Writer, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	recs, err := replay.ReadFile(path)
	if err != nil {
		return err
	}

	s := summarizeCaptureLog(recs)

	fmt.Fprintf(w, "path: %s\n", path)
	fmt.Fprintf(w, "segments: %d\n", s.Segments)
	fmt.Fprintf(w, "sentences: %d\n", s.Sentences)
	fmt.Fprintf(w, "malformed: %d\n", s.Malformed)
	fmt.Fprintf(w, "unknown_kind: %d\n", s.Unknown)
	fmt.Fprintf(w, "max_duration: %s\n", s.MaxDuration)

	kinds := make([]nmea.Kind, 0, len(s.KindCounts))
	for k := range s.KindCounts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	fmt.Fprintf(w, "kind_counts:\n")
	for _, k := range kinds {
		fmt.Fprintf(w, "  %s: %d\n", k, s.KindCounts[k])
	}

	talkers := make([]string, 0, len(s.Talkers))
	for t := range s.Talkers {
		talkers = append(talkers, t)
	}
	sort.Strings(talkers)
	fmt.Fprintf(w, "talker_counts:\n")
	for _, t := range talkers {
		fmt.Fprintf(w, "  %s: %d\n", t, s.Talkers[t])
	}
	return nil
}
