package nmea

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDecodeAll_PreservesOrder(t *testing.T) {
	var lines []string
	for i := 0; i < 1000; i++ {
		switch i % 3 {
		case 0:
			lines = append(lines, nmeaLine(fmt.Sprintf("GPZDA,201530.00,04,07,%d,00,00", 2000+i)))
		case 1:
			lines = append(lines, "garbage")
		default:
			lines = append(lines, lineAAM)
		}
	}

	for _, workers := range []int{0, 1, 3, 64, 5000} {
		got, err := DecodeAll(context.Background(), lines, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(got) != len(lines) {
			t.Fatalf("workers=%d: len=%d want %d", workers, len(got), len(lines))
		}
		for i, c := range got {
			switch i % 3 {
			case 0:
				m, ok := c.(Message)
				if !ok || m.Kind != KindZDA {
					t.Fatalf("workers=%d line %d: %T", workers, i, c)
				}
				if y, _ := Int[int](m.Sentence, 3); y != 2000+i {
					t.Fatalf("workers=%d line %d: year=%d", workers, i, y)
				}
			case 1:
				if _, ok := c.(*Error); !ok {
					t.Fatalf("workers=%d line %d: %T want *Error", workers, i, c)
				}
			default:
				if m, ok := c.(Message); !ok || m.Kind != KindAAM {
					t.Fatalf("workers=%d line %d: %T", workers, i, c)
				}
			}
		}
	}
}

func TestDecodeAll_Empty(t *testing.T) {
	got, err := DecodeAll(context.Background(), nil, 4)
	if err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestDecodeAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DecodeAll(ctx, []string{lineAAM, lineGGA}, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}
