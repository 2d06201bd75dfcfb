package preprocess

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"featprep/internal/dataset"
)

// benchFrame builds a table of rows rows with two numeric and two
// categorical columns, every seventh numeric cell missing
func benchFrame(b *testing.B, rows int) *dataset.Frame {
	b.Helper()

	records := make([][]string, rows)
	for i := range records {
		num := fmt.Sprint(i % 97)
		if i%7 == 0 {
			num = ""
		}
		records[i] = []string{num, fmt.Sprint(float64(i) * 0.5), fmt.Sprintf("c%d", i%13), fmt.Sprintf("k%d", i%5)}
	}
	frame, err := dataset.NewFrame([]string{"a", "b", "c", "d"}, records)
	if err != nil {
		b.Fatal(err)
	}
	return frame
}

func BenchmarkFit(b *testing.B) {
	quiet := WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, rows := range []int{1000, 100000} {
		frame := benchFrame(b, rows)
		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := Fit(context.Background(), frame, quiet); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkTransform(b *testing.B) {
	quiet := WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	fitted, _, err := Fit(context.Background(), benchFrame(b, 10000), quiet)
	if err != nil {
		b.Fatal(err)
	}
	frame := benchFrame(b, 10000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fitted.Transform(context.Background(), frame, quiet); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTransformParallel(b *testing.B) {
	quiet := WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	p := New(quiet)
	if _, err := p.Preprocess(context.Background(), benchFrame(b, 10000), true); err != nil {
		b.Fatal(err)
	}
	frame := benchFrame(b, 1000)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := p.Preprocess(context.Background(), frame, false); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
