// Command analysis sweeps the forward transform latency over a range of
// message lengths and renders the measurements as a JSON report and an HTML
// chart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"github.com/Pro7ech/antt"
	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils/sampling"
)

type summaryStats struct {
	Count  int     `json:"count"`
	MeanUS float64 `json:"mean_us"`
	StdUS  float64 `json:"std_us"`
	MinUS  float64 `json:"min_us"`
	MedUS  float64 `json:"median_us"`
	P95US  float64 `json:"p95_us"`
	MaxUS  float64 `json:"max_us"`
}

type sweepRow struct {
	FieldDegree int          `json:"field_degree"`
	LogN        int          `json:"logn"`
	LogRate     int          `json:"lograte"`
	CodewordLen int          `json:"codeword_len"`
	Workers     int          `json:"workers"`
	Serial      summaryStats `json:"serial"`
	Concurrent  summaryStats `json:"concurrent"`
}

func computeStats(durations []time.Duration) summaryStats {

	values := make([]float64, len(durations))
	for i, d := range durations {
		values[i] = float64(d.Nanoseconds()) / 1e3
	}

	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)
	minv, _ := stats.Min(values)
	median, _ := stats.Median(values)
	p95, _ := stats.Percentile(values, 95)
	maxv, _ := stats.Max(values)

	return summaryStats{
		Count:  len(values),
		MeanUS: mean,
		StdUS:  std,
		MinUS:  minv,
		MedUS:  median,
		P95US:  p95,
		MaxUS:  maxv,
	}
}

func measure(a *antt.AdditiveNTT, p1, p2 []gf.Element, samples int) summaryStats {

	// Warm up caches and the scheduler before taking timings.
	a.Forward(p1, p2)

	durations := make([]time.Duration, samples)
	for s := range durations {
		start := time.Now()
		a.Forward(p1, p2)
		durations[s] = time.Since(start)
	}

	return computeStats(durations)
}

func newLatencyChart(title string, logNs []int, serial, concurrent []float64) *charts.Line {

	xLabels := make([]string, len(logNs))
	for i, logN := range logNs {
		xLabels[i] = fmt.Sprintf("2^%d", logN)
	}

	toItems := func(vals []float64) []opts.LineData {
		out := make([]opts.LineData, len(vals))
		for i, v := range vals {
			out[i] = opts.LineData{Value: v}
		}
		return out
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "median forward latency (us)"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "log"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(xLabels).
		AddSeries("serial", toItems(serial)).
		AddSeries("concurrent", toItems(concurrent)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))

	return line
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func main() {

	m := flag.Int("m", 16, "field extension degree")
	logRate := flag.Int("lograte", 2, "log2 of the rate expansion factor")
	logNMin := flag.Int("logn-min", 8, "log2 of the smallest message length")
	logNMax := flag.Int("logn-max", 14, "log2 of the largest message length")
	samples := flag.Int("samples", 50, "timed transforms per configuration")
	workers := flag.Int("workers", 0, "workers for the concurrent transformer (0 = GOMAXPROCS)")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	if *logNMin > *logNMax {
		log.Fatalf("invalid sweep range: logn-min=%d > logn-max=%d", *logNMin, *logNMax)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	var rows []sweepRow
	var logNs []int
	var serialMed, concurrentMed []float64

	for logN := *logNMin; logN <= *logNMax; logN++ {

		p := antt.Parameters{FieldDegree: *m, LogN: logN, LogRate: *logRate}

		serial, err := antt.NewAdditiveNTT(p)
		if err != nil {
			log.Fatalf("NewAdditiveNTT: %v", err)
		}

		concurrent, err := antt.NewAdditiveNTTConcurrent(p, *workers)
		if err != nil {
			log.Fatalf("NewAdditiveNTTConcurrent: %v", err)
		}

		u := gf.NewUniformSampler(sampling.NewSource(sampling.NewSeed()), serial.Field())

		p1 := u.ReadNew(serial.N())
		p2 := make([]gf.Element, serial.CodewordLen())

		log.Printf("[analysis] m=%d logN=%d logRate=%d (%d samples)", *m, logN, *logRate, *samples)

		row := sweepRow{
			FieldDegree: *m,
			LogN:        logN,
			LogRate:     *logRate,
			CodewordLen: serial.CodewordLen(),
			Workers:     *workers,
			Serial:      measure(serial, p1, p2, *samples),
			Concurrent:  measure(concurrent, p1, p2, *samples),
		}

		rows = append(rows, row)
		logNs = append(logNs, logN)
		serialMed = append(serialMed, row.Serial.MedUS)
		concurrentMed = append(concurrentMed, row.Concurrent.MedUS)
	}

	ts := time.Now().Format("20060102_150405")

	jsonPath := filepath.Join(*outDir, fmt.Sprintf("ntt_latency_%s.json", ts))
	if err := saveJSON(jsonPath, rows); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	page.AddCharts(newLatencyChart(
		fmt.Sprintf("Additive NTT over GF(2^%d), rate 2^-%d", *m, *logRate),
		logNs, serialMed, concurrentMed,
	))

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("ntt_latency_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}

	fmt.Println("Latency chart:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}
