package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/stollenaar/analyticsbot/internal/util/charts"
)

// Renders a chart from made up samples so the layout can be eyeballed without
// Discord or analytics credentials.
func main() {
	duration := flag.String("duration", "28", "duration token, e.g. 7 or 3m")
	out := flag.String("out", charts.FileName, "where to write the PNG")
	flag.Parse()

	r, err := analytics.ParseDuration(*duration)
	if err != nil {
		log.Fatal(err)
	}

	start, _ := r.Resolve(time.Now())
	samples := make([]analytics.DailySample, 0, r.Days+1)
	for day := 0; day <= r.Days; day++ {
		samples = append(samples, analytics.DailySample{
			Date:  start.AddDate(0, 0, day).Format("20060102"),
			Views: rand.Int63n(500),
		})
	}

	image, err := charts.RenderLineChart(charts.Title("Debug", r), samples)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, image, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %d samples (total %d) to %s\n", len(samples), analytics.Total(samples), *out)
}
