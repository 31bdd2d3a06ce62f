package analyticscommand

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/stollenaar/analyticsbot/internal/util"
	"github.com/stollenaar/analyticsbot/internal/util/charts"
)

type State int

const (
	AwaitingWebsite State = iota
	AwaitingDuration
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingWebsite:
		return "AwaitingWebsite"
	case AwaitingDuration:
		return "AwaitingDuration"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Fetcher returns the per day page views of a website.
type Fetcher interface {
	FetchDailyViews(ctx context.Context, website string, r analytics.DateRange) ([]analytics.DailySample, error)
}

// Renderer turns samples into a PNG.
type Renderer func(title string, samples []analytics.DailySample) ([]byte, error)

// Pipeline holds what every flow shares. All of it is read-only.
type Pipeline struct {
	Registry *analytics.Registry
	Fetcher  Fetcher
	Render   Renderer
	Logger   *slog.Logger
}

func NewPipeline(client *analytics.Client, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		Registry: client.Registry(),
		Fetcher:  client,
		Render:   charts.RenderLineChart,
		Logger:   logger,
	}
}

// Result is what a completed flow hands back to the chat platform.
type Result struct {
	analytics.Report
	Image []byte
}

// Flow is one website -> duration -> reply run. Flows are not reused.
type Flow struct {
	State   State
	Website string
	Result  *Result
	Err     error

	pipeline *Pipeline
}

func (p *Pipeline) NewFlow() *Flow {
	return &Flow{
		State:    AwaitingWebsite,
		pipeline: p,
	}
}

// Run drives a fresh flow through both selections.
func (p *Pipeline) Run(ctx context.Context, website, duration string) *Flow {
	f := p.NewFlow()
	if err := f.SelectWebsite(website); err != nil {
		return f
	}
	f.SelectDuration(ctx, duration)
	return f
}

// SelectWebsite moves to AwaitingDuration, or to Failed for an unregistered website.
func (f *Flow) SelectWebsite(website string) error {
	if f.State != AwaitingWebsite {
		return fmt.Errorf("website selected while %s", f.State)
	}
	f.Website = website
	if _, err := f.pipeline.Registry.Lookup(website); err != nil {
		return f.fail(err)
	}
	f.State = AwaitingDuration
	return nil
}

// SelectDuration parses the token, fetches, totals and renders. Any error
// ends the flow in Failed without running the remaining steps.
func (f *Flow) SelectDuration(ctx context.Context, token string) (*Result, error) {
	if f.State != AwaitingDuration {
		return nil, fmt.Errorf("duration selected while %s", f.State)
	}

	r, err := analytics.ParseDuration(token)
	if err != nil {
		return nil, f.fail(err)
	}

	done := util.Elapsed(f.pipeline.Logger, "fetch daily views")
	samples, err := f.pipeline.Fetcher.FetchDailyViews(ctx, f.Website, r)
	done()
	if err != nil {
		return nil, f.fail(err)
	}

	image, err := f.pipeline.Render(charts.Title(f.Website, r), samples)
	if err != nil {
		if analytics.KindOf(err) == "" {
			err = &analytics.Error{Kind: analytics.RenderError, Err: err}
		}
		return nil, f.fail(err)
	}

	f.Result = &Result{
		Report: analytics.Report{
			Website: f.Website,
			Range:   r,
			Samples: samples,
			Total:   analytics.Total(samples),
		},
		Image: image,
	}
	f.State = Completed
	return f.Result, nil
}

func (f *Flow) fail(err error) error {
	f.State = Failed
	f.Err = err
	f.pipeline.Logger.Warn("Analytics flow failed",
		slog.String("website", f.Website),
		slog.String("kind", string(analytics.KindOf(err))),
		slog.Any("err", err),
	)
	return err
}
