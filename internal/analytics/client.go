package analytics

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"golang.org/x/oauth2/google"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

const (
	dateDimension   = "date"
	pageViewsMetric = "screenPageViews"
)

// CredentialLoader resolves a credential reference to service account JSON.
type CredentialLoader interface {
	ReadCredential(ctx context.Context, ref string) ([]byte, error)
}

// ServiceFactory opens a read-only Data API session from service account JSON.
type ServiceFactory func(ctx context.Context, credentialsJSON []byte) (*analyticsdata.Service, error)

type Client struct {
	registry    *Registry
	credentials CredentialLoader
	newService  ServiceFactory
	logger      *slog.Logger
}

type ClientOption func(*Client)

func WithServiceFactory(f ServiceFactory) ClientOption {
	return func(c *Client) {
		c.newService = f
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(registry *Registry, credentials CredentialLoader, opts ...ClientOption) *Client {
	c := &Client{
		registry:    registry,
		credentials: credentials,
		newService:  NewReadOnlyService,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewReadOnlyService exchanges the service account for a token scoped to
// analytics.readonly and builds a Data API client on top of it.
func NewReadOnlyService(ctx context.Context, credentialsJSON []byte) (*analyticsdata.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, analyticsdata.AnalyticsReadonlyScope)
	if err != nil {
		return nil, NewError(AuthenticationError, "loading service account: %w", err)
	}
	if _, err := creds.TokenSource.Token(); err != nil {
		return nil, NewError(AuthenticationError, "exchanging service account token: %w", err)
	}
	return analyticsdata.NewService(ctx, option.WithTokenSource(creds.TokenSource))
}

// Registry exposes the registry the client resolves websites against.
func (c *Client) Registry() *Registry {
	return c.registry
}

// FetchDailyViews runs one date/screenPageViews report for website over r.
// Rows come back in backend order; an empty report is not an error.
func (c *Client) FetchDailyViews(ctx context.Context, website string, r DateRange) ([]DailySample, error) {
	property, err := c.registry.Lookup(website)
	if err != nil {
		return nil, err
	}

	service, err := c.session(ctx, property)
	if err != nil {
		return nil, err
	}

	request := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{
			{StartDate: r.StartDate(), EndDate: r.EndDate()},
		},
		Dimensions: []*analyticsdata.Dimension{{Name: dateDimension}},
		Metrics:    []*analyticsdata.Metric{{Name: pageViewsMetric}},
	}
	response, err := service.Properties.RunReport(property.Resource(), request).Context(ctx).Do()
	if err != nil {
		return nil, NewError(BackendError, "running report for %s: %w", website, err)
	}

	samples := make([]DailySample, 0, len(response.Rows))
	for i, row := range response.Rows {
		sample, err := toSample(row)
		if err != nil {
			return nil, NewError(BackendError, "report row %d for %s: %w", i, website, err)
		}
		samples = append(samples, sample)
	}

	c.logger.Debug("Fetched analytics report",
		slog.String("website", website),
		slog.String("start", r.StartDate()),
		slog.Int("rows", len(samples)),
	)
	return samples, nil
}

func (c *Client) session(ctx context.Context, property Property) (*analyticsdata.Service, error) {
	credentialsJSON, err := c.credentials.ReadCredential(ctx, property.Credentials)
	if err != nil {
		return nil, NewError(AuthenticationError, "reading credentials for %s: %w", property.Name, err)
	}
	service, err := c.newService(ctx, credentialsJSON)
	if err != nil {
		if KindOf(err) != "" {
			return nil, err
		}
		return nil, NewError(AuthenticationError, "opening analytics session for %s: %w", property.Name, err)
	}
	return service, nil
}

func toSample(row *analyticsdata.Row) (DailySample, error) {
	if row == nil || len(row.DimensionValues) == 0 || row.DimensionValues[0] == nil || row.DimensionValues[0].Value == "" {
		return DailySample{}, errors.New("missing date dimension")
	}
	if len(row.MetricValues) == 0 || row.MetricValues[0] == nil {
		return DailySample{}, errors.New("missing page view metric")
	}

	views, err := strconv.ParseInt(row.MetricValues[0].Value, 10, 64)
	if err != nil {
		return DailySample{}, err
	}
	if views < 0 {
		return DailySample{}, errors.New("negative page view count")
	}
	return DailySample{
		Date:  row.DimensionValues[0].Value,
		Views: views,
	}, nil
}
