package util

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/disgoorg/disgo/discord"
	"github.com/joho/godotenv"
	"github.com/stollenaar/aws-rotating-credentials-provider/credentials/filecreds"
)

const (
	ssmPrefix           = "ssm:"
	defaultRegistryPath = "properties.yaml"
)

// ParameterStore is the part of the SSM client used to resolve secrets.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type Config struct {
	DEBUG         bool
	DISCORD_TOKEN string
	REGISTRY_PATH string

	AWS_REGION                  string
	AWS_PARAMETER_NAME          string
	AWS_SHARED_CREDENTIALS_FILE string

	ssmClient ParameterStore
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	c := &Config{
		DEBUG:                       strings.EqualFold(os.Getenv("DEBUG"), "true"),
		DISCORD_TOKEN:               os.Getenv("DISCORD_TOKEN"),
		REGISTRY_PATH:               os.Getenv("REGISTRY_PATH"),
		AWS_REGION:                  os.Getenv("AWS_REGION"),
		AWS_PARAMETER_NAME:          os.Getenv("AWS_PARAMETER_NAME"),
		AWS_SHARED_CREDENTIALS_FILE: os.Getenv("AWS_SHARED_CREDENTIALS_FILE"),
	}
	if c.REGISTRY_PATH == "" {
		c.REGISTRY_PATH = defaultRegistryPath
	}
	if c.DISCORD_TOKEN == "" && c.AWS_PARAMETER_NAME == "" {
		return nil, errors.New("DISCORD_TOKEN or AWS_PARAMETER_NAME is not set")
	}
	return c, nil
}

// WithParameterStore replaces the lazily created SSM client.
func (c *Config) WithParameterStore(store ParameterStore) *Config {
	c.ssmClient = store
	return c
}

func (c *Config) parameterStore(ctx context.Context) (ParameterStore, error) {
	if c.ssmClient != nil {
		return c.ssmClient, nil
	}

	if c.AWS_SHARED_CREDENTIALS_FILE != "" {
		provider := filecreds.NewFilecredentialsProvider(c.AWS_SHARED_CREDENTIALS_FILE)
		c.ssmClient = ssm.New(ssm.Options{
			Credentials: provider,
			Region:      c.AWS_REGION,
		})
		return c.ssmClient, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(c.AWS_REGION))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	c.ssmClient = ssm.NewFromConfig(cfg)
	return c.ssmClient, nil
}

// GetDiscordToken prefers DISCORD_TOKEN and falls back to the SSM parameter.
func (c *Config) GetDiscordToken(ctx context.Context) (string, error) {
	if c.DISCORD_TOKEN != "" {
		return c.DISCORD_TOKEN, nil
	}
	return c.getAWSParameter(ctx, c.AWS_PARAMETER_NAME)
}

// ReadCredential resolves a credential reference: "ssm:<name>" reads the SSM
// parameter, anything else is a path to a service account file.
func (c *Config) ReadCredential(ctx context.Context, ref string) ([]byte, error) {
	if name, ok := strings.CutPrefix(ref, ssmPrefix); ok {
		value, err := c.getAWSParameter(ctx, name)
		if err != nil {
			return nil, err
		}
		return []byte(value), nil
	}
	return os.ReadFile(ref)
}

func (c *Config) getAWSParameter(ctx context.Context, parameterName string) (string, error) {
	store, err := c.parameterStore(ctx)
	if err != nil {
		return "", err
	}
	out, err := store.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(parameterName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("error from fetching parameter %s: %w", parameterName, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", parameterName)
	}
	return *out.Parameter.Value, nil
}

func (c *Config) SetEphemeral() discord.MessageFlags {
	if c.DEBUG {
		return discord.MessageFlagEphemeral
	}
	return 0
}

// Logger builds the process logger; debug level when DEBUG is set.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.DEBUG {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
