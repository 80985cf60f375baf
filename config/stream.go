package config

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// StreamConfig defines the Kinesis destination for published records.
type StreamConfig struct {
	Region   string `mapstructure:"region"`
	Name     string `mapstructure:"name"`
	Endpoint string `mapstructure:"endpoint"` // optional override, e.g. localstack
}

// ResolveName returns the stream name to publish to. In prod the name is
// taken from Parameter Store so deployments can repoint the destination
// without shipping a new config file; anywhere else the local value is used.
func (cfg *StreamConfig) ResolveName(env string) string {
	if env == "prod" {
		if name := getParameterStoreValue("QUOTESTREAM_STREAM_NAME", false); name != "" {
			return name
		}
	}

	return cfg.Name
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	baseCtx := context.Background()
	ctxWithTimeout, cancel := context.WithTimeout(baseCtx, 5*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return ""
	}

	if result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
