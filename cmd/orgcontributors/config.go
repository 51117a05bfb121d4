package main

import "time"

// Config is the container for app configuration
type Config struct {
	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// GRPCServerAddress - listen address for grpc server. If empty, grpc server is disabled
	GRPCServerAddress string `default:"0.0.0.0:9090"`

	// ServiceResponseTimeout - timeout for aggregation requests. Zero means no timeout
	ServiceResponseTimeout time.Duration `default:"0"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - auth token for rest github api (optional, rate limit is lower without this token)
	GithubAPIToken string `envconfig:"GH_TOKEN" default:""`

	// GithubAPIRateLimit - max frequency for github rest api calls. Zero means no limit
	GithubAPIRateLimit float64 `default:"0"`

	// GithubHTTPTimeout - timeout for single github api call
	GithubHTTPTimeout time.Duration `default:"30s"`

	// MaxConcurrentFetches - max number of repositories listed concurrently. Zero means no limit
	MaxConcurrentFetches int `default:"0"`

	// LogLevel - one of logrus levels: debug, info, warning, error
	LogLevel string `default:"info"`
}
