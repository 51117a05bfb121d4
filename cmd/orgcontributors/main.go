package main

import (
	netHttp "net/http"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/orgcontributors/internal/adapter/github"
	"github.com/m-zajac/orgcontributors/internal/api/grpc"
	"github.com/m-zajac/orgcontributors/internal/api/http"
	"github.com/m-zajac/orgcontributors/internal/api/http/limiter"
	"github.com/m-zajac/orgcontributors/internal/app"
	"github.com/sirupsen/logrus"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		l.Fatalf("invalid log level: %v", err)
	}
	l.Level = level

	if conf.GithubAPIToken != "" {
		l.Info("using GH_TOKEN env variable")
	} else {
		l.Error("GH_TOKEN env variable not found")
	}

	httpClient := &netHttp.Client{
		Timeout: conf.GithubHTTPTimeout,
	}
	limitedHTTPClient := limiter.NewHTTPDoer(
		httpClient,
		conf.GithubAPIRateLimit,
	)

	githubClient := github.NewClient(
		limitedHTTPClient,
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
	)

	service := app.NewService(
		githubClient,
		l.WithField("component", "service"),
		app.WithMaxConcurrency(conf.MaxConcurrentFetches),
	)

	mux := http.NewMux(service, conf.ServiceResponseTimeout, l.WithField("component", "mux"))
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		server.Run()
		wg.Done()
	}()

	if conf.GRPCServerAddress != "" {
		grpcService := grpc.NewService(service, l.WithField("component", "grpcService"))
		grpcServer := grpc.NewServer(
			grpcService,
			conf.GRPCServerAddress,
			l.WithField("component", "grpcServer"),
		)
		wg.Add(1)
		go func() {
			if err := grpcServer.Run(); err != nil {
				l.Fatalf("couldn't run grpc server: %v", err)
			}
			wg.Done()
		}()
	}

	wg.Wait()
}
