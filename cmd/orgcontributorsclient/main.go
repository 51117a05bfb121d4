// Package main implements very simple client that can be used for testing orgcontributors http and grpc servers.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	appGrpc "github.com/m-zajac/orgcontributors/internal/api/grpc"
	"github.com/m-zajac/orgcontributors/internal/app"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:          "orgcontributorsclient",
		Short:        "Queries orgcontributors server for ranked contributors of github organization",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")

	var httpAddr string
	httpCmd := &cobra.Command{
		Use:   "http ORG",
		Short: "Query http server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			contributors, err := queryHTTP(ctx, httpAddr, args[0])
			if err != nil {
				return err
			}
			printContributors(cmd.OutOrStdout(), contributors)
			return nil
		},
	}
	httpCmd.Flags().StringVarP(&httpAddr, "addr", "s", "http://localhost:8080", "The server address with protocol")

	var grpcAddr string
	grpcCmd := &cobra.Command{
		Use:   "grpc ORG",
		Short: "Query grpc server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return fmt.Errorf("failed to dial: %w", err)
			}
			defer conn.Close()

			contributors, err := appGrpc.NewClient(conn).OrgContributors(ctx, args[0])
			if err != nil {
				return fmt.Errorf("server response error: %w", err)
			}
			printContributors(cmd.OutOrStdout(), contributors)
			return nil
		},
	}
	grpcCmd.Flags().StringVarP(&grpcAddr, "addr", "s", "localhost:9090", "The server address in the format of host:port")

	root.AddCommand(httpCmd, grpcCmd)

	return root
}

type httpResponse struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  string              `json:"error"`
}

type httpContributor struct {
	Name          string `json:"name"`
	Contributions uint   `json:"contributions"`
}

func queryHTTP(ctx context.Context, addr string, org string) ([]app.RankedContributor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/org/"+url.PathEscape(org)+"/contributors", nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doing http request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading http response body: %w", err)
	}

	var r httpResponse
	if err := jsoniter.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("unmarshalling response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server response error (status %d): %s", resp.StatusCode, r.Error)
	}

	var cs []httpContributor
	if err := jsoniter.Unmarshal(r.Result, &cs); err != nil {
		return nil, fmt.Errorf("unmarshalling result: %w", err)
	}
	contributors := make([]app.RankedContributor, 0, len(cs))
	for _, c := range cs {
		contributors = append(contributors, app.RankedContributor(c))
	}

	return contributors, nil
}

func printContributors(w io.Writer, contributors []app.RankedContributor) {
	fmt.Fprint(w, "Contributions | Login\n")
	fmt.Fprint(w, "---------------------------\n")
	for _, c := range contributors {
		fmt.Fprintf(w, "%13d | %s\n", c.Contributions, c.Name)
	}
}
