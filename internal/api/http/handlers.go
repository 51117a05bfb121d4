package http

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/orgcontributors/internal/app"
	"github.com/sirupsen/logrus"
)

// Service can return ranked contributors of organization.
//
//go:generate mockgen -destination mock/service.go -package mock github.com/m-zajac/orgcontributors/internal/api/http Service
type Service interface {
	Aggregate(ctx context.Context, org string) ([]app.RankedContributor, error)
}

type contributor struct {
	Name          string `json:"name"`
	Contributions uint   `json:"contributions"`
}

// contributorsResponse has same shape for successful and failed requests.
// Result is a list of contributors or empty string on error.
type contributorsResponse struct {
	Result interface{} `json:"result"`
	Error  string      `json:"error"`
}

func newContributorsResponse(contributions []app.RankedContributor) contributorsResponse {
	contributors := make([]contributor, 0, len(contributions))
	for _, c := range contributions {
		contributors = append(contributors, contributor{
			Name:          c.Name,
			Contributions: c.Contributions,
		})
	}

	return contributorsResponse{
		Result: contributors,
		Error:  "",
	}
}

type aggregateResult struct {
	contributions []app.RankedContributor
	err           error
}

// NewContributorsHandler creates handlerfunc returning organization contributors response.
// Any service error results in status 418.
// When request context is done first, handler responds with the context error and the
// aggregation continues in the background.
func NewContributorsHandler(
	getOrg func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		org := getOrg(r)

		done := make(chan aggregateResult, 1)
		go func() {
			contributions, err := service.Aggregate(r.Context(), org)
			done <- aggregateResult{contributions: contributions, err: err}
		}()

		var res aggregateResult
		select {
		case res = <-done:
		case <-r.Context().Done():
			res.err = fmt.Errorf("waiting for %s contributors: %w", org, r.Context().Err())
		}

		contributions, err := res.contributions, res.err
		if err != nil {
			l.WithField("org", org).Warnf("service error: %v", err)
			writeJSON(w, http.StatusTeapot, contributorsResponse{
				Result: "",
				Error:  err.Error(),
			}, l)
			return
		}

		writeJSON(w, http.StatusOK, newContributorsResponse(contributions), l)
	}
}

// NewRootHandler creates handlerfunc returning short service info.
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("orgcontributors - github organization contributors ranking. See /swagger-ui/index.html\n"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, l logrus.FieldLogger) {
	w.Header().Set("Content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := jsoniter.ConfigFastest.NewEncoder(w).Encode(v); err != nil {
		l.Errorf("encoding response: %v", err)
	}
}
