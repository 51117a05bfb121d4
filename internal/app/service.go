package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GithubClient returns pages of github organization repositories and repository contributors.
// Page index is zero-based.
//
//go:generate mockgen -destination mock/githubclient.go -package mock github.com/m-zajac/orgcontributors/internal/app GithubClient
type GithubClient interface {
	OrgReposPage(ctx context.Context, org string, page int, perPage int) (Page[Repository], error)
	ContributorsPage(ctx context.Context, owner string, repo string, page int, perPage int) (Page[ContributorRecord], error)
}

// Service is main apps entry point. Provides all app functionality
type Service struct {
	githubClient   GithubClient
	maxConcurrency int
	l              logrus.FieldLogger
}

// ServiceOption configures Service.
type ServiceOption func(*Service)

// WithMaxConcurrency limits number of contributors listings running at the same time.
// Values <= 0 mean no limit.
func WithMaxConcurrency(n int) ServiceOption {
	return func(s *Service) {
		s.maxConcurrency = n
	}
}

// NewService creates new Service instance
func NewService(githubClient GithubClient, l logrus.FieldLogger, opts ...ServiceOption) *Service {
	s := &Service{
		githubClient: githubClient,
		l:            l,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListRepositories returns all repositories of given owner.
func (s *Service) ListRepositories(ctx context.Context, owner string) ([]RepositoryRef, error) {
	repos, err := FetchAll(ctx, 0, func(ctx context.Context, page int) (Page[Repository], error) {
		return s.githubClient.OrgReposPage(ctx, owner, page, MaxPageSize)
	})
	if err != nil {
		return nil, &FetchError{
			Listing: owner + " repositories",
			Err:     err,
		}
	}

	refs := make([]RepositoryRef, 0, len(repos))
	for _, r := range repos {
		if r.Owner == nil {
			return nil, &FetchError{
				Listing: owner + " repositories",
				Err:     &DataError{Reason: fmt.Sprintf("repository %q has no owner", r.Name)},
			}
		}
		refs = append(refs, RepositoryRef{
			Owner: r.Owner.Login,
			Name:  r.Name,
		})
	}

	return refs, nil
}

// ListContributors returns all contributors of given repository.
func (s *Service) ListContributors(ctx context.Context, owner string, repo string) ([]ContributorRecord, error) {
	return FetchAll(ctx, 0, func(ctx context.Context, page int) (Page[ContributorRecord], error) {
		return s.githubClient.ContributorsPage(ctx, owner, repo, page, MaxPageSize)
	})
}

// Aggregate returns contributors of all organization repositories, sorted by contributions count.
// Contributor appears once for every repository they contributed to, counts are not summed.
// Fails if listing of any repository fails. Started listings are not cancelled by the caller
// or by a failing sibling, each one runs until it completes or fails.
func (s *Service) Aggregate(ctx context.Context, org string) (result []RankedContributor, err error) {
	if org == "" {
		return nil, InvalidRequestError("organization name cannot be empty")
	}

	l := s.l.WithField("org", org)
	l.Info("getting contributors")

	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	defer func() {
		aggregationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			aggregationsTotal.WithLabelValues("error").Inc()
			l.Errorf("aggregation failed: %v", err)
			return
		}
		aggregationsTotal.WithLabelValues("ok").Inc()
		l.WithField("contributors", len(result)).Debugf("aggregation done in %s", time.Since(start))
	}()

	repos, err := s.ListRepositories(ctx, org)
	if err != nil {
		return nil, &AggregationError{Org: org, Err: err}
	}
	l.WithField("repositories", len(repos)).Debug("got repositories")

	contributors := make([][]ContributorRecord, len(repos))
	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}
	for i, r := range repos {
		i, r := i, r
		g.Go(func() error {
			cs, err := s.ListContributors(ctx, r.Owner, r.Name)
			if err != nil {
				return &FetchError{
					Listing: r.Owner + "/" + r.Name + " contributors",
					Err:     err,
				}
			}
			contributors[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &AggregationError{Org: org, Err: err}
	}

	return rank(contributors), nil
}

func rank(contributors [][]ContributorRecord) []RankedContributor {
	var size int
	for _, cs := range contributors {
		size += len(cs)
	}

	result := make([]RankedContributor, 0, size)
	for _, cs := range contributors {
		for _, c := range cs {
			result = append(result, RankedContributor{
				Name:          c.Login,
				Contributions: c.Contributions,
			})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Contributions > result[j].Contributions
	})

	return result
}
