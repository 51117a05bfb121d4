package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/orgcontributors/internal/app"
	"github.com/m-zajac/orgcontributors/internal/app/mock"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reposPage(hasNext bool, refs ...app.RepositoryRef) app.Page[app.Repository] {
	p := app.Page[app.Repository]{HasNext: hasNext}
	for _, r := range refs {
		p.Items = append(p.Items, app.Repository{
			Name:  r.Name,
			Owner: &app.Owner{Login: r.Owner},
		})
	}
	return p
}

func contributorsPage(hasNext bool, cs ...app.ContributorRecord) app.Page[app.ContributorRecord] {
	return app.Page[app.ContributorRecord]{
		Items:   cs,
		HasNext: hasNext,
	}
}

func TestServiceAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		org       string
		setupMock func(*mock.MockGithubClient)
		want      []app.RankedContributor
		wantErr   bool
	}{
		{
			name:    "empty org",
			org:     "",
			want:    nil,
			wantErr: true,
		},
		{
			name: "repositories error on second page",
			org:  "acme",
			setupMock: func(m *mock.MockGithubClient) {
				gomock.InOrder(
					m.EXPECT().
						OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
						Return(reposPage(true, app.RepositoryRef{Owner: "acme", Name: "r1"}), nil),
					m.EXPECT().
						OrgReposPage(gomock.Any(), "acme", 1, app.MaxPageSize).
						Return(app.Page[app.Repository]{}, &app.TransportError{StatusCode: 502, Err: errors.New("bad gateway")}),
				)
			},
			want:    nil,
			wantErr: true,
		},
		{
			name: "no repositories",
			org:  "acme",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
					Return(reposPage(false), nil)
			},
			want:    []app.RankedContributor{},
			wantErr: false,
		},
		{
			name: "repository without owner",
			org:  "acme",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
					Return(app.Page[app.Repository]{
						Items: []app.Repository{{Name: "r1"}},
					}, nil)
			},
			want:    nil,
			wantErr: true,
		},
		{
			name: "contributors kept per repository, sorted",
			org:  "acme",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
					Return(reposPage(false,
						app.RepositoryRef{Owner: "acme", Name: "r1"},
						app.RepositoryRef{Owner: "acme", Name: "r2"},
					), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "r1", 0, app.MaxPageSize).
					Return(contributorsPage(false, app.ContributorRecord{Login: "alice", Contributions: 10}), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "r2", 0, app.MaxPageSize).
					Return(contributorsPage(false,
						app.ContributorRecord{Login: "bob", Contributions: 20},
						app.ContributorRecord{Login: "alice", Contributions: 5},
					), nil)
			},
			want: []app.RankedContributor{
				{Name: "bob", Contributions: 20},
				{Name: "alice", Contributions: 10},
				{Name: "alice", Contributions: 5},
			},
			wantErr: false,
		},
		{
			name: "paginated contributors, empty repository, equal counts keep order",
			org:  "acme",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
					Return(reposPage(true,
						app.RepositoryRef{Owner: "acme", Name: "r1"},
					), nil)
				m.EXPECT().
					OrgReposPage(gomock.Any(), "acme", 1, app.MaxPageSize).
					Return(reposPage(false,
						app.RepositoryRef{Owner: "acme", Name: "empty"},
						app.RepositoryRef{Owner: "acme", Name: "r2"},
					), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "r1", 0, app.MaxPageSize).
					Return(contributorsPage(true, app.ContributorRecord{Login: "c1", Contributions: 3}), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "r1", 1, app.MaxPageSize).
					Return(contributorsPage(false, app.ContributorRecord{Login: "c2", Contributions: 7}), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "empty", 0, app.MaxPageSize).
					Return(contributorsPage(false), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "r2", 0, app.MaxPageSize).
					Return(contributorsPage(false,
						app.ContributorRecord{Login: "c3", Contributions: 3},
						app.ContributorRecord{Login: "c4", Contributions: 7},
					), nil)
			},
			want: []app.RankedContributor{
				{Name: "c2", Contributions: 7},
				{Name: "c4", Contributions: 7},
				{Name: "c1", Contributions: 3},
				{Name: "c3", Contributions: 3},
			},
			wantErr: false,
		},
		{
			name: "single contributors error fails whole aggregation",
			org:  "acme",
			setupMock: func(m *mock.MockGithubClient) {
				var refs []app.RepositoryRef
				for i := 0; i < 10; i++ {
					refs = append(refs, app.RepositoryRef{Owner: "acme", Name: fmt.Sprintf("r%d", i)})
				}
				m.EXPECT().
					OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
					Return(reposPage(false, refs...), nil)
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", "r5", 0, app.MaxPageSize).
					Return(app.Page[app.ContributorRecord]{}, &app.TransportError{Err: errors.New("connection reset")})
				m.EXPECT().
					ContributorsPage(gomock.Any(), "acme", gomock.Not("r5"), 0, app.MaxPageSize).
					Return(contributorsPage(false, app.ContributorRecord{Login: "c", Contributions: 1}), nil).
					AnyTimes()
			},
			want:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			githubCli := mock.NewMockGithubClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(githubCli)
			}

			l, _ := logrustest.NewNullLogger()
			s := app.NewService(githubCli, l)
			got, err := s.Aggregate(context.Background(), tt.org)
			require.Equal(t, tt.wantErr, err != nil, "err: %v", err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceAggregateErrors(t *testing.T) {
	t.Parallel()

	t.Run("repositories listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := mock.NewMockGithubClient(ctrl)
		m.EXPECT().
			OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
			Return(app.Page[app.Repository]{}, &app.TransportError{StatusCode: 404, Err: errors.New("got invalid http status code: 404")})

		l, _ := logrustest.NewNullLogger()
		_, err := app.NewService(m, l).Aggregate(context.Background(), "acme")
		require.Error(t, err)
		assert.Equal(t, "unable to fetch acme repositories: got invalid http status code: 404", err.Error())

		var ae *app.AggregationError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "acme", ae.Org)

		var te *app.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 404, te.StatusCode)
	})

	t.Run("missing owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := mock.NewMockGithubClient(ctrl)
		m.EXPECT().
			OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
			Return(app.Page[app.Repository]{
				Items: []app.Repository{{Name: "orphan"}},
			}, nil)

		l, _ := logrustest.NewNullLogger()
		_, err := app.NewService(m, l).Aggregate(context.Background(), "acme")

		var de *app.DataError
		require.True(t, errors.As(err, &de))
		assert.Contains(t, err.Error(), `repository "orphan" has no owner`)
	})

	t.Run("contributors listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := mock.NewMockGithubClient(ctrl)
		m.EXPECT().
			OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
			Return(reposPage(false, app.RepositoryRef{Owner: "acme", Name: "r1"}), nil)
		m.EXPECT().
			ContributorsPage(gomock.Any(), "acme", "r1", 0, app.MaxPageSize).
			Return(app.Page[app.ContributorRecord]{}, &app.TransportError{Err: errors.New("timeout")})

		l, _ := logrustest.NewNullLogger()
		_, err := app.NewService(m, l).Aggregate(context.Background(), "acme")
		require.Error(t, err)
		assert.Equal(t, "unable to fetch acme/r1 contributors: timeout", err.Error())
		assert.True(t, app.IsFetchError(err))
	})

	t.Run("invalid request", func(t *testing.T) {
		l, _ := logrustest.NewNullLogger()
		_, err := app.NewService(nil, l).Aggregate(context.Background(), "")
		assert.True(t, app.IsInvalidRequestError(err))
	})
}

func TestServiceAggregateMaxConcurrency(t *testing.T) {
	t.Parallel()

	const (
		reposCount     = 10
		maxConcurrency = 3
	)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var refs []app.RepositoryRef
	for i := 0; i < reposCount; i++ {
		refs = append(refs, app.RepositoryRef{Owner: "acme", Name: fmt.Sprintf("r%d", i)})
	}

	var inFlight, maxInFlight int64
	m := mock.NewMockGithubClient(ctrl)
	m.EXPECT().
		OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
		Return(reposPage(false, refs...), nil)
	m.EXPECT().
		ContributorsPage(gomock.Any(), "acme", gomock.Any(), 0, app.MaxPageSize).
		DoAndReturn(func(ctx context.Context, owner string, repo string, page int, perPage int) (app.Page[app.ContributorRecord], error) {
			n := atomic.AddInt64(&inFlight, 1)
			defer atomic.AddInt64(&inFlight, -1)
			for {
				cur := atomic.LoadInt64(&maxInFlight)
				if n <= cur || atomic.CompareAndSwapInt64(&maxInFlight, cur, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)

			return contributorsPage(false, app.ContributorRecord{Login: repo, Contributions: 1}), nil
		}).
		Times(reposCount)

	l, _ := logrustest.NewNullLogger()
	s := app.NewService(m, l, app.WithMaxConcurrency(maxConcurrency))
	got, err := s.Aggregate(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, got, reposCount)

	// Equal counts, so repository order is kept.
	for i, c := range got {
		assert.Equal(t, fmt.Sprintf("r%d", i), c.Name)
	}
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(maxConcurrency))
}

func TestServiceAggregateUnboundedConcurrency(t *testing.T) {
	t.Parallel()

	const reposCount = 8

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var refs []app.RepositoryRef
	for i := 0; i < reposCount; i++ {
		refs = append(refs, app.RepositoryRef{Owner: "acme", Name: fmt.Sprintf("r%d", i)})
	}

	// Every listing blocks until all of them are in flight.
	var inFlight int64
	allStarted := make(chan struct{})
	m := mock.NewMockGithubClient(ctrl)
	m.EXPECT().
		OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
		Return(reposPage(false, refs...), nil)
	m.EXPECT().
		ContributorsPage(gomock.Any(), "acme", gomock.Any(), 0, app.MaxPageSize).
		DoAndReturn(func(ctx context.Context, owner string, repo string, page int, perPage int) (app.Page[app.ContributorRecord], error) {
			if atomic.AddInt64(&inFlight, 1) == reposCount {
				close(allStarted)
			}
			select {
			case <-allStarted:
			case <-time.After(5 * time.Second):
				return app.Page[app.ContributorRecord]{}, &app.TransportError{Err: errors.New("listings not concurrent")}
			}

			return contributorsPage(false, app.ContributorRecord{Login: repo, Contributions: 1}), nil
		}).
		Times(reposCount)

	l, _ := logrustest.NewNullLogger()
	got, err := app.NewService(m, l).Aggregate(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, got, reposCount)
}

func TestServiceAggregateSiblingRunsToCompletion(t *testing.T) {
	t.Parallel()

	const slowPages = 3

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var fetched int64
	m := mock.NewMockGithubClient(ctrl)
	m.EXPECT().
		OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
		Return(reposPage(false,
			app.RepositoryRef{Owner: "acme", Name: "bad"},
			app.RepositoryRef{Owner: "acme", Name: "slow"},
		), nil)
	m.EXPECT().
		ContributorsPage(gomock.Any(), "acme", "bad", 0, app.MaxPageSize).
		Return(app.Page[app.ContributorRecord]{}, &app.TransportError{StatusCode: 500, Err: errors.New("got invalid http status code: 500")})
	m.EXPECT().
		ContributorsPage(gomock.Any(), "acme", "slow", gomock.Any(), app.MaxPageSize).
		DoAndReturn(func(ctx context.Context, owner string, repo string, page int, perPage int) (app.Page[app.ContributorRecord], error) {
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt64(&fetched, 1)
			return contributorsPage(page < slowPages-1, app.ContributorRecord{Login: "c", Contributions: 1}), nil
		}).
		Times(slowPages)

	l, _ := logrustest.NewNullLogger()
	_, err := app.NewService(m, l).Aggregate(context.Background(), "acme")
	require.Error(t, err)
	assert.Equal(t, "unable to fetch acme/bad contributors: got invalid http status code: 500", err.Error())
	assert.Equal(t, int64(slowPages), atomic.LoadInt64(&fetched))
}

func TestServiceAggregateIgnoresCallerCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := mock.NewMockGithubClient(ctrl)
	m.EXPECT().
		OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
		DoAndReturn(func(ctx context.Context, org string, page int, perPage int) (app.Page[app.Repository], error) {
			cancel()
			return reposPage(true, app.RepositoryRef{Owner: "acme", Name: "r1"}), nil
		})
	m.EXPECT().
		OrgReposPage(gomock.Any(), "acme", 1, app.MaxPageSize).
		Return(reposPage(false, app.RepositoryRef{Owner: "acme", Name: "r2"}), nil)
	m.EXPECT().
		ContributorsPage(gomock.Any(), "acme", gomock.Any(), 0, app.MaxPageSize).
		DoAndReturn(func(ctx context.Context, owner string, repo string, page int, perPage int) (app.Page[app.ContributorRecord], error) {
			assert.NoError(t, ctx.Err())
			return contributorsPage(false, app.ContributorRecord{Login: repo, Contributions: 1}), nil
		}).
		Times(2)

	l, _ := logrustest.NewNullLogger()
	got, err := app.NewService(m, l).Aggregate(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []app.RankedContributor{
		{Name: "r1", Contributions: 1},
		{Name: "r2", Contributions: 1},
	}, got)
}

func TestServiceAggregateLogsOrg(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mock.NewMockGithubClient(ctrl)
	m.EXPECT().
		OrgReposPage(gomock.Any(), "acme", 0, app.MaxPageSize).
		Return(reposPage(false), nil)

	l, hook := logrustest.NewNullLogger()
	_, err := app.NewService(m, l).Aggregate(context.Background(), "acme")
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "getting contributors", entries[0].Message)
	assert.Equal(t, "acme", entries[0].Data["org"])
}
