package grpc

import (
	"context"

	"github.com/m-zajac/orgcontributors/internal/app"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// AppService can return ranked contributors of organization.
type AppService interface {
	Aggregate(ctx context.Context, org string) ([]app.RankedContributor, error)
}

// Service implements ContributorsServer, acting as a direct proxy to AppService.
type Service struct {
	appService AppService
	l          logrus.FieldLogger
}

var _ ContributorsServer = &Service{}

// NewService returns new Service instance
func NewService(appService AppService, l logrus.FieldLogger) *Service {
	return &Service{
		appService: appService,
		l:          l,
	}
}

// OrgContributors calls service and returns list of {name, contributions} structs.
func (s *Service) OrgContributors(ctx context.Context, r *wrapperspb.StringValue) (*structpb.ListValue, error) {
	contributors, err := s.appService.Aggregate(ctx, r.GetValue())
	if err != nil {
		s.l.WithField("org", r.GetValue()).Warnf("service error: %v", err)
		return nil, status.Error(errorCode(err), err.Error())
	}

	values := make([]*structpb.Value, 0, len(contributors))
	for _, c := range contributors {
		values = append(values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"name":          structpb.NewStringValue(c.Name),
				"contributions": structpb.NewNumberValue(float64(c.Contributions)),
			},
		}))
	}

	return &structpb.ListValue{Values: values}, nil
}

func errorCode(err error) codes.Code {
	switch {
	case app.IsInvalidRequestError(err):
		return codes.InvalidArgument
	case app.IsFetchError(err):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
