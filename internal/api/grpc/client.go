package grpc

import (
	"context"
	"fmt"

	"github.com/m-zajac/orgcontributors/internal/app"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls Contributors service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates new Client instance.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// OrgContributors returns ranked contributors of given organization.
func (c *Client) OrgContributors(ctx context.Context, org string, opts ...grpc.CallOption) ([]app.RankedContributor, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, orgContributorsFullName, wrapperspb.String(org), out, opts...); err != nil {
		return nil, err
	}

	contributors := make([]app.RankedContributor, 0, len(out.GetValues()))
	for i, v := range out.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("invalid reply element %d: not a struct", i)
		}
		contributors = append(contributors, app.RankedContributor{
			Name:          s.GetFields()["name"].GetStringValue(),
			Contributions: uint(s.GetFields()["contributions"].GetNumberValue()),
		})
	}

	return contributors, nil
}
