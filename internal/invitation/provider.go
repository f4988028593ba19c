package invitation

import (
	"context"
	"fmt"

	"github.com/kdudkov/eatnow/internal/client"
	"github.com/kdudkov/eatnow/pkg/model"
)

type Lister interface {
	GetNewList(ctx context.Context, category model.Category) ([]*model.Invitation, error)
}

type Provider struct {
	api *client.Client
}

func NewProvider(api *client.Client) *Provider {
	return &Provider{api: api}
}

// GetNewList fetches the invitations of category and stamps each with it.
func (p *Provider) GetNewList(ctx context.Context, category model.Category) ([]*model.Invitation, error) {
	path, err := category.Path()
	if err != nil {
		return nil, err
	}

	var list []*model.Invitation

	if err := p.api.Request("invitations_"+string(category), path).GetJSON(ctx, &list); err != nil {
		return nil, fmt.Errorf("get %s invitations: %w", category, err)
	}

	res := make([]*model.Invitation, 0, len(list))

	for _, inv := range list {
		if inv == nil {
			continue
		}

		inv.Category = category
		res = append(res, inv)
	}

	return res, nil
}
