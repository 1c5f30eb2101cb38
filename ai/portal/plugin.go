package portal

import (
	"context"

	"github.com/firebase/genkit/go/core/api"
)

const providerID = "portalsst"

type PortalPlugin struct {
}

func (p *PortalPlugin) Name() string {
	return providerID
}

func (p *PortalPlugin) Init(ctx context.Context) []api.Action {
	return []api.Action{}
}
