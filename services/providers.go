package services

import (
	"github.com/opencomply/sbomhub/enrichment"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/utils"
	"go.uber.org/fx"
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewProjectService, fx.As(new(shared.ProjectService)))),
	fx.Provide(fx.Annotate(NewPipelineService, fx.As(new(shared.PipelineService)))),
	fx.Provide(enrichment.NewClientFromEnv),
	fx.Provide(fx.Annotate(
		func(client enrichment.Client) *enrichment.Gateway {
			return enrichment.NewGateway(client, enrichment.GatewayOptionsFromEnv()...)
		},
		fx.As(new(shared.EnrichmentGateway)),
	)),
	fx.Provide(utils.NewFireAndForgetSynchronizer),
)
