package assistant

import (
	"github.com/smallretail/legacy-api/internal/assistant/service"
	"github.com/smallretail/legacy-api/internal/assistant/tools"
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
	"github.com/smallretail/legacy-api/internal/tempo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("assistant.service",
	fx.Provide(newRegistry),
	fx.Provide(service.New),
)

func newRegistry(log *zap.Logger, products productdomain.Service, orders orderdomain.Service, traces *tempo.Client) *tools.Registry {
	r := tools.NewRegistry(log)
	tools.RegisterProductTools(r, products)
	tools.RegisterOrderTools(r, orders)
	tools.RegisterTempoTools(r, traces)
	return r
}
