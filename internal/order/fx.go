package order

import (
	"github.com/smallretail/legacy-api/internal/order/repository"
	"github.com/smallretail/legacy-api/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
