package product

import (
	"github.com/smallretail/legacy-api/internal/product/repository"
	"github.com/smallretail/legacy-api/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
