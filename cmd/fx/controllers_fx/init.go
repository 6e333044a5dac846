package controllers_fx

import (
	"go.uber.org/fx"
	"wander/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewExploreController),
	fx.Provide(controllers.NewSearchController),
	fx.Provide(controllers.NewAccountController))
