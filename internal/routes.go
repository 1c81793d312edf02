package internal

import (
	"net/http"

	"visitors/internal/controllers"
	"visitors/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/visitor", http.HandlerFunc(apiController.SaveVisitor))
	routers.Get("/visitor", http.HandlerFunc(apiController.GetVisitor))
	return routers
}
