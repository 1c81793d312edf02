package providers

import (
	"net/http"

	"visitors/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Handler() http.Handler
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodGet,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodPost,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Handler builds a mux from the registered routes. Several methods may share
// one URL; a request with an unregistered method gets 405.
func (rp *RouterProvider) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range rp.routes {
		mux.Handle(route.Pattern(), route.Handler)
	}
	return mux
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}
