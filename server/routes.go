package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/cds-portal/internal/metrics"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// REGISTER & LOGIN
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLoginForgot, ChainMiddleware(s.ForgotPasswordHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLoginOIDC, ChainMiddleware(s.EnableOIDCHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLoginOIDCCancel, ChainMiddleware(s.DisableOIDCHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLoginOIDCSignIn, ChainMiddleware(s.OIDCSignInHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLoginOIDCSignOut, ChainMiddleware(s.OIDCSignOutHandler(), s.HTMLMiddleWare()...))

	// NAVIGATION
	s.RegisterRouteHandler("POST "+RouteWelcome, ChainMiddleware(s.WelcomeActionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteDashboard, ChainMiddleware(s.DashboardNavigateHandler(), s.HTMLMiddleWare()...))

	// DASHBOARD PANELS
	s.RegisterRouteHandler("POST "+RouteContact, ChainMiddleware(s.ContactSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteRecipeSearch, ChainMiddleware(s.RecipeSearchHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteRecipeSort, ChainMiddleware(s.RecipeSortHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteRecipeFavorite, ChainMiddleware(s.RecipeFavoriteHandler(), s.HTMLMiddleWare()...))

	// TO-DO LIST
	s.RegisterRouteHandler("POST "+RouteToDo, ChainMiddleware(s.ToDoAddHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteToDoToggle, ChainMiddleware(s.ToDoToggleHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteToDoDelete, ChainMiddleware(s.ToDoDeleteHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteToDoBack, ChainMiddleware(s.ToDoBackHandler(), s.HTMLMiddleWare()...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPIRecipes, ChainMiddleware(s.RecipesAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPIRecipes, ChainMiddleware(s.RecipesAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	if s.gatherer != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler(s.gatherer))
	}

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
