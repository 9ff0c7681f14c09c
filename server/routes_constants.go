package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Register & Login screens
	RouteRegister         = "/register"
	RouteLogin            = "/login"
	RouteLoginForgot      = "/login/forgot"
	RouteLoginOIDC        = "/login/oidc"
	RouteLoginOIDCCancel  = "/login/oidc/cancel"
	RouteLoginOIDCSignIn  = "/login/oidc/signin"
	RouteLoginOIDCSignOut = "/login/oidc/signout"

	// Navigation
	RouteWelcome   = "/welcome/{action}"
	RouteDashboard = "/dashboard/{destination}"

	// Dashboard panels
	RouteContact        = "/contact"
	RouteRecipeSearch   = "/recipes/search"
	RouteRecipeSort     = "/recipes/sort"
	RouteRecipeFavorite = "/recipes/{id}/favorite"

	// ToDo screen
	RouteToDo       = "/todo"
	RouteToDoToggle = "/todo/{id}/toggle"
	RouteToDoDelete = "/todo/{id}/delete"
	RouteToDoBack   = "/todo/back"

	// API Routes
	RouteAPIRecipes = "/api/recipes"
	RouteMetrics    = "/metrics"
	RouteHealth     = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
