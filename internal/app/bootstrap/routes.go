// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/potluckhq/potluck/internal/app/features/auth"
	calendarfeature "github.com/potluckhq/potluck/internal/app/features/calendar"
	categoriesfeature "github.com/potluckhq/potluck/internal/app/features/categories"
	healthfeature "github.com/potluckhq/potluck/internal/app/features/health"
	ingredientsfeature "github.com/potluckhq/potluck/internal/app/features/ingredients"
	recipesfeature "github.com/potluckhq/potluck/internal/app/features/recipes"
	usersfeature "github.com/potluckhq/potluck/internal/app/features/users"
	calendarstore "github.com/potluckhq/potluck/internal/app/store/calendar"
	categorystore "github.com/potluckhq/potluck/internal/app/store/categories"
	ingredientstore "github.com/potluckhq/potluck/internal/app/store/ingredients"
	pendingstore "github.com/potluckhq/potluck/internal/app/store/pending"
	recipestore "github.com/potluckhq/potluck/internal/app/store/recipes"
	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	sysauth "github.com/potluckhq/potluck/internal/app/system/auth"
	"github.com/potluckhq/potluck/internal/app/system/mailer"
	"github.com/potluckhq/potluck/internal/app/system/token"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Potluck builds the token manager and mailer, creates one store per
// collection, applies the principal-loading middleware globally, and
// mounts the feature routers for auth, recipes, users, calendar, and
// the shared ingredient/category catalogs.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := token.NewManager(token.Config{
		Secret:     []byte(appCfg.TokenSecret),
		Issuer:     appCfg.TokenIssuer,
		AccessTTL:  appCfg.AccessTokenTTL,
		RefreshTTL: appCfg.RefreshTokenTTL,
	})
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	mail, err := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", zap.Error(err))
		return nil, err
	}

	db := deps.PotluckMongoDatabase
	users := userstore.New(db)
	pending := pendingstore.New(db, appCfg.PendingExpiry)
	recipes := recipestore.New(db)
	calendar := calendarstore.New(db)
	ingredients := ingredientstore.New(db)
	categories := categorystore.New(db)

	r := chi.NewRouter()

	// Global auth middleware: verifies a bearer token if one is present
	// and loads the principal into context. Enforcement happens on the
	// protected route groups.
	mw := sysauth.NewMiddleware(tokens, users)
	r.Use(mw.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators
	healthfeature.MountRoutes(r, healthfeature.NewHandler(deps.PotluckMongoClient, logger))

	authfeature.MountRoutes(r, authfeature.NewHandler(logger, users, pending, tokens, mail, appCfg.SiteName))
	recipesfeature.MountRoutes(r, recipesfeature.NewHandler(logger, recipes, users))
	usersfeature.MountRoutes(r, usersfeature.NewHandler(logger, users, recipes))
	calendarfeature.MountRoutes(r, calendarfeature.NewHandler(logger, calendar, recipes))
	ingredientsfeature.MountRoutes(r, ingredientsfeature.NewHandler(logger, ingredients))
	categoriesfeature.MountRoutes(r, categoriesfeature.NewHandler(logger, categories))

	return r, nil
}
