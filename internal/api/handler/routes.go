package handler

import (
	"net/http"

	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	"github.com/vfg2006/ads-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ads-manager-api/internal/usecases/account"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-manager-api/internal/usecases/mutation"
	"github.com/vfg2006/ads-manager-api/internal/usecases/selection"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func AdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts",
			Method:      http.MethodGet,
			Handler:     AdAccountList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/sync",
			Method:      http.MethodPost,
			Handler:     SyncAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/accounts/:id",
			Method:      http.MethodGet,
			Handler:     GetAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/adAccount/:id/spending-limit",
			Method:      http.MethodPut,
			Handler:     UpdateSpendingLimit(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/adAccount/:id/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Entities(
	snapshots insighting.Snapshoter,
	accounts account.AccountService,
	checked *selection.Controller,
	toggler *mutation.Toggler,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/entities/:type",
			Method:      http.MethodGet,
			Handler:     ListEntities(snapshots, accounts, checked),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entities/:type/order-lock",
			Method:      http.MethodGet,
			Handler:     GetOrderLock(toggler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entities/:type/:id/toggle-status",
			Method:      http.MethodPost,
			Handler:     ToggleEntityStatus(toggler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Selection(checked *selection.Controller) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/selection/:type",
			Method:      http.MethodGet,
			Handler:     GetSelection(checked),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/selection/:type",
			Method:      http.MethodPut,
			Handler:     SetSelection(checked),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/selection/:type",
			Method:      http.MethodDelete,
			Handler:     ClearSelection(checked),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/selection/:type/toggle",
			Method:      http.MethodPost,
			Handler:     ToggleSelection(checked),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func ViewStates(repo repository.ViewStateRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/view-state/:view",
			Method:      http.MethodGet,
			Handler:     GetViewState(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/view-state/:view",
			Method:      http.MethodPut,
			Handler:     SaveViewState(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// UserAccounts retorna as rotas para gerenciamento de contas vinculadas a usuários
func UserAccounts(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/accounts",
			Method:      http.MethodGet,
			Handler:     GetUserAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/accounts",
			Method:      http.MethodPut,
			Handler:     UpdateUserAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/accounts/link",
			Method:      http.MethodPost,
			Handler:     LinkUserAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/accounts/:account_id",
			Method:      http.MethodDelete,
			Handler:     UnlinkUserAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
