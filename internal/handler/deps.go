package handler

import (
	"sehra/internal/app/gateway"
	"sehra/internal/app/storage"
	"sehra/internal/app/store"
	"sehra/internal/configs"
)

// AppDeps bundles the collaborators shared by every handler.
type AppDeps struct {
	Gateway        *gateway.Gateway
	Config         *configs.AppConfig
	Store          *store.Store
	StorageService storage.StorageService
}
