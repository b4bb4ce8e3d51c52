package models

const (
	RestaurantStatusOpen       = "open"
	RestaurantStatusOrderAhead = "order ahead"
	RestaurantStatusClosed     = "closed"

	ColorOpen       = "#1EC337"
	ColorOrderAhead = "#F5C200"
	ColorClosed     = "#F53126"

	DefaultFavoritesKey  = "favourite_restaurants"
	DefaultFavoriteTopic = "favorite_events"

	StoreBackendMemory   = "memory"
	StoreBackendFile     = "file"
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
)
