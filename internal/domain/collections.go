package domain

// Collection names for one user's data.
const (
	CollectionChats     = "chats"
	CollectionFavorites = "favorites"
	CollectionPrayers   = "prayers"
	CollectionLogs      = "logs"
)

// ErasureOrder lists every sub-collection cleared on account deletion,
// before the user document and the identity are removed.
var ErasureOrder = []string{
	CollectionChats,
	CollectionFavorites,
	CollectionPrayers,
	CollectionLogs,
}
