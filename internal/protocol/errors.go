package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Request layer.
	ErrBadRequest     = "E_BAD_REQUEST"
	ErrUnknownNode    = "E_UNKNOWN_NODE"
	ErrUnknownKind    = "E_UNKNOWN_KIND"
	ErrCatalogChanged = "E_CATALOG_CHANGED"
	ErrInternal       = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrUnknownNode:     {},
	ErrUnknownKind:     {},
	ErrCatalogChanged:  {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
