package sberqr

// Scope identifies a gateway operation a token can authorize.
type Scope string

const (
	ScopeCreate   Scope = "create"
	ScopeStatus   Scope = "status"
	ScopeRevoke   Scope = "revoke"
	ScopeCancel   Scope = "cancel"
	ScopeRegistry Scope = "registry"
)

// remote permission strings, fixed by the gateway contract
var scopePermissions = map[Scope]string{
	ScopeCreate:   "https://api.sberbank.ru/order.create",
	ScopeStatus:   "https://api.sberbank.ru/order.status",
	ScopeRevoke:   "https://api.sberbank.ru/qr/order.revoke",
	ScopeCancel:   "https://api.sberbank.ru/qr/order.cancel",
	ScopeRegistry: "auth://qr/order.registry",
}

// Permission returns the remote permission string for the scope.
func (s Scope) Permission() string {
	return scopePermissions[s]
}

// gateway endpoint paths, relative to the base URL
const (
	pathTokenOAuth    = "/ru/prod/tokens/v2/oauth"
	pathOrderCreation = "/prod/qr/order/v3/creation"
	pathOrderStatus   = "/prod/qr/order/v3/status"
	pathOrderRevoke   = "/prod/qr/order/v3/revocation"
	pathOrderCancel   = "/prod/qr/order/v3/cancel"
	pathOrderRegistry = "/prod/qr/order/v3/registry"
)
