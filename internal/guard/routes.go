package guard

import "github.com/mcmarket/mcmarket-client/models"

// Screen identifies the TUI view a route renders. The TUI maps these to its
// models; guards never import the TUI.
type Screen string

const (
	ScreenWelcome         Screen = "welcome"
	ScreenLegal           Screen = "legal"
	ScreenLogin           Screen = "login"
	ScreenRegister        Screen = "register"
	ScreenBuyerDashboard  Screen = "buyer_dashboard"
	ScreenSellerDashboard Screen = "seller_dashboard"
	ScreenAdminDashboard  Screen = "admin_dashboard"
	ScreenDealRoom        Screen = "deal_room"
	ScreenCreateListing   Screen = "create_listing"
	ScreenMakeOffer       Screen = "make_offer"
	ScreenSupport         Screen = "support"
)

// Route is one entry of the fixed navigable path tree.
type Route struct {
	Path        string
	Screen      Screen
	Requirement RouteRequirement
}

// routeTable is the single source of the navigable path surface: public,
// buyer-only, seller-only, admin-only, shared-authenticated, and
// verification-gated paths with their requirements.
var routeTable = []Route{
	{Path: PathRoot, Screen: ScreenWelcome, Requirement: Public()},
	{Path: PathLegal, Screen: ScreenLegal, Requirement: Public()},
	{Path: PathLogin, Screen: ScreenLogin, Requirement: Public()},
	{Path: PathRegister, Screen: ScreenRegister, Requirement: Public()},

	{Path: PathBuyerDashboard, Screen: ScreenBuyerDashboard, Requirement: Roles(models.RoleBuyer)},
	{Path: PathSellerDashboard, Screen: ScreenSellerDashboard, Requirement: Roles(models.RoleSeller)},
	{Path: PathAdminDashboard, Screen: ScreenAdminDashboard, Requirement: Roles(models.RoleAdmin)},

	{Path: PathDeals, Screen: ScreenDealRoom, Requirement: Authenticated()},
	{Path: PathSupport, Screen: ScreenSupport, Requirement: Authenticated()},

	{Path: PathCreateListing, Screen: ScreenCreateListing, Requirement: Verified(models.RoleSeller)},
	{Path: PathMakeOffer, Screen: ScreenMakeOffer, Requirement: Verified(models.RoleBuyer)},
}

// Navigable paths. Kept as constants so screens link to routes without
// scattering string literals.
const (
	PathRoot            = "/"
	PathLegal           = "/legal"
	PathLogin           = "/login"
	PathRegister        = "/register"
	PathBuyerDashboard  = "/buyer/dashboard"
	PathSellerDashboard = "/seller/dashboard"
	PathAdminDashboard  = "/admin/dashboard"
	PathDeals           = "/deals"
	PathSupport         = "/support"
	PathCreateListing   = "/seller/listings/new"
	PathMakeOffer       = "/buyer/offers/new"
)

// Routes returns the fixed route table.
func Routes() []Route {
	return routeTable
}

// Resolve maps a path to its route. Unknown paths fall back to the root
// route, never to a not-found view.
func Resolve(path string) Route {
	for _, route := range routeTable {
		if route.Path == path {
			return route
		}
	}
	return routeTable[0]
}

// HomeFor is the single role to canonical dashboard path lookup consumed by
// gates and navigation alike.
func HomeFor(role models.Role) string {
	switch role {
	case models.RoleBuyer:
		return PathBuyerDashboard
	case models.RoleSeller:
		return PathSellerDashboard
	case models.RoleAdmin:
		return PathAdminDashboard
	default:
		return PathRoot
	}
}
