// Package handlers turns HTTP requests into calls on the store and the auth
// service. Every page is an Action from an explicit Request to an explicit
// Response; Serve adapts actions to net/http and owns all session access.
package handlers

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"

	"alerscan/internal/labels"
	"alerscan/internal/views/components"
	"alerscan/models"
)

const (
	sessionUserIDKey     = "user_id"
	sessionUsernameKey   = "username"
	sessionNoticeKey     = "flash:message"
	sessionNoticeToneKey = "flash:tone"
)

// Catalog is the data access the pages need.
type Catalog interface {
	ListSeedAllergens(ctx context.Context) ([]models.Allergen, error)
	ListProductsForUser(ctx context.Context, userID uint) ([]models.Product, error)
	CreateProduct(ctx context.Context, name, lot string, ownerID uint, allergenIDs []uint) (*models.Product, error)
	GetProductForUser(ctx context.Context, productID, ownerID uint) (*models.Product, error)
	GetAllergen(ctx context.Context, id uint) (*models.Allergen, error)
}

// Authenticator registers accounts and checks credentials.
type Authenticator interface {
	Register(ctx context.Context, username, password, confirm string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// Identity is the signed-in user as recorded in the session.
type Identity struct {
	UserID   uint
	Username string
}

// Request is everything an action may read from the incoming request. HTMX
// is set when only the page content should be rendered.
type Request struct {
	Method   string
	Path     string
	Form     url.Values
	Upload   *labels.Upload
	Identity *Identity
	Notice   components.Notice
	HTMX     bool
}

// Response describes what Serve should do once the action returns. A non-empty
// Redirect wins over Content.
type Response struct {
	Status   int
	Redirect string
	Title    string
	Content  templ.Component
	Notice   components.Notice
	SignIn   *Identity
	SignOut  bool
}

// Action handles one route.
type Action func(ctx context.Context, req Request) Response

// Handlers holds the dependencies shared by every action. A nil field makes
// the actions that need it answer 503.
type Handlers struct {
	sessions *scs.SessionManager
	catalog  Catalog
	auth     Authenticator
}

func New(sessions *scs.SessionManager, catalog Catalog, auth Authenticator) *Handlers {
	return &Handlers{
		sessions: sessions,
		catalog:  catalog,
		auth:     auth,
	}
}
