package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/handlers"
	"github.com/ecofinds/backend/internal/jwtmiddleware"
)

type Deps struct {
	JWTSecret []byte

	Auth     *handlers.AuthHandler
	Category *handlers.CategoryHandler
	Listing  *handlers.ListingHandler
	Cart     *handlers.CartHandler
	Order    *handlers.OrderHandler
	Wishlist *handlers.WishlistHandler
	Search   *handlers.SearchHandler
	Stats    *handlers.StatsHandler
	Users    *handlers.UserHandler
	System   *handlers.SystemHandler
}

func Register(e *echo.Echo, d *Deps) {
	requireAuth := jwtmiddleware.RequireAuth(d.JWTSecret)

	e.GET("/health", d.System.Health)
	e.POST("/seed", d.System.SeedData)
	e.GET("/stats", d.Stats.Platform)
	e.GET("/search", d.Search.Search)

	e.POST("/auth/signup", d.Auth.Signup)
	e.POST("/auth/login", d.Auth.Login)

	me := e.Group("/auth", requireAuth)
	me.GET("/me", d.Auth.Me)
	me.PUT("/me", d.Auth.UpdateMe)
	me.GET("/me/listings", d.Listing.MyListings)
	me.GET("/stats", d.Stats.User)

	e.GET("/categories", d.Category.List)
	e.POST("/categories", d.Category.Create, requireAuth)
	e.GET("/categories/:id", d.Category.Get)
	e.PUT("/categories/:id", d.Category.Update, requireAuth)
	e.DELETE("/categories/:id", d.Category.Delete, requireAuth)

	e.GET("/listings", d.Listing.List)
	e.POST("/listings", d.Listing.Create, requireAuth)
	e.GET("/listings/:id", d.Listing.Get)
	e.PUT("/listings/:id", d.Listing.Update, requireAuth)
	e.DELETE("/listings/:id", d.Listing.Delete, requireAuth)

	e.GET("/users", d.Users.List)
	e.GET("/users/:id", d.Users.Get)
	e.GET("/users/:id/listings", d.Users.Listings)

	cart := e.Group("/auth/cart", requireAuth)
	cart.GET("", d.Cart.Get)
	cart.POST("", d.Cart.Add)
	cart.DELETE("", d.Cart.Clear)
	cart.PUT("/:id", d.Cart.UpdateItem)
	cart.DELETE("/:id", d.Cart.RemoveItem)

	orders := e.Group("/auth", requireAuth)
	orders.POST("/checkout", d.Order.DoCheckout)
	orders.GET("/orders", d.Order.List)
	orders.GET("/orders/:id", d.Order.Get)
	orders.PUT("/orders/:id", d.Order.UpdateStatus)

	wishlist := e.Group("/auth/wishlist", requireAuth)
	wishlist.GET("", d.Wishlist.Get)
	wishlist.POST("", d.Wishlist.Add)
	wishlist.DELETE("/:listing_id", d.Wishlist.Remove)
}
