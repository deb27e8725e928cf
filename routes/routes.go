package routes

import (
	"net/http"

	"driftwood/app/controllers"
	"driftwood/app/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Controllers bundles the HTTP controllers the router wires up.
type Controllers struct {
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	Reviews  *controllers.ReviewController
	Catalog  *controllers.CatalogController
	Bookings *controllers.BookingController
	Admin    *controllers.AdminController
}

// SetupRoutes defines the application's routes and returns a router.
// staticDir and uploadDir are served as-is; everything else is JSON.
func SetupRoutes(c *Controllers, log zerolog.Logger, staticDir, uploadDir string) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.ContentTypeJSON)

	// Static assets and uploaded review/service images.
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(uploadDir))))

	// Public blog permalinks.
	router.HandleFunc("/blog/{year:[0-9]{4}}/{month:[0-9]{2}}/{day:[0-9]{2}}/{slug}",
		c.Posts.ShowByPermalink).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Posts API endpoints.
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", c.Posts.Index).Methods("GET")
	posts.HandleFunc("/featured", c.Posts.Featured).Methods("GET")
	posts.HandleFunc("", c.Posts.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", c.Posts.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", c.Posts.Update).Methods("PUT")
	posts.HandleFunc("/{id:[0-9]+}", c.Posts.Delete).Methods("DELETE")
	posts.HandleFunc("/{id:[0-9]+}/like", c.Posts.Like).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/like", c.Posts.Unlike).Methods("DELETE")

	// Submission endpoints.
	posts.HandleFunc("/{id:[0-9]+}/comments", c.Comments.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", c.Comments.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/reviews", c.Reviews.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/reviews", c.Reviews.Create).Methods("POST")
	api.HandleFunc("/comments/{commentId:[0-9]+}", c.Comments.Delete).Methods("DELETE")
	api.HandleFunc("/reviews/{reviewId:[0-9]+}", c.Reviews.Delete).Methods("DELETE")

	// Blog categories.
	api.HandleFunc("/categories", c.Posts.Categories).Methods("GET")
	api.HandleFunc("/categories", c.Posts.CreateCategory).Methods("POST")
	api.HandleFunc("/categories/{id:[0-9]+}", c.Posts.DeleteCategory).Methods("DELETE")

	// Catalog API endpoints.
	catalog := api.PathPrefix("/services").Subrouter()
	catalog.HandleFunc("", c.Catalog.Index).Methods("GET")
	catalog.HandleFunc("/featured", c.Catalog.Featured).Methods("GET")
	catalog.HandleFunc("", c.Catalog.Create).Methods("POST")
	catalog.HandleFunc("/category/{code}", c.Catalog.ByCategory).Methods("GET")
	catalog.HandleFunc("/{id:[0-9]+}", c.Catalog.Update).Methods("PUT")
	catalog.HandleFunc("/{id:[0-9]+}", c.Catalog.Delete).Methods("DELETE")
	catalog.HandleFunc("/{id:[0-9]+}/images", c.Catalog.AddImage).Methods("POST")
	catalog.HandleFunc("/{slug}", c.Catalog.Show).Methods("GET")

	// Booking and contact forms.
	api.HandleFunc("/bookings", c.Bookings.CreateBooking).Methods("POST")
	api.HandleFunc("/contact", c.Bookings.CreateContact).Methods("POST")

	// Moderation queue.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/comments/pending", c.Admin.PendingComments).Methods("GET")
	admin.HandleFunc("/reviews/pending", c.Admin.PendingReviews).Methods("GET")
	admin.HandleFunc("/comments/{id:[0-9]+}/approve", c.Admin.ApproveComment).Methods("POST")
	admin.HandleFunc("/reviews/{id:[0-9]+}/approve", c.Admin.ApproveReview).Methods("POST")
	admin.HandleFunc("/comments/approve", c.Admin.ApproveComments).Methods("POST")
	admin.HandleFunc("/reviews/approve", c.Admin.ApproveReviews).Methods("POST")
	admin.HandleFunc("/comments/{id:[0-9]+}/resend", c.Admin.ResendComment).Methods("POST")
	admin.HandleFunc("/reviews/{id:[0-9]+}/resend", c.Admin.ResendReview).Methods("POST")

	return router
}
