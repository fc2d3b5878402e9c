package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	apiRouter := router.PathPrefix("/api").Subrouter()

	// Authentication surface
	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/admin/create", h.HandleAdminCreate).Methods("POST")
	authRouter.HandleFunc("/admin/delete", h.HandleAdminDelete).Methods("DELETE")
	authRouter.HandleFunc("/admin/login", h.HandleAdminLogin).Methods("POST")
	authRouter.HandleFunc("/admin/logout", h.HandleAdminLogout).Methods("POST")
	authRouter.HandleFunc("/admin", h.HandleAdminExists).Methods("GET")
	authRouter.HandleFunc("/admins", h.HandleAdmins).Methods("GET")
	authRouter.HandleFunc("/user/create", h.HandleUserCreate).Methods("POST")
	authRouter.HandleFunc("/user/delete", h.HandleUserDelete).Methods("POST")
	authRouter.HandleFunc("/user/login", h.HandleUserLogin).Methods("POST")
	authRouter.HandleFunc("/oauth_redirect", h.HandleOAuthRedirect).Methods("GET")
	authRouter.HandleFunc("/google_oauth", h.HandleGoogleOAuth).Methods("POST")

	// Record surface consumed by the client SDK
	dbRouter := apiRouter.PathPrefix("/db").Subrouter()
	dbRouter.HandleFunc("/create_collection", h.HandleCreateCollection).Methods("POST")
	dbRouter.HandleFunc("/delete_collection", h.HandleDeleteCollection).Methods("DELETE")
	dbRouter.HandleFunc("/insert_doc", h.HandleInsertDoc).Methods("POST")
	dbRouter.HandleFunc("/get_doc", h.HandleGetDoc).Methods("GET")
	dbRouter.HandleFunc("/get_all_docs", h.HandleGetAllDocs).Methods("GET")
	dbRouter.HandleFunc("/find_doc", h.HandleFindDoc).Methods("POST")
	dbRouter.HandleFunc("/update_doc", h.HandleUpdateDoc).Methods("POST")
	dbRouter.HandleFunc("/delete_doc", h.HandleDeleteDoc).Methods("DELETE")

	// Settings surface, read-only
	apiRouter.HandleFunc("/settings/{name}", h.HandleGetSetting).Methods("GET")

	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
}
