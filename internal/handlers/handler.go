package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/middleware"
	"github.com/Prayc/angaza-real-estate/internal/search"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the dependencies every endpoint needs. The store
// handle is injected so tests can run against an in-memory database.
type Handler struct {
	store  *database.GormDB
	cfg    *config.Config
	tokens *auth.JWT
	search *search.Client // nil when search is disabled
}

// New creates a handler. search may be nil.
func New(store *database.GormDB, cfg *config.Config, tokens *auth.JWT, searchClient *search.Client) *Handler {
	return &Handler{
		store:  store,
		cfg:    cfg,
		tokens: tokens,
		search: searchClient,
	}
}

func (h *Handler) db() *gorm.DB {
	return h.store.DB()
}

// identity returns the verified actor or writes a 401.
func (h *Handler) identity(c *gin.Context) (access.Identity, bool) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
	}
	return actor, ok
}

// fail converts a rule violation into its response outcome. Internal
// causes are logged; their detail reaches the caller only in debug mode.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	body := gin.H{"message": apperr.Message(err)}

	if apperr.KindOf(err) == apperr.KindInternal {
		log.Printf("%s %s error: %v", c.Request.Method, c.Request.URL.Path, err)
		if h.cfg.Server.Debug() {
			body["details"] = err.Error()
		}
	}
	c.JSON(status, body)
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("Invalid id")
	}
	return uint(id), nil
}
