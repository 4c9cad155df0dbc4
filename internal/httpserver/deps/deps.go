package deps

import (
	"time"

	"blog-api/internal/bookmarks"
	"blog-api/internal/catalog"
	"blog-api/internal/httpserver/mw"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
	"blog-api/internal/views"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	TrustProxy    bool               // true if running behind a trusted reverse proxy
	DevMode       bool               // relaxes the admin guard when no credentials are set
	CORSOrigins   []string           // allowed origins; empty means any
	Store         kvstore.Store      // key-value backend (redis or file)
	Catalog       *catalog.Catalog   // cached markdown post catalog
	Views         *views.Service     // per-slug view counters
	Analytics     *views.Analytics   // aggregation over counters + catalog
	Bookmarks     *bookmarks.Service // saved-tweet store
	Guard         *mw.Guard          // admin credential check
	Limiter       *mw.Limiter        // shared fixed-window rate limiter
	ReloadTrigger chan struct{}      // channel to trigger manual catalog reload
}
