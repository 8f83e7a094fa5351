// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/econ/api/delegations"
	"github.com/vechain/econ/api/events"
	"github.com/vechain/econ/api/holders"
	"github.com/vechain/econ/api/middleware"
	"github.com/vechain/econ/api/nodes"
	"github.com/vechain/econ/api/params"
	"github.com/vechain/econ/api/pricing"
	"github.com/vechain/econ/api/subscriptions"
	"github.com/vechain/econ/builtin"
	"github.com/vechain/econ/log"
	"github.com/vechain/econ/logdb"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	LogsLimit            uint64
	PingInterval         time.Duration
}

// New return api router. A nil logDB leaves the event history endpoints unmounted.
func New(
	stater *builtin.Stater,
	logDB *logdb.LogDB,
	prices subscriptions.PriceFeed,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	pricing.New(stater).
		Mount(router, "/pricing")
	params.New(stater).
		Mount(router, "/periods")
	holders.New(stater).
		Mount(router, "/holders")
	delegations.New(stater).
		Mount(router, "/delegations")
	nodes.New(stater).
		Mount(router, "/nodes")
	if logDB != nil {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/events")
	}
	subs := subscriptions.New(prices, origins, opts.PingInterval)
	subs.Mount(router, "/subscriptions")

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = middleware.RequestLogger(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold)(handler)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
