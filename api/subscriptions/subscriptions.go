// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/econ/api/utils"
	"github.com/vechain/econ/builtin/pricing"
	"github.com/vechain/econ/log"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	writeWait       = 10 * time.Second
	defaultPingTime = 30 * time.Second
	bufferSize      = 16
)

type Subscriptions struct {
	prices   PriceFeed
	upgrader *websocket.Upgrader
	pingTime time.Duration
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
	wg       sync.WaitGroup
}

// New creates the websocket endpoints. A "*" in allowedOrigins accepts any origin.
func New(prices PriceFeed, allowedOrigins []string, pingTime time.Duration) *Subscriptions {
	if pingTime == 0 {
		pingTime = defaultPingTime
	}
	return &Subscriptions{
		prices: prices,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		pingTime: pingTime,
		done:     make(chan struct{}),
	}
}

// track registers a handler with Close. It fails once Close has started.
func (s *Subscriptions) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Subscriptions) handlePrices(w http.ResponseWriter, req *http.Request) error {
	if !s.track() {
		return utils.HTTPError(errors.New("subscriptions closed"), http.StatusServiceUnavailable)
	}
	defer s.wg.Done()

	// subscribed before the upgrade so the peer sees every change after its handshake
	ch := make(chan *pricing.PriceChanged, bufferSize)
	sub := s.prices.SubscribePriceChanged(ch)
	defer sub.Unsubscribe()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader already replied to the client
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	if err := s.pipe(conn, ch, sub.Err()); err != nil {
		logger.Debug("subscription closed", "err", err)
	}
	return nil
}

// pipe writes every price change to the peer until it goes away, the feed
// fails, or the subscriptions are closed.
func (s *Subscriptions) pipe(conn *websocket.Conn, ch <-chan *pricing.PriceChanged, errc <-chan error) error {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pingTime)
	defer ticker.Stop()

	for {
		select {
		case ev := <-ch:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(convertPrice(ev)); err != nil {
				return err
			}
		case err := <-errc:
			return err
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			return conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		}
	}
}

// Close terminates open subscriptions and waits for their handlers to return.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/prices").
		Methods(http.MethodGet).
		Name("WS /subscriptions/prices").
		HandlerFunc(utils.WrapHandlerFunc(s.handlePrices))
}
