package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/config"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/admin"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/cart"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/checkout"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/inquiry"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/middlewares"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr     string
	KVStore  kvstore.Store
	Catalog  config.CatalogConfig
	Checkout config.CheckoutConfig
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines within individual routes to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /cart/items/1/ -> /cart/items/1
	// this middleware should be applied to all routes
	// to ensure that the url is correctly formatted
	router.Use(chimiddleware.StripSlashes)
	router.Use(middlewares.RequestLogger)

	s.prep()

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			println()
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("server has stopped receiving new requests")
			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if closer, ok := s.KVStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Println("server failed to close kv store for shutdown")
		}
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		log.Println("health check")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	ctx := context.Background()

	// catalog feature
	catalogService := catalog.NewService(
		&catalog.ServiceConfig{
			SourceURL:    s.Catalog.SourceURL,
			FetchTimeout: s.Catalog.FetchTimeout,
		},
	)
	catalogHandler := catalog.NewHandler(catalogService)
	catalogHandler.RegisterRoutes(r)

	// cart feature; a single cart service instance is shared with checkout
	// so both see the same line items.
	cartService := cart.NewService(ctx, s.KVStore)
	cartHandler := cart.NewHandler(cartService, catalogService)
	cartHandler.RegisterRoutes(r)

	// order feature
	ledger := order.NewLedger(s.KVStore)
	transactionLog := order.NewTransactionLog(s.KVStore)
	orderHandler := order.NewHandler(ledger, transactionLog)
	orderHandler.RegisterRoutes(r)

	// checkout feature
	checkoutService := checkout.NewService(
		&checkout.ServiceConfig{
			Cart:         cartService,
			Ledger:       ledger,
			Transactions: transactionLog,
			EventEngine:  s.eventEngine,
			Providers:    checkout.DefaultProviders(s.Checkout.ProcessingDelay),
		},
	)
	checkoutHandler := checkout.NewHandler(checkoutService)
	checkoutHandler.RegisterRoutes(r)

	// inquiry feature
	inquiryStore := inquiry.NewStore(s.KVStore)
	inquiryService := inquiry.NewService(inquiryStore, s.eventEngine)
	inquiryHandler := inquiry.NewHandler(inquiryService)
	inquiryHandler.RegisterRoutes(r)

	// admin feature
	adminStore := admin.NewStore(s.KVStore)
	adminService := admin.NewService(
		adminStore,
		ledger,
		inquiryService,
	)
	adminHandler := admin.NewHandler(adminService)
	adminHandler.RegisterRoutes(r)

	admin.NewHandlerEvents(
		&admin.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Service:       adminService,
		},
	)

	return r
}
