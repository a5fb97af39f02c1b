// Package service implements the rostertools HTTP daemon: roster checks,
// profiles, and dedupes over an API, with prometheus metrics, an optional
// scan history store, and optional Kafka ingest.
package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

// Run starts the daemon and blocks until ctx is cancelled or the server
// fails. Resources are released before returning.
func Run(ctx context.Context, conf Config) error {
	logger := conf.Logger
	if logger == nil {
		var err error
		logger, err = newLogger(conf.LogPath, conf.LogMode, conf.LogLevel)
		if err != nil {
			return err
		}
		conf.Logger = logger
	}

	core, err := NewCore(ctx, conf)
	if err != nil {
		return err
	}

	var ig *ingester
	ingestCtx, cancelIngest := context.WithCancel(ctx)
	defer cancelIngest()
	ingestDone := make(chan struct{})
	if conf.Kafka.Enabled() {
		ig, err = newIngester(conf.Kafka, core.conf.DefaultKeyField, logger, &core.metrics)
		if err != nil {
			closeErr := core.Close(ctx)
			return multierr.Append(err, closeErr)
		}
		go func() {
			defer close(ingestDone)
			ig.run(ingestCtx)
		}()
	} else {
		close(ingestDone)
	}

	ln, err := net.Listen("tcp", conf.Listen)
	if err != nil {
		return multierr.Append(err, shutdownAll(ctx, core, ig, cancelIngest, ingestDone))
	}
	srv := &http.Server{Handler: core}
	logger.Info("Listening", zap.String("addr", ln.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return multierr.Append(err, shutdownAll(ctx, core, ig, cancelIngest, ingestDone))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	return multierr.Append(err, shutdownAll(shutdownCtx, core, ig, cancelIngest, ingestDone))
}

// shutdownAll stops the ingester and closes the core, aggregating errors.
func shutdownAll(ctx context.Context, core *Core, ig *ingester, cancelIngest context.CancelFunc, ingestDone chan struct{}) error {
	cancelIngest()
	<-ingestDone
	if ig != nil {
		ig.close()
	}
	return core.Close(ctx)
}
