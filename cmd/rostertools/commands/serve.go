package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/erraggy/rostertools"
	"github.com/erraggy/rostertools/service"
)

// SetupServeFlags creates and configures a FlagSet for the serve command
func SetupServeFlags() (*flag.FlagSet, *service.Config) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	conf := service.DefaultConfig()
	conf.Version = rostertools.Version()
	conf.SetFlags(fs)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools serve [flags]\n\n")
		Writef(fs.Output(), "Run the HTTP daemon. Exposes roster checks at /api/check plus profile,\n")
		Writef(fs.Output(), "dedupe, history, and Prometheus metrics endpoints. Runs until\n")
		Writef(fs.Output(), "interrupted.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools serve -l :8020\n")
		Writef(fs.Output(), "  rostertools serve -log.path /var/log/rostertools.log -log.filemode rotate\n")
		Writef(fs.Output(), "  rostertools serve -kafka.brokers broker-1:9092,broker-2:9092\n")
	}

	return fs, &conf
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, conf := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	applyServeDefaults(conf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return service.Run(ctx, *conf)
}

// applyServeDefaults fills daemon settings from the config file when the
// corresponding flags kept their built-in defaults.
func applyServeDefaults(conf *service.Config) {
	if conf.Listen == service.DefaultConfig().Listen {
		listen := ""
		if ApplyDefault(&listen, serveListen) {
			conf.Listen = listen
		}
	}
	ApplyDefault(&conf.DatabaseURI, serveDatabase)
	ApplyDefault(&conf.Kafka.Brokers, serveKafkaBrokers)
}
