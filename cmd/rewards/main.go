package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/resume/internal/health"
	"github.com/Decentr-net/resume/internal/rewards"
	"github.com/Decentr-net/resume/internal/storage/postgres"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`

	RewardsInterval  time.Duration `long:"rewards.interval" env:"REWARDS_INTERVAL" default:"10m" description:"how often to recalculate rewards"`
	RewardsBatchSize int           `long:"rewards.batch-size" env:"REWARDS_BATCH_SIZE" default:"100" description:"amount of profiles read at once"`

	postgres.Options
}{}

var errTerminated = errors.New("terminated")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("failed to load .env")
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Rewards"
	parser.LongDescription = "Rewards"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Warn("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	logrus.Infof("%+v", opts)

	setupLogger()

	db, err := postgres.Connect(context.Background(), opts.Options)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to postgres")
	}
	refresher := rewards.NewRefresher(postgres.New(db), opts.RewardsBatchSize)

	gr, ctx := errgroup.WithContext(context.Background())

	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		select {
		case s := <-sigs:
			logrus.Infof("terminating by %s signal", s)
		case <-ctx.Done():
		}

		return errTerminated
	})

	gr.Go(func() error {
		return refresher.Run(ctx, opts.RewardsInterval)
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}

	if err := db.Close(); err != nil {
		logrus.WithError(err).Error("failed to close database connection")
	}
}

func setupLogger() {
	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}
}
