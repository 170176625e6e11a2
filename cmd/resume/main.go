package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/resume/internal/avatar"
	"github.com/Decentr-net/resume/internal/health"
	"github.com/Decentr-net/resume/internal/server"
	"github.com/Decentr-net/resume/internal/service"
	"github.com/Decentr-net/resume/internal/storage/postgres"
	"github.com/Decentr-net/resume/internal/throttler"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"localhost" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections, defaults to a random value"`
	MaxBodySize    int64         `long:"http.max-body-size" env:"HTTP_MAX_BODY_SIZE" default:"1000000" description:"max request's body size"`
	RequestTimeout time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"30s" description:"request processing timeout"`

	NFTsThrottlePeriod    time.Duration `long:"nfts.throttle-period" env:"NFTS_THROTTLE_PERIOD" default:"1s" description:"minimal period between nfts requests from one client, 0 disables throttling"`
	AvatarMaxSourceSize   int64         `long:"avatar.max-source-size" env:"AVATAR_MAX_SOURCE_SIZE" default:"10000000" description:"max size of downloaded nft image"`
	AvatarDownloadTimeout time.Duration `long:"avatar.download-timeout" env:"AVATAR_DOWNLOAD_TIMEOUT" default:"10s" description:"nft image download timeout"`
	AvatarRenderTimeout   time.Duration `long:"avatar.render-timeout" env:"AVATAR_RENDER_TIMEOUT" default:"30s" description:"avatar rendering timeout, shared by concurrent requests of the same avatar"`

	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`

	postgres.Options
	S3Opts
	SQSOpts
	IndexerOpts
}{}

var errTerminated = errors.New("terminated")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("failed to load .env")
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Resume"
	parser.LongDescription = "Resume"

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
	is := postgres.New(db)
	fs := mustGetFileStorage()
	ix := mustGetIndexer()

	pingers := []health.Pinger{health.PingFunc(db.PingContext)}

	serverOpts := server.Options{
		MaxBodySize:    opts.MaxBodySize,
		RequestTimeout: opts.RequestTimeout,
		NFTsThrottler:  throttler.New(opts.NFTsThrottlePeriod),
	}

	if ix != nil {
		serverOpts.Indexer = ix
		pingers = append(pingers, ix)
	}

	if fs != nil {
		pingers = append(pingers, fs)
	}

	if ix != nil && fs != nil {
		serverOpts.Renderer = avatar.New(is, fs, ix,
			&http.Client{Timeout: opts.AvatarDownloadTimeout}, opts.AvatarMaxSourceSize, opts.AvatarRenderTimeout)
	} else {
		logrus.Warn("indexer or file storage is not configured, avatar rendering is disabled")
	}

	r := chi.NewMux()

	server.SetupRouter(service.New(is, mustGetProducer()), r, serverOpts)
	health.SetupRouter(r, pingers...)
	r.Handle("/metrics", promhttp.Handler())

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: r,
	}

	gr, _ := errgroup.WithContext(context.Background())
	gr.Go(srv.ListenAndServe)

	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		s := <-sigs

		logrus.Infof("terminating by %s signal", s)

		if err := srv.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to gracefully shutdown server")
		}

		if err := db.Close(); err != nil {
			logrus.WithError(err).Error("failed to close database connection")
		}

		return errTerminated
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
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
