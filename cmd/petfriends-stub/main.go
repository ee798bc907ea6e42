/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

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

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nscaledev/petfriends-acceptance/test/api/stub"
)

type options struct {
	listen   string
	email    string
	password string
	logLevel string
	noSeed   bool
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.listen, "listen", ":8080", "Address to serve the stand-in API on.")
	f.StringVar(&o.email, "email", stub.DefaultEmail, "Email of the user that can obtain a key.")
	f.StringVar(&o.password, "password", stub.DefaultPassword, "Password of that user.")
	f.StringVar(&o.logLevel, "log-level", "info", "Log level, one of debug, info, warn or error.")
	f.BoolVar(&o.noSeed, "no-seed", false, "Start with no pets.")
}

func newLogger(level string) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		l,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func seed(o *options) []stub.SeedPet {
	if o.noSeed {
		return nil
	}

	return stub.SeedFor(o.email)
}

func run(o *options, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr: o.listen,
		Handler: stub.NewRouter(stub.Options{
			Users: []stub.User{
				{Email: o.email, Password: o.password},
				{Email: stub.OtherEmail, Password: stub.OtherPassword},
			},
			Seed:   seed(o),
			Logger: logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		errs <- server.ListenAndServe()
	}()

	logger.Info("stand-in api listening", zap.String("address", o.listen), zap.String("email", o.email))

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := newLogger(o.logLevel)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	defer func() { _ = logger.Sync() }()

	if err := run(&o, logger); err != nil {
		logger.Error("stand-in api failed", zap.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}
