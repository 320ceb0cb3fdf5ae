package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"davinci_debate/answer"
	"davinci_debate/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the answer command over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "http listen address (overrides config server_addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	a, err := buildAnswerer(cfg, answer.DefaultTopK)
	if err != nil {
		return err
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(a, logger)
	if err != nil {
		return err
	}

	listen := cfg.ServerAddr
	if serveAddr != "" {
		listen = serveAddr
	}
	httpSrv := newHTTPServer(listen, srv.Routes())

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", listen)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-cmd.Context().Done():
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
