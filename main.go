package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza-store/config"
	"pizza-store/console"
	"pizza-store/handlers"
	"pizza-store/logger"
	"pizza-store/middleware"
	"pizza-store/repository"
	"pizza-store/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const usage = "Usage: pizza-store [-serve addr] <dbname> <port> <user>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole program behind main. It returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pizza-store", flag.ContinueOnError)
	serve := fs.String("serve", "", "serve the JSON API on this address instead of the console")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	cfg := config.Load(fs.Arg(0), fs.Arg(1), fs.Arg(2))
	logger.Initialize(cfg.Env)
	defer logger.Sync()

	console.Greeting(stdout)
	fmt.Fprintln(stdout, "Connecting to database...")
	fmt.Fprintf(stdout, "Connection URL: %s\n\n", cfg.URL())

	db, err := config.OpenDB(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "Error - Unable to Connect to Database: "+err.Error())
		fmt.Fprintln(stderr, "Make sure you started the database server and passed the correct connection arguments.")
		logger.Log.Error("connect failed", zap.String("url", cfg.URL()), zap.Error(err))
		return -1
	}
	fmt.Fprintln(stdout, "Done")

	repo := repository.New(db)
	if *serve != "" {
		err = serveAPI(*serve, cfg, repo, stdout)
	} else {
		app := console.NewApp(repo, console.NewPrompter(stdin, stdout, stderr))
		err = app.Run(context.Background())
	}

	status := 0
	if err != nil {
		fmt.Fprintln(stderr, err)
		logger.Log.Error("stopped with error", zap.Error(err))
		status = 1
	}
	shutdown(db, stdout)
	return status
}

func shutdown(db *gorm.DB, stdout io.Writer) {
	fmt.Fprint(stdout, "Disconnecting from database...")
	if err := config.CloseDB(db); err != nil {
		logger.Log.Warn("close database", zap.Error(err))
	}
	fmt.Fprintln(stdout, "Done\n\nBye !")
}

// serveAPI runs the HTTP API until SIGINT or SIGTERM.
func serveAPI(addr string, cfg config.Config, repo *repository.Repository, stdout io.Writer) error {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	routes.SetupRoutes(r, handlers.New(repo, middleware.NewAuth(cfg.JWTSecret, repo)))

	srv := &http.Server{Addr: addr, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("api listening", zap.String("addr", addr))
		fmt.Fprintln(stdout, "Serving API on "+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
