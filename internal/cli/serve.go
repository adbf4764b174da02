package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quadplan/quadplan/internal/server"
	"github.com/quadplan/quadplan/pkg/cache"
	"github.com/quadplan/quadplan/pkg/pipeline"
	"github.com/quadplan/quadplan/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string // listen address
	storeBackend string // "file" or "mongo"
	storeDir     string // file store directory
	mongoURI     string // mongo connection string
	mongoDB      string // mongo database name
	cacheBackend string // "file", "redis" or "none"
	redisAddr    string // redis address
}

// newServeCmd creates the serve command running the plan HTTP API.
//
// Storage defaults to one JSON file per plan under the user data
// directory; --store mongo switches to MongoDB for shared deployments.
// The artifact cache defaults to the file cache and can be pointed at
// Redis with --cache redis.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.storeBackend, "store", "file", "plan store backend: file, mongo")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "file store directory (default: user data dir)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo connection string")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "mongo database name")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", "file", "artifact cache backend: file, redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	st, err := newStore(cmd, opts)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close(ctx)

	c, err := newServeCache(cmd, opts)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, logger)
	return server.New(st, runner, logger).Run(ctx, opts.addr)
}

func newStore(cmd *cobra.Command, opts *serveOpts) (store.Store, error) {
	switch opts.storeBackend {
	case "file":
		dir := opts.storeDir
		if dir == "" {
			var err error
			if dir, err = dataDir(); err != nil {
				return nil, err
			}
		}
		return store.NewFileStore(dir)
	case "mongo":
		return store.NewMongoStore(cmd.Context(), opts.mongoURI, opts.mongoDB, "plans")
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.storeBackend)
	}
}

func newServeCache(cmd *cobra.Command, opts *serveOpts) (cache.Cache, error) {
	switch opts.cacheBackend {
	case "file":
		return newCache(false)
	case "redis":
		return cache.NewRedisCache(cmd.Context(), opts.redisAddr, appName)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.cacheBackend)
	}
}
