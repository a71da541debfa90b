package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/encoder/pb"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	badgerRepo     *repo.BadgerLayoutRepo
	redisClient    *redis.Client
	layoutRepo     i.LayoutRepo
	layoutCache    i.LayoutCache
	mazeService    i.MazeService
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	router         *api.Router
	appLogger      i.Logger
	recordEncoder  = &pb.Protobuf{}
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initLayoutRepo(ctx context.Context) {
	switch config.Envs.StoreDriver {
	case config.StoreDriverBadger:
		var err error
		badgerRepo, err = repo.NewBadgerLayoutRepo(config.Envs.BadgerPath, recordEncoder)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Opening badger store: %v", err))
			os.Exit(1)
		}
		layoutRepo = badgerRepo
	default:
		initMongo(ctx)
		mongoRepo := repo.NewMongoLayoutRepo(mongoClient, config.Envs.DBName, "mazes")
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			appLogger.Error(fmt.Sprintf("Creating maze indexes: %v", err))
			os.Exit(1)
		}
		layoutRepo = mongoRepo
	}
	appLogger.Info(fmt.Sprintf("Layout repository initialized (%s)", config.Envs.StoreDriver))
}

func initLayoutCache(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, running without layout cache")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	var err error
	layoutCache, err = cache.NewRedisLayoutCache(redisClient, recordEncoder, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating layout cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Layout cache initialized")
}

func initMazeService() {
	mazeLogger, err := logger.New("MAZE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.NewMazeService(&service.Config{
		Repo:         layoutRepo,
		Cache:        layoutCache,
		Logger:       mazeLogger,
		MaxDimension: config.Envs.MazeMaxDimension,
		Arena: maze.ArenaConfig{
			UnitWidth:     config.Envs.MazeUnitWidth,
			UnitHeight:    config.Envs.MazeUnitHeight,
			WallThickness: config.Envs.MazeWallThickness,
		},
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		GinMode:                 config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	config.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	initLayoutRepo(ctx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
		if badgerRepo != nil {
			_ = badgerRepo.Close()
		}
	}()

	initLayoutCache(ctx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initMazeService()
	initMazeController()
	initJWTTokenizer()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
