package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/raywall/todo-quick-service/auth"
	"github.com/raywall/todo-quick-service/pkg/awsclient"
	"github.com/raywall/todo-quick-service/pkg/config"
	"github.com/raywall/todo-quick-service/pkg/logger"
	"github.com/raywall/todo-quick-service/pkg/metrics"
	"github.com/raywall/todo-quick-service/todoservice"
	"github.com/raywall/todo-quick-service/todostore"
	"github.com/raywall/todo-quick-service/transport"
)

var (
	configPath string
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func init() {
	configPath = os.Getenv("CONFIG_FILE_PATH")
}

func main() {
	if configPath == "" {
		log.Fatalln("FATAL: CONFIG_FILE_PATH não definido")
	}

	if err := run(context.Background(), configPath); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// .env só faz sentido rodando fora do Lambda
	if cfg.Service.Runtime == "local" {
		_ = godotenv.Load()
	}

	appLogger := logger.Configure(cfg.Service.Logging)
	zlog.Logger = appLogger

	provider, err := metrics.Setup(cfg.Service.Metrics)
	if err != nil {
		return err
	}

	awsCfg, err := awsclient.GetAWSConfig(ctx, cfg.Service.Region)
	if err != nil {
		return fmt.Errorf("falha ao carregar configuração AWS: %w", err)
	}

	verifier, err := buildVerifier(ctx, cfg, awsCfg)
	if err != nil {
		return err
	}

	store := todostore.New(
		awsclient.NewDynamoDBClient(awsCfg, cfg.Todos.EndpointOverride),
		awsclient.NewPresignClient(awsCfg),
		todostore.Config{
			TableName:        cfg.Todos.TableName,
			BucketName:       cfg.Todos.BucketName,
			URLExpirySeconds: cfg.Todos.URLExpirySeconds,
		},
	)

	svc := todoservice.New(store, provider)
	handler := transport.NewHandler(svc, verifier)

	switch cfg.Service.Runtime {
	case "local":
		return serverStarter(handler, cfg.Service.Port)
	case "lambda":
		lambdaStarter(transport.NewLambdaHandler(handler).Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Service.Runtime)
	}
}

func buildVerifier(ctx context.Context, cfg *config.ServiceConfig, awsCfg aws.Config) (*auth.Verifier, error) {
	if cfg.Auth.SecretID != "" {
		return auth.NewVerifierFromSecretsManager(ctx, awsclient.NewSecretsClient(awsCfg), cfg.Auth.SecretID)
	}
	return auth.NewVerifier(cfg.Auth.Secret), nil
}
