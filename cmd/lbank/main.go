package main

import (
	"context"
	"log/slog"
	"os"

	"lbank/config"
	"lbank/internal/delivery"
	"lbank/internal/delivery/http"
	"lbank/internal/delivery/http/middleware"
	"lbank/internal/delivery/http/router/handler"
	"lbank/internal/domain/service"
	"lbank/internal/infra/auth"
	"lbank/internal/infra/banklink"
	"lbank/internal/infra/cache"
	logs "lbank/internal/infra/log"
	"lbank/internal/infra/paymentrail"
	"lbank/internal/infra/persistence/postgres"
	"lbank/internal/infra/pubsub"
	"lbank/internal/infra/qrcode"
	"lbank/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewSessionRepository,
			postgres.NewBankAccountRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newBcryptHasher,
			auth.NewSessionTokenService,
			banklink.NewClient,
			paymentrail.NewClient,
			cache.NewDashboardCache,
			newQRCodeService,
		),
		pubsub.Module,
	)
}

// newBcryptHasher creates the password hasher, honoring a configured cost.
func newBcryptHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil || cfg.Auth.BcryptCost == 0 {
		return auth.NewBcryptHasher()
	}

	return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

// newQRCodeService creates the share QR renderer with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.ShareQR == nil {
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.ShareQR.Size, cfg.ShareQR.ErrorCorrectionLevel, cfg.ShareQR.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewBankService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewBankHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
