package econstat_test

import (
	"fmt"
	"path/filepath"

	"go.uber.org/fx"

	econstat "github.com/vic2tools/econstat"
	"github.com/vic2tools/econstat/config"
)

// ArchiveService is a small service that depends on the tool configuration.
type ArchiveService struct {
	Config *config.Config
}

// SavesGlob returns the glob the service scans for collected saves.
func (s *ArchiveService) SavesGlob() string {
	return filepath.Join(s.Config.SavesDir, "*.txt")
}

// Example_appWithConfigIntegration demonstrates how to use App, Options, and
// the config package together: configuration is supplied to the Fx container
// and services receive it by constructor injection.
func Example_appWithConfigIntegration() {
	cfg := &config.Config{SavesDir: "archive"}
	cfg.SetDefaults()

	configModule := fx.Module("config",
		fx.Supply(cfg),
	)

	serviceModule := fx.Module("service",
		fx.Provide(func(cfg *config.Config) *ArchiveService {
			return &ArchiveService{
				Config: cfg,
			}
		}),
	)

	var service *ArchiveService

	invokeModule := fx.Module("invoke",
		fx.Invoke(func(s *ArchiveService) {
			service = s
		}),
	)

	app := econstat.NewApp(
		econstat.WithLogLevel("error"),
		econstat.WithModules(configModule, serviceModule, invokeModule),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	fmt.Printf("Saves glob: %s\n", service.SavesGlob())
	fmt.Printf("Batch size: %d\n", service.Config.BatchSize)
	// Output:
	// Saves glob: archive/*.txt
	// Batch size: 50
}
