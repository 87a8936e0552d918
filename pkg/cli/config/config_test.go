package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/mnemosyne/pkg/cli/config"
)

func TestAppConfigDefaults(t *testing.T) {
	var app config.App

	cfg := gt.R1(app.Configure()).NoError(t)
	gt.Value(t, cfg.Prompt).Equal("")
	gt.Value(t, cfg.PipelineConcurrency).Equal(int64(0))
}

func TestAppConfigLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
prompt = "Describe this moment briefly."
pipeline_concurrency = 4
`
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))

	app := config.NewApp(path)
	cfg := gt.R1(app.Configure()).NoError(t)
	gt.Value(t, cfg.Prompt).Equal("Describe this moment briefly.")
	gt.Value(t, cfg.PipelineConcurrency).Equal(int64(4))
}

func TestAppConfigNegativeConcurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte("pipeline_concurrency = -1"), 0600))

	app := config.NewApp(path)
	_, err := app.Configure()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrInvalidConcurrency)).True()
}

func TestRepositoryMemoryBackend(t *testing.T) {
	repo := config.NewRepository("memory")

	r := gt.R1(repo.Configure(context.Background())).NoError(t)
	gt.Value(t, r).NotNil()
	gt.NoError(t, r.Close())
}

func TestRepositoryFirestoreRequiresProject(t *testing.T) {
	repo := config.NewRepository("firestore")

	_, err := repo.Configure(context.Background())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrMissingProjectID)).True()
}

func TestRepositoryUnknownBackend(t *testing.T) {
	repo := config.NewRepository("postgres")

	_, err := repo.Configure(context.Background())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrInvalidBackend)).True()
}
