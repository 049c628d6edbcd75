package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/tally/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"TALLY_CONFIG",
		"TALLY_ADDR",
		"TALLY_DATA_URL",
		"TALLY_DATA_DIR",
		"TALLY_REQUEST_TIMEOUT_S",
		"TALLY_REFRESH_INTERVAL_S",
		"TALLY_WATCH",
		"TALLY_MAX_LIMIT",
		"TALLY_LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tally.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9180")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.DataURL, convey.ShouldEqual, "")
				convey.So(cfg.RequestTimeoutS, convey.ShouldEqual, 10)
				convey.So(cfg.Watch, convey.ShouldBeTrue)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("TALLY_ADDR", ":8080")
			_ = os.Setenv("TALLY_DATA_URL", "http://scores.example/data")
			_ = os.Setenv("TALLY_REQUEST_TIMEOUT_S", "5")
			_ = os.Setenv("TALLY_MAX_LIMIT", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataURL, convey.ShouldEqual, "http://scores.example/data")
				convey.So(cfg.RequestTimeoutS, convey.ShouldEqual, 5)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
addr: ":9090"
data_dir: "/srv/scores"
refresh_interval_s: 60
watch: false
months:
  - "1"
  - "2"
`
			_ = os.Setenv("TALLY_CONFIG", createTempConfigFile(t, yamlContent))
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/scores")
				convey.So(cfg.RefreshIntervalS, convey.ShouldEqual, 60)
				convey.So(cfg.Watch, convey.ShouldBeFalse)
				convey.So(cfg.Months, convey.ShouldResemble, []string{"1", "2"})
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			clearConfigEnvVars()
			_ = os.Setenv("TALLY_CONFIG", createTempConfigFile(t, `addr: ":9090"`))
			_ = os.Setenv("TALLY_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the env var should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config is invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("TALLY_CONFIG", createTempConfigFile(t, `
addr: ""
`))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should report an invalid config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file is missing", func() {
			clearConfigEnvVars()
			_ = os.Setenv("TALLY_CONFIG", "/nonexistent/tally.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should report a load failure", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}
