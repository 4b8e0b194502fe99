package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sdko-org/ha-platform/internal/config"
	"github.com/sdko-org/ha-platform/internal/database"
)

var envKeys = []string{
	"PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
	"INIT_MAX_ATTEMPTS", "INIT_RETRY_INTERVAL", "INIT_RETRY_MULTIPLIER", "INIT_RETRY_MAX_DELAY",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "SHUTDOWN_TIMEOUT",
}

var _ = Describe("Config", func() {
	BeforeEach(func() {
		for _, k := range envKeys {
			if v, ok := os.LookupEnv(k); ok {
				DeferCleanup(os.Setenv, k, v)
				os.Unsetenv(k)
			}
		}
	})

	setenv := func(k, v string) {
		Expect(os.Setenv(k, v)).To(Succeed())
		DeferCleanup(os.Unsetenv, k)
	}

	Describe("Load", func() {
		It("falls back to the defaults", func() {
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Addr()).To(Equal("0.0.0.0:8080"))
			Expect(cfg.Postgres()).To(Equal(database.PostgresConfig{
				Host:     "postgres",
				Port:     "5432",
				User:     "postgres",
				Password: "postgres",
				DBName:   "appdb",
				SSLMode:  "disable",
			}))
			Expect(cfg.InitMaxAttempts).To(BeZero())
			Expect(cfg.InitRetryInterval).To(Equal(2 * time.Second))
			Expect(cfg.InitRetryMultiplier).To(Equal(1.0))
			Expect(cfg.LogLevel).To(Equal("info"))
			Expect(cfg.LogFormat).To(Equal(config.LogFormatText))
			Expect(cfg.ShutdownTimeout).To(Equal(10 * time.Second))
		})

		It("reads overrides from the environment", func() {
			setenv("PORT", "9090")
			setenv("DB_HOST", "db.internal")
			setenv("DB_NAME", "visits")
			setenv("DB_USER", "app")
			setenv("DB_PASSWORD", "s3cret")
			setenv("INIT_MAX_ATTEMPTS", "10")
			setenv("INIT_RETRY_INTERVAL", "500ms")
			setenv("LOG_FORMAT", "json")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Addr()).To(Equal("0.0.0.0:9090"))
			Expect(cfg.DBHost).To(Equal("db.internal"))
			Expect(cfg.DBName).To(Equal("visits"))
			Expect(cfg.DBUser).To(Equal("app"))
			Expect(cfg.DBPassword).To(Equal("s3cret"))
			Expect(cfg.InitMaxAttempts).To(Equal(10))
			Expect(cfg.InitRetryInterval).To(Equal(500 * time.Millisecond))
			Expect(cfg.LogFormat).To(Equal(config.LogFormatJSON))
		})

		It("ignores unparsable numbers", func() {
			setenv("PORT", "eighty")
			setenv("INIT_RETRY_INTERVAL", "soon")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Port).To(Equal(8080))
			Expect(cfg.InitRetryInterval).To(Equal(2 * time.Second))
		})

		It("accepts a constant retry interval above the growth cap", func() {
			setenv("INIT_RETRY_INTERVAL", "45s")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.InitRetryInterval).To(Equal(45 * time.Second))
			Expect(cfg.InitRetryMaxDelay).To(Equal(30 * time.Second))
		})

		It("rejects a growth cap below the interval when the interval grows", func() {
			setenv("INIT_RETRY_INTERVAL", "45s")
			setenv("INIT_RETRY_MULTIPLIER", "2")

			_, err := config.Load()
			Expect(err).To(MatchError(ContainSubstring("InitRetryMaxDelay")))
		})

		It("rejects an out of range port", func() {
			setenv("PORT", "70000")

			_, err := config.Load()
			Expect(err).To(MatchError(ContainSubstring("Port")))
		})

		It("rejects an unknown log level", func() {
			setenv("LOG_LEVEL", "verbose")

			_, err := config.Load()
			Expect(err).To(MatchError(ContainSubstring("LogLevel")))
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			var err error
			cfg, err = config.Load()
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a negative attempt limit", func() {
			cfg.InitMaxAttempts = -1
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("InitMaxAttempts")))
		})

		It("rejects a shrinking retry multiplier", func() {
			cfg.InitRetryMultiplier = 0.5
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("InitRetryMultiplier")))
		})

		It("rejects a non numeric database port", func() {
			cfg.DBPort = "pg"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("DBPort")))
		})

		It("rejects an empty database host", func() {
			cfg.DBHost = ""
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("DBHost")))
		})
	})
})
