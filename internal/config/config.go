package config

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
)

type Config struct {
	TaxRate                  decimal.Decimal `env:"TAX_RATE"                   envDefault:"0.06125"`
	DiscountPerPoint         decimal.Decimal `env:"DISCOUNT_PER_POINT"         envDefault:"0.10"`
	PointsPerDollar          decimal.Decimal `env:"POINTS_PER_DOLLAR"          envDefault:"1"`
	MinPointsPerVisit        decimal.Decimal `env:"MIN_POINTS_PER_VISIT"       envDefault:"5"`
	RunAddr                  string          `env:"RUN_ADDRESS"                envDefault:"localhost:8080"`
	DatabaseURI              string          `env:"DATABASE_URI"               envDefault:""`
	SecretKey                string          `env:"SECRET_KEY"                 envDefault:""`
	LogLevel                 string          `env:"LOG_LEVEL"                  envDefault:"info"`
	TimeZone                 string          `env:"TIME_ZONE"                  envDefault:"UTC"`
	LockTimeout              time.Duration   `env:"LOCK_TIMEOUT"               envDefault:"2s"`
	SettlementAcquireTimeout time.Duration   `env:"SETTLEMENT_ACQUIRE_TIMEOUT" envDefault:"500ms"`
	MaxConcurrentSettlements uint64          `env:"MAX_CONCURRENT_SETTLEMENTS" envDefault:"64"`
}

type Builder struct {
	cfg *Config
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{
		cfg: &Config{
			TaxRate:                  decimal.Zero,
			DiscountPerPoint:         decimal.Zero,
			PointsPerDollar:          decimal.Zero,
			MinPointsPerVisit:        decimal.Zero,
			RunAddr:                  "",
			DatabaseURI:              "",
			SecretKey:                "",
			LogLevel:                 "",
			TimeZone:                 "",
			LockTimeout:              model.DefaultLockTimeout,
			SettlementAcquireTimeout: model.DefaultTimeout,
			MaxConcurrentSettlements: model.DefaultMaxConcurrentSettlements,
		},
		log: log,
	}
}

// FromDotEnv loads an optional .env file into the process environment.
func (b *Builder) FromDotEnv(paths ...string) *Builder {
	if err := godotenv.Load(paths...); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelDebug, "no .env file loaded", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) FromEnv() *Builder {
	if err := env.Parse(b.cfg); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to parse config", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) FromFlags() *Builder {
	return b.fromFlagSet(flag.CommandLine, nil)
}

func (b *Builder) fromFlagSet(fs *flag.FlagSet, args []string) *Builder {
	fs.StringVar(&b.cfg.RunAddr, "a", b.cfg.RunAddr, "Run address")
	fs.StringVar(&b.cfg.DatabaseURI, "d", b.cfg.DatabaseURI, "Database URI")
	fs.StringVar(&b.cfg.SecretKey, "k", b.cfg.SecretKey, "Secret key")
	fs.StringVar(&b.cfg.LogLevel, "l", b.cfg.LogLevel, "Log level")
	fs.StringVar(&b.cfg.TimeZone, "tz", b.cfg.TimeZone, "Time zone of promotion windows")
	fs.TextVar(&b.cfg.TaxRate, "tax", b.cfg.TaxRate, "Tax rate as a fraction")
	fs.TextVar(&b.cfg.DiscountPerPoint, "ppv", b.cfg.DiscountPerPoint, "Discount per redeemed point")
	fs.DurationVar(&b.cfg.LockTimeout, "lock-timeout", b.cfg.LockTimeout, "Row lock timeout")
	fs.Uint64Var(&b.cfg.MaxConcurrentSettlements, "settlements",
		b.cfg.MaxConcurrentSettlements, "Max concurrent settlements")

	if args == nil {
		flag.Parse()
		return b
	}
	if err := fs.Parse(args); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to parse flags", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) GetConfig() *Config {
	return b.cfg
}

// Location resolves TimeZone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil || c.TimeZone == "" {
		return time.UTC
	}
	return loc
}
