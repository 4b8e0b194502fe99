package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectTimeout bounds connection establishment. Statements have no timeout.
const ConnectTimeout = 5 * time.Second

type PostgresConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, int(ConnectTimeout.Seconds()))
}

// ConnectionError reports that the store could not be reached, rejected the
// credentials, or did not answer within ConnectTimeout.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Connector hands out independent connections.
type Connector interface {
	Connect(ctx context.Context) (*Conn, error)
}

// Conn is a single-connection handle. Close must be called on every path.
type Conn struct {
	DB    *gorm.DB
	sqlDB *sql.DB
}

func (c *Conn) Close() error {
	if c == nil || c.sqlDB == nil {
		return nil
	}
	return c.sqlDB.Close()
}

// Provider opens a fresh connection per call. It never pools or retries.
type Provider struct {
	target  string
	dialect func() gorm.Dialector
	timeout time.Duration
	log     *logrus.Entry
}

func NewProvider(logger *logrus.Logger, target string, dialect func() gorm.Dialector) *Provider {
	return &Provider{
		target:  target,
		dialect: dialect,
		timeout: ConnectTimeout,
		log: logger.WithFields(logrus.Fields{
			"component": "database",
			"target":    target,
		}),
	}
}

func NewPostgresProvider(logger *logrus.Logger, cfg PostgresConfig) *Provider {
	dsn := cfg.DSN()
	target := fmt.Sprintf("%s:%s/%s", cfg.Host, cfg.Port, cfg.DBName)
	return NewProvider(logger, target, func() gorm.Dialector {
		return postgres.Open(dsn)
	})
}

func (p *Provider) Connect(ctx context.Context) (*Conn, error) {
	db, err := gorm.Open(p.dialect(), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		closeQuietly(db)
		return nil, &ConnectionError{Target: p.target, Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Target: p.target, Err: err}
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, &ConnectionError{Target: p.target, Err: err}
	}

	p.log.Debug("Database connection opened")
	return &Conn{DB: db, sqlDB: sqlDB}, nil
}

// Check opens and immediately releases a connection.
func (p *Provider) Check(ctx context.Context) error {
	conn, err := p.Connect(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

func closeQuietly(db *gorm.DB) {
	if db == nil || db.ConnPool == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
