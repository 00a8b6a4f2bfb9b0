package container

import (
	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/samersoltani/dewini-server/config"
	"github.com/samersoltani/dewini-server/internal/blob"
	"github.com/samersoltani/dewini-server/internal/resettoken"
	"github.com/samersoltani/dewini-server/pkg/mailer"
)

// app-level container to share constructed components across packages;
// the router wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	blobDir   *blob.Dir
	blobStore blob.Store

	mailSender mailer.Sender
	tokenStore resettoken.Store
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetBlobDir(d *blob.Dir) { blobDir = d }
func GetBlobDir() *blob.Dir  { return blobDir }

func SetBlobStore(s blob.Store) { blobStore = s }
func GetBlobStore() blob.Store  { return blobStore }

func SetMailer(m mailer.Sender) { mailSender = m }
func GetMailer() mailer.Sender  { return mailSender }

func SetTokenStore(s resettoken.Store) { tokenStore = s }
func GetTokenStore() resettoken.Store  { return tokenStore }
