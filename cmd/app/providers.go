package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faqdesk/internal/domain/auth"
	"github.com/yanqian/faqdesk/internal/domain/faq"
	"github.com/yanqian/faqdesk/internal/domain/lead"
	"github.com/yanqian/faqdesk/internal/domain/notify"
	"github.com/yanqian/faqdesk/internal/infra/archive"
	"github.com/yanqian/faqdesk/internal/infra/config"
	"github.com/yanqian/faqdesk/internal/infra/faqrepo"
	"github.com/yanqian/faqdesk/internal/infra/faqstore"
	"github.com/yanqian/faqdesk/internal/infra/filewatch"
	"github.com/yanqian/faqdesk/internal/infra/leadrepo"
	"github.com/yanqian/faqdesk/internal/infra/notify/email"
	"github.com/yanqian/faqdesk/internal/infra/notify/logchannel"
	"github.com/yanqian/faqdesk/internal/infra/notify/sheets"
	"github.com/yanqian/faqdesk/internal/infra/notify/telegram"
	"github.com/yanqian/faqdesk/internal/infra/queue"
	"github.com/yanqian/faqdesk/internal/infra/tariffrepo"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		TrendingLimit: cfg.FAQ.TrendingLimit,
		PopularLimit:  cfg.FAQ.PopularLimit,
		RecentLimit:   cfg.FAQ.RecentLimit,
	}
}

func provideFAQRepository(cfg *config.Config, logger *slog.Logger) *faqrepo.FileRepository {
	return faqrepo.NewFileRepository(cfg.Data.FAQPath, logger)
}

func provideTariffRepository(cfg *config.Config, logger *slog.Logger) *tariffrepo.FileRepository {
	return tariffrepo.NewFileRepository(cfg.Data.TariffsPath, logger)
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		Secret:       cfg.Admin.Secret,
		TokenTTL:     cfg.Admin.TokenTTL,
	}
}

// provideValkeyClient returns nil when Valkey is not configured or not reachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.FAQ.Redis.Enabled && !cfg.Leads.Queue.Valkey {
		return nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, using in-process fallbacks", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, using in-process fallbacks", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, using in-process fallbacks", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey connected", "addr", cfg.FAQ.Redis.Addr)
	return client
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.FAQ.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.FAQ.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.FAQ.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideFAQStore(cfg *config.Config, client valkey.Client, logger *slog.Logger) faq.Store {
	if cfg.FAQ.Redis.Enabled && client != nil {
		logger.Info("faq trending store backed by valkey")
		return faqstore.NewValkeyStore(client, cfg.FAQ.Redis.Prefix)
	}
	return faqstore.NewMemoryStore()
}

func provideArchiver(cfg *config.Config, logger *slog.Logger) faq.Archiver {
	if !cfg.Archive.Enabled {
		return archive.Noop{}
	}
	archiver, err := archive.NewS3Archiver(archive.Options{
		Endpoint:  cfg.Archive.Endpoint,
		AccessKey: cfg.Archive.AccessKey,
		SecretKey: cfg.Archive.SecretKey,
		Bucket:    cfg.Archive.Bucket,
		Region:    cfg.Archive.Region,
		Prefix:    cfg.Archive.Prefix,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize snapshot archive, archiving disabled", "error", err)
		return archive.Noop{}
	}
	logger.Info("faq snapshot archive enabled", "bucket", cfg.Archive.Bucket)
	return archiver
}

func provideLeadRepository(cfg *config.Config, logger *slog.Logger) lead.Repository {
	fallback := leadrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Leads.Postgres.DSN)
	if dsn == "" {
		logger.Info("leads postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Leads.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Leads.Postgres.MaxConns
	}
	if cfg.Leads.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Leads.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := leadrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare applications table, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("leads postgres repository enabled")
	return repo
}

func provideNotifyConfig(cfg *config.Config) notify.Config {
	return notify.Config{
		Workers:        cfg.Leads.Workers,
		ChannelTimeout: cfg.Notify.ChannelTimeout,
	}
}

// provideNotifyChannels builds every enabled channel. The log channel is used
// when none is enabled so submissions remain visible.
func provideNotifyChannels(cfg *config.Config, logger *slog.Logger) []notify.Channel {
	var channels []notify.Channel
	if e := cfg.Notify.Email; e.Enabled {
		channels = append(channels, email.New(email.Config{
			Host:     e.Host,
			Port:     e.Port,
			Username: e.Username,
			Password: e.Password,
			From:     e.From,
			To:       e.To,
		}))
	}
	if t := cfg.Notify.Telegram; t.Enabled {
		channels = append(channels, telegram.New(t.BaseURL, t.Token, t.ChatID))
	}
	if s := cfg.Notify.Sheets; s.Enabled {
		ch, err := sheets.NewFromServiceAccount(context.Background(), sheets.Config{
			SpreadsheetID:   s.SpreadsheetID,
			Range:           s.Range,
			CredentialsFile: s.CredentialsFile,
		})
		if err != nil {
			logger.Error("failed to initialize sheets channel, skipping", "error", err)
		} else {
			channels = append(channels, ch)
		}
	}
	if len(channels) == 0 {
		logger.Info("no notification channels enabled, logging applications instead")
		channels = append(channels, logchannel.New(logger))
	}
	return channels
}

// provideJobQueue picks the queue and routes its jobs to the dispatcher.
func provideJobQueue(cfg *config.Config, client valkey.Client, dispatcher *notify.Dispatcher, logger *slog.Logger) queue.HandlerQueue {
	handler := func(ctx context.Context, job queue.Job) {
		dispatcher.HandleJob(ctx, job.Name, job.Payload)
	}
	if cfg.Leads.Queue.Valkey && client != nil {
		q := queue.NewValkeyQueue(client, cfg.Leads.Queue.Key, logger)
		q.SetHandler(handler)
		logger.Info("notification queue backed by valkey", "key", cfg.Leads.Queue.Key)
		return q
	}
	return queue.NewImmediateQueue(handler)
}

func provideLeadQueue(q queue.HandlerQueue) lead.JobQueue {
	return q
}

// provideWatcher returns nil when hot reload is disabled.
func provideWatcher(cfg *config.Config, faqRepo *faqrepo.FileRepository, tariffRepo *tariffrepo.FileRepository, logger *slog.Logger) (*filewatch.Watcher, error) {
	if !cfg.Data.Watch {
		return nil, nil
	}
	w := filewatch.New(cfg.Data.WatchDebounce, logger)
	if err := w.Watch(faqRepo.Path(), faqRepo.Invalidate); err != nil {
		return nil, err
	}
	if err := w.Watch(tariffRepo.Path(), tariffRepo.Invalidate); err != nil {
		return nil, err
	}
	return w, nil
}
