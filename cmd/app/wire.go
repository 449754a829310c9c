//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/faqdesk/internal/bootstrap"
	"github.com/yanqian/faqdesk/internal/domain/auth"
	"github.com/yanqian/faqdesk/internal/domain/faq"
	"github.com/yanqian/faqdesk/internal/domain/lead"
	"github.com/yanqian/faqdesk/internal/domain/notify"
	"github.com/yanqian/faqdesk/internal/domain/tariff"
	"github.com/yanqian/faqdesk/internal/infra/config"
	"github.com/yanqian/faqdesk/internal/infra/faqrepo"
	"github.com/yanqian/faqdesk/internal/infra/tariffrepo"
	httpiface "github.com/yanqian/faqdesk/internal/interface/http"
	"github.com/yanqian/faqdesk/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideFAQRepository,
		provideTariffRepository,
		provideAuthConfig,
		provideValkeyClient,
		provideFAQStore,
		provideArchiver,
		provideLeadRepository,
		provideNotifyConfig,
		provideNotifyChannels,
		provideJobQueue,
		provideLeadQueue,
		provideWatcher,
		notify.NewDispatcher,
		faq.NewService,
		tariff.NewService,
		lead.NewService,
		auth.NewService,
		wire.Bind(new(faq.Repository), new(*faqrepo.FileRepository)),
		wire.Bind(new(tariff.Repository), new(*tariffrepo.FileRepository)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
