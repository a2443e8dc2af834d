package tools

import (
	"investagent/pkg/core/bybit"
	"investagent/pkg/core/cache"
	"investagent/pkg/core/edgar"
	"investagent/pkg/core/report"
	"investagent/pkg/core/secapi"
	"investagent/pkg/core/trades"
)

// Deps are the services the tool bindings close over. Trades may be nil
// when DATABASE_URL is not configured; journal tools then report
// unavailability through the error payload.
type Deps struct {
	Analyzer *report.Analyzer
	Edgar    *edgar.Client
	Cache    *cache.Cache
	SecAPI   *secapi.Client
	Bybit    *bybit.Client
	Trades   *trades.Store
}

// RegisterAll binds every agent tool into the registry. Registration order
// is the order tools are presented to the model.
func RegisterAll(r *Registry, deps Deps) {
	registerReportTools(r, deps)
	registerCompanyTools(r, deps)
	registerMarketTools(r, deps)
	registerJournalTools(r, deps)
}
