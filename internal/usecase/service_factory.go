package usecase

import (
	"github.com/posiumhq/posium-codegen/internal/usecase/adapters"
)

type serviceFactory struct {
	deps Params
}

func newServiceFactory(deps Params) *serviceFactory {
	return &serviceFactory{
		deps: deps,
	}
}

func (f *serviceFactory) CreateScriptService() adapters.ScriptService {
	return NewScriptService(ScriptServiceParams{
		Config:   f.deps.Config,
		Logger:   f.deps.Logger,
		Browser:  f.deps.Browser,
		Resolver: f.deps.Resolver,
	})
}

func (f *serviceFactory) CreateBrowserService() adapters.BrowserService {
	return f.deps.Browser
}
