package logg

const (
	Layer     = "layer"
	Operation = "operation"
	Selector  = "selector"
	Kind      = "kind"
	Method    = "method"
	Step      = "step"
	Plan      = "plan"
	URL       = "url"
	XPath     = "xpath"
)
