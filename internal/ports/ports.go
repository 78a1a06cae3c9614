package ports

import (
	"context"

	"github.com/posiumhq/posium-codegen/internal/entity"
)

type BrowserManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	Page() PageProbe
	IsReady() bool
}

// PageProbe is the narrow live-page capability the resolution engine
// consumes. Implementations never own the page session.
type PageProbe interface {
	// ResolveXPath waits up to timeoutMs for the xpath to address at least
	// one attached node and returns a handle on the first match.
	ResolveXPath(ctx context.Context, xpath string, timeoutMs float64) (Element, error)
	// Count reports how many elements the selector addresses through the
	// kind's native resolution mechanism.
	Count(ctx context.Context, kind entity.SelectorKind, selector string) (int, error)
}

// Element is a read-only handle on one DOM element.
type Element interface {
	Tag(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, bool, error)
	Attributes(ctx context.Context) (map[string]string, error)
	Text(ctx context.Context) (string, error)
	InputValue(ctx context.Context) (string, error)
	// AssociatedLabelText resolves a <label for=id> for the element's id,
	// falling back to the nearest ancestor <label>.
	AssociatedLabelText(ctx context.Context) (string, error)
	TextByID(ctx context.Context, id string) (string, error)
	OuterHTML(ctx context.Context) (string, error)
}

// TieBreaker proposes a replacement for the ranked candidate list. Any
// proposal is re-validated by the caller before acceptance.
type TieBreaker interface {
	ProposeSelector(ctx context.Context, req *entity.TieBreakRequest) (*entity.TieBreakProposal, error)
}

type SelectorResolver interface {
	Resolve(ctx context.Context, page PageProbe, xpath string) entity.SelectorInfo
}
