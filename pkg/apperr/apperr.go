package apperr

import "fmt"

const (
	MetaReason   = "reason"
	MetaStage    = "stage"
	MetaField    = "field"
	MetaPlanID   = "plan_id"
	MetaStep     = "step"
	MetaMethod   = "method"
	MetaSelector = "selector"
	MetaXPath    = "xpath"
	MetaURL      = "url"

	StagePreparation = "preparation"
	StageBrowser     = "browser"
	StageResolution  = "resolution"
	StageTieBreak    = "tie_break"
	StageEmission    = "emission"
	StageNavigation  = "navigation"
	StagePlan        = "plan"

	CodeInternal          = "internal"
	CodeInvalidArgument   = "invalid_argument"
	CodeNotFound          = "not_found"
	CodeUnavailable       = "unavailable"
	CodeTimeout           = "timeout"
	CodeBrowserNotReady   = "browser_not_ready"
	CodeLocatorInvalid    = "locator_invalid"
	CodeQueryError        = "query_error"
	CodeAdapterError      = "adapter_error"
	CodeMissingCommand    = "missing_command"
	CodeUnsupportedMethod = "unsupported_method"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapWithReason(op, code string, err error, reason string) error {
	return Wrap(op, code, err, map[string]any{
		MetaReason: reason,
	})
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, fmt.Errorf(reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

func NotFoundError(op string, err error) error {
	return Wrap(op, CodeNotFound, err, map[string]any{
		MetaReason: "not_found",
	})
}
