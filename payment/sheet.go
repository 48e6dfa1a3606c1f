package payment

import "context"

// Sheet is the provider-owned payment UI. Configure must succeed before
// Present; a later Configure supersedes an earlier one.
//
// Present blocks until the user finishes. It returns nil when the payment was
// confirmed, an error matching ErrUserCancelled when the user backed out, and
// a *PresentationError when the sheet itself failed.
type Sheet interface {
	Configure(ctx context.Context, secret ClientSecret, merchant MerchantConfig) error
	Present(ctx context.Context) error
}
