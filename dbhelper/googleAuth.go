package dbhelper

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// ExternalIdentity is what an external provider proves about a caller.
type ExternalIdentity struct {
	Email string
	Name  string
}

// VerifyExternalIdentity exchanges an opaque provider token for a verified
// identity. The provider detail stays behind this type.
type VerifyExternalIdentity func(ctx context.Context, token string) (ExternalIdentity, error)

// VerifyGoogleIdentity resolves a Google access token against the userinfo
// endpoint.
func VerifyGoogleIdentity(ctx context.Context, token string) (ExternalIdentity, error) {
	svc, err := oauth2api.NewService(ctx,
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrExternalTokenInvalid, err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrExternalTokenInvalid, err)
	}
	if info.Email == "" {
		return ExternalIdentity{}, fmt.Errorf("%w: no email in profile", ErrExternalTokenInvalid)
	}
	return ExternalIdentity{Email: info.Email, Name: info.Name}, nil
}
