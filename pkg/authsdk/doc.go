/*
Package authsdk provides a client SDK for the readinglog authentication service.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (health, OAuth2 login, reissue)
  - Session: operations on behalf of a logged in member, with automatic reissue

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetReadiness(ctx)

	// Complete a provider login with the code the provider redirected back with
	session, err := client.AuthenticateWithOAuth2(ctx, "kakao", code)

	// Member operations
	me, err := session.Me(ctx)
	err = session.Logout(ctx)

# Token Reissue

Every Session method checks the access token first. When it expires within
30 seconds the session trades its refresh token for a new pair. Refresh tokens
are single use: once reissued, the previous refresh token is rejected by the
service, so a Session must not be copied between processes.

# Error Handling

Failures reported by the service come back as *APIError carrying the HTTP
status and a stable code:

	_, err := client.Reissue(ctx, staleToken)
	if authsdk.IsCode(err, authsdk.ErrorCodeUnauthorized) {
		// log in again
	}
*/
package authsdk
