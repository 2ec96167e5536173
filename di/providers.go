package di

import (
	"hostel/infras/gotrue"
	"hostel/infras/postgrest"
)

// provideTokenSource lets data API calls carry the signed-in user's access token.
func provideTokenSource(client gotrue.Client) postgrest.TokenSource {
	return client
}
