package domain

import "github.com/Adda-Baaj/foodstack-client/pkg/apiclient"

// Model tags registered with the client's shape registry.
const (
	ShapeLogin      = "Login"
	ShapeCollection = "Collection"
)

// LoginData is the body of the login call.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
}

// Collection is a paginated HAL listing as returned by list endpoints.
type Collection struct {
	Page     int                         `json:"page"`
	Limit    int                         `json:"limit"`
	Pages    int                         `json:"pages"`
	Total    int                         `json:"total"`
	Embedded map[string][]map[string]any `json:"_embedded"`
	Links    map[string]Link             `json:"_links"`
}

// Link is a HAL link object.
type Link struct {
	Href string `json:"href"`
}

// Items returns the embedded items regardless of their relation name.
func (c Collection) Items() []map[string]any {
	var out []map[string]any
	for _, items := range c.Embedded {
		out = append(out, items...)
	}
	return out
}

// Registry returns a shape registry with every domain model registered.
func Registry() *apiclient.Registry {
	return apiclient.NewRegistry(map[string]apiclient.Decoder{
		ShapeLogin:      apiclient.ModelDecoder[LoginResult](),
		ShapeCollection: apiclient.ModelDecoder[Collection](),
	})
}
