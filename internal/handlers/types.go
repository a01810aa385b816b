package handlers

import "time"

// CreateShortLinkRequest is the request body for creating a short link.
// Both fields are checked by shortener.Validate rather than by huma so that
// invalid input is reported as 400 with the common error body.
type CreateShortLinkRequest struct {
	Body struct {
		Slug    string     `doc:"Desired slug, generated when empty"   example:"my-link"                            json:"slug,omitempty"    required:"false"`
		URL     string     `doc:"The URL to shorten"                   example:"https://example.com/very/long/path" json:"url"               required:"false"`
		Created *time.Time `doc:"Creation time, defaults to now"                                                    json:"created,omitempty" required:"false"`
	}
}

// ShortLinkBody is the JSON representation of a stored short link.
type ShortLinkBody struct {
	ID      string    `doc:"Identifier assigned by the store" example:"5b0e4c5e-8f4f-4d7e-9a51-6f3c1f1b7c11" json:"id"`
	Slug    string    `doc:"The short slug"                   example:"x7k2q"                                json:"slug"`
	URL     string    `doc:"The redirect target"              example:"https://example.com/very/long/path"   json:"url"`
	Created time.Time `doc:"Creation time"                                                                   json:"created"`
}

// CreateShortLinkResponse is the response for a successfully created short link.
type CreateShortLinkResponse struct {
	Body ShortLinkBody
}

// RedirectRequest is the request for resolving a slug.
type RedirectRequest struct {
	Slug string `doc:"The short slug" example:"x7k2q" path:"slug"`
}

// RedirectResponse redirects the client to Location.
type RedirectResponse struct {
	Status   int
	Location string `doc:"Redirect target" header:"Location"`
}
