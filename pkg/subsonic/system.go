package subsonic

import (
	"context"

	"github.com/rs/zerolog"
)

// Ping checks connectivity to the server. It returns true iff the response
// status is "ok". A well-formed failed response, which is also what the
// server sends for bad credentials, returns false without an error; only
// transport and decode failures are returned as errors.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#ping
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/ping/
func (c *Client) Ping(ctx context.Context) (bool, error) {
	doc, err := c.get(ctx, "ping", nil)
	if err != nil {
		return false, err
	}
	attrs, err := Attributes(doc)
	if err != nil {
		return false, err
	}
	zerolog.Ctx(ctx).Info().Interface("ping", attrs).Msg("Pinged Subsonic server")

	status, ok := attrs["status"]
	return ok && status == string(SubsonicResponseStatusOk), nil
}
