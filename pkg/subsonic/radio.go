package subsonic

import (
	"context"
)

// GetInternetRadioStations returns all internet radio stations. Each record
// carries the station's own stream URL in [AttrStreamURL].
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getInternetRadioStations
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getinternetradiostations/
func (c *Client) GetInternetRadioStations(ctx context.Context) ([]Record, error) {
	return c.listRecords(ctx, "getInternetRadioStations", nil, "internetRadioStation")
}
