package domain

// Channel describes one YouTube channel as returned by the data API.
type Channel struct {
	ChannelID         string `json:"channel_id"`
	ChannelName       string `json:"channel_name"`
	ChannelURL        string `json:"channel_url,omitempty"`
	Description       string `json:"description,omitempty"`
	ThumbnailURL      string `json:"thumbnail_url,omitempty"`
	SubscriberCount   int64  `json:"subscriber_count"`
	VideoCount        int64  `json:"video_count"`
	ViewCount         int64  `json:"view_count"`
	UploadsPlaylistID string `json:"uploads_playlist_id,omitempty"`
	PublishedAt       string `json:"published_at,omitempty"`
	Country           string `json:"country,omitempty"`
	CustomURL         string `json:"custom_url,omitempty"`
}
